package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	MaxBlocksPerPost      = 15
	MaxImageBlocksPerPost = 5
	MaxTextWords          = 800
	MaxQuoteLength        = 500

	TempIDPrefix = "temp-"
)

type BlockType string

const (
	BlockTypeText    BlockType = "text"
	BlockTypeQuote   BlockType = "quote"
	BlockTypeImage   BlockType = "image"
	BlockTypeYouTube BlockType = "youtube"
)

var BlockTypes = []BlockType{BlockTypeText, BlockTypeQuote, BlockTypeImage, BlockTypeYouTube}

func (t BlockType) IsValid() error {
	switch t {
	case BlockTypeText, BlockTypeQuote, BlockTypeImage, BlockTypeYouTube:
		return nil
	}
	return fmt.Errorf("invalid block type: %s", t)
}

func (t *BlockType) UnmarshalText(text []byte) error {
	bt := BlockType(text)
	if err := bt.IsValid(); err != nil {
		return err
	}
	*t = bt
	return nil
}

// Block is one unit of post content. Content always matches Type.
type Block struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	Type       BlockType `json:"type"`
	Content    Content   `json:"content"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsPending reports whether the block still carries a client-assigned id.
func (b *Block) IsPending() bool {
	return IsTempID(b.ID)
}

func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

type blockJSON struct {
	ID         string          `json:"id"`
	PostID     string          `json:"post_id"`
	Type       BlockType       `json:"type"`
	Content    json.RawMessage `json:"content"`
	OrderIndex int             `json:"order_index"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var raw blockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	content, err := DecodeContent(raw.Type, raw.Content)
	if err != nil {
		return err
	}
	*b = Block{
		ID:         raw.ID,
		PostID:     raw.PostID,
		Type:       raw.Type,
		Content:    content,
		OrderIndex: raw.OrderIndex,
		CreatedAt:  raw.CreatedAt,
		UpdatedAt:  raw.UpdatedAt,
	}
	return nil
}

type CreateBlockDTO struct {
	PostID     string
	Type       BlockType
	Content    Content
	OrderIndex int
}

// UpdateBlockDTO carries the undecoded payload; its variant follows the
// stored block type.
type UpdateBlockDTO struct {
	Content json.RawMessage
}

// BlockCounts are the derived totals shown against the post ceilings.
type BlockCounts struct {
	Total  int `json:"total"`
	Images int `json:"images"`
}

func CountBlocks(blocks []Block) BlockCounts {
	counts := BlockCounts{Total: len(blocks)}
	for _, b := range blocks {
		if b.Type == BlockTypeImage {
			counts.Images++
		}
	}
	return counts
}
