package model

import (
	"encoding/json"
	"fmt"
)

// Content is the variant payload of a block.
type Content interface {
	BlockType() BlockType
}

type TextContent struct {
	HTML      string `json:"html"`
	WordCount int    `json:"word_count"`
}

func (TextContent) BlockType() BlockType { return BlockTypeText }

type QuoteContent struct {
	Quote  string `json:"quote"`
	Author string `json:"author,omitempty"`
	Source string `json:"source,omitempty"`
}

func (QuoteContent) BlockType() BlockType { return BlockTypeQuote }

type ImageContent struct {
	ImageID string `json:"image_id"`
	Caption string `json:"caption,omitempty"`
	AltText string `json:"alt_text,omitempty"`
}

func (ImageContent) BlockType() BlockType { return BlockTypeImage }

type YouTubeContent struct {
	YouTubeURL string `json:"youtube_url"`
	VideoID    string `json:"video_id"`
	Title      string `json:"title,omitempty"`
}

func (YouTubeContent) BlockType() BlockType { return BlockTypeYouTube }

// DecodeContent decodes raw JSON into the payload struct selected by t.
func DecodeContent(t BlockType, raw json.RawMessage) (Content, error) {
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}
	switch t {
	case BlockTypeText:
		var c TextContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode text content: %w", err)
		}
		return c, nil
	case BlockTypeQuote:
		var c QuoteContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode quote content: %w", err)
		}
		return c, nil
	case BlockTypeImage:
		var c ImageContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode image content: %w", err)
		}
		return c, nil
	case BlockTypeYouTube:
		var c YouTubeContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode youtube content: %w", err)
		}
		return c, nil
	}
	return nil, t.IsValid()
}
