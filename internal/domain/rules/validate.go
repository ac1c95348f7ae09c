package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
)

type Rule string

const (
	RuleBlockLimit      Rule = "block_limit"
	RuleImageLimit      Rule = "image_limit"
	RuleConsecutiveText Rule = "consecutive_text"
	RuleContent         Rule = "content"
)

// ViolationError is returned for every local validation failure. It unwraps
// to one of the custom_errors sentinels.
type ViolationError struct {
	Rule Rule
	Err  error
}

func (e *ViolationError) Error() string {
	return e.Err.Error()
}

func (e *ViolationError) Unwrap() error {
	return e.Err
}

func violation(rule Rule, err error) error {
	return &ViolationError{Rule: rule, Err: err}
}

// ValidateAppend checks whether a block of type t with content c may be
// appended to existing. Rules run in order and the first failure wins.
func ValidateAppend(existing []model.Block, t model.BlockType, c model.Content) error {
	if len(existing) >= model.MaxBlocksPerPost {
		return violation(RuleBlockLimit, custom_errors.ErrBlockLimitReached)
	}
	if t == model.BlockTypeImage && model.CountBlocks(existing).Images >= model.MaxImageBlocksPerPost {
		return violation(RuleImageLimit, custom_errors.ErrImageLimitReached)
	}
	if t == model.BlockTypeText {
		if last, ok := lastByOrder(existing); ok && last.Type == model.BlockTypeText {
			return violation(RuleConsecutiveText, custom_errors.ErrConsecutiveTextBlocks)
		}
	}
	return ValidateContent(t, c)
}

// ValidateContent checks payload completeness for a single block.
func ValidateContent(t model.BlockType, c model.Content) error {
	if err := t.IsValid(); err != nil {
		return violation(RuleContent, custom_errors.ErrInvalidBlockType)
	}
	if c == nil || c.BlockType() != t {
		return violation(RuleContent, custom_errors.ErrContentTypeMismatch)
	}

	switch content := c.(type) {
	case model.TextContent:
		words := CountWords(content.HTML)
		if words == 0 {
			return violation(RuleContent, custom_errors.ErrEmptyTextBlock)
		}
		if words > model.MaxTextWords {
			return violation(RuleContent, fmt.Errorf("%w: %d of %d words", custom_errors.ErrTextTooLong, words, model.MaxTextWords))
		}
		if content.WordCount != words {
			return violation(RuleContent, custom_errors.ErrWordCountMismatch)
		}
	case model.QuoteContent:
		if strings.TrimSpace(content.Quote) == "" {
			return violation(RuleContent, custom_errors.ErrEmptyQuote)
		}
		if utf8.RuneCountInString(content.Quote) > model.MaxQuoteLength {
			return violation(RuleContent, custom_errors.ErrQuoteTooLong)
		}
	case model.ImageContent:
		if strings.TrimSpace(content.ImageID) == "" {
			return violation(RuleContent, custom_errors.ErrMissingImageReference)
		}
	case model.YouTubeContent:
		id, ok := ExtractVideoID(content.YouTubeURL)
		if !ok || content.VideoID != id {
			return violation(RuleContent, custom_errors.ErrInvalidYouTubeURL)
		}
	default:
		return violation(RuleContent, custom_errors.ErrContentTypeMismatch)
	}
	return nil
}

// ValidateRemoval rejects a delete that would leave two text blocks adjacent.
func ValidateRemoval(existing []model.Block, blockID string) error {
	ordered := SortedByOrder(existing)
	for i, b := range ordered {
		if b.ID != blockID {
			continue
		}
		if i > 0 && i < len(ordered)-1 &&
			ordered[i-1].Type == model.BlockTypeText && ordered[i+1].Type == model.BlockTypeText {
			return violation(RuleConsecutiveText, custom_errors.ErrConsecutiveTextBlocks)
		}
		return nil
	}
	return custom_errors.ErrBlockNotFound
}

func lastByOrder(blocks []model.Block) (model.Block, bool) {
	if len(blocks) == 0 {
		return model.Block{}, false
	}
	last := blocks[0]
	for _, b := range blocks[1:] {
		if b.OrderIndex > last.OrderIndex {
			last = b
		}
	}
	return last, true
}
