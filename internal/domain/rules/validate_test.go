package rules_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	"noders-content-service/internal/domain/rules"
)

func quote(id string, idx int) model.Block {
	return model.Block{ID: id, Type: model.BlockTypeQuote, OrderIndex: idx, Content: model.QuoteContent{Quote: "q"}}
}

func text(id string, idx int) model.Block {
	return model.Block{ID: id, Type: model.BlockTypeText, OrderIndex: idx, Content: model.TextContent{HTML: "<p>hi</p>", WordCount: 1}}
}

func image(id string, idx int) model.Block {
	return model.Block{ID: id, Type: model.BlockTypeImage, OrderIndex: idx, Content: model.ImageContent{ImageID: "img-" + id}}
}

func TestValidateAppend(t *testing.T) {
	fifteen := make([]model.Block, 0, model.MaxBlocksPerPost)
	for i := 0; i < model.MaxBlocksPerPost; i++ {
		fifteen = append(fifteen, quote(string(rune('a'+i)), i))
	}
	fiveImages := make([]model.Block, 0, model.MaxImageBlocksPerPost)
	for i := 0; i < model.MaxImageBlocksPerPost; i++ {
		fiveImages = append(fiveImages, image(string(rune('a'+i)), i))
	}

	tests := []struct {
		name     string
		existing []model.Block
		t        model.BlockType
		content  model.Content
		wantRule rules.Rule
		wantErr  error
	}{
		{
			name:    "quote on empty post",
			t:       model.BlockTypeQuote,
			content: model.QuoteContent{Quote: "X", Author: "Y"},
		},
		{
			name:     "block ceiling wins over everything",
			existing: fifteen,
			t:        model.BlockTypeText,
			content:  model.TextContent{},
			wantRule: rules.RuleBlockLimit,
			wantErr:  custom_errors.ErrBlockLimitReached,
		},
		{
			name:     "image ceiling",
			existing: fiveImages,
			t:        model.BlockTypeImage,
			content:  model.ImageContent{ImageID: "img"},
			wantRule: rules.RuleImageLimit,
			wantErr:  custom_errors.ErrImageLimitReached,
		},
		{
			name:     "image ceiling does not affect quotes",
			existing: fiveImages,
			t:        model.BlockTypeQuote,
			content:  model.QuoteContent{Quote: "ok"},
		},
		{
			name:     "text after text",
			existing: []model.Block{quote("a", 0), text("b", 1)},
			t:        model.BlockTypeText,
			content:  model.TextContent{HTML: "<p>two words</p>", WordCount: 2},
			wantRule: rules.RuleConsecutiveText,
			wantErr:  custom_errors.ErrConsecutiveTextBlocks,
		},
		{
			name:     "last block is decided by order index not slice position",
			existing: []model.Block{text("b", 1), quote("a", 0)},
			t:        model.BlockTypeText,
			content:  model.TextContent{HTML: "<p>two words</p>", WordCount: 2},
			wantRule: rules.RuleConsecutiveText,
			wantErr:  custom_errors.ErrConsecutiveTextBlocks,
		},
		{
			name:     "text after quote",
			existing: []model.Block{text("a", 0), quote("b", 1)},
			t:        model.BlockTypeText,
			content:  model.TextContent{HTML: "<p>two words</p>", WordCount: 2},
		},
		{
			name:     "empty text",
			t:        model.BlockTypeText,
			content:  model.TextContent{HTML: "<p>  </p>", WordCount: 0},
			wantRule: rules.RuleContent,
			wantErr:  custom_errors.ErrEmptyTextBlock,
		},
		{
			name:     "word count must match html",
			t:        model.BlockTypeText,
			content:  model.TextContent{HTML: "<p>one two three</p>", WordCount: 2},
			wantRule: rules.RuleContent,
			wantErr:  custom_errors.ErrWordCountMismatch,
		},
		{
			name:     "text over word limit",
			t:        model.BlockTypeText,
			content:  model.TextContent{HTML: strings.Repeat("w ", model.MaxTextWords+1), WordCount: model.MaxTextWords + 1},
			wantRule: rules.RuleContent,
			wantErr:  custom_errors.ErrTextTooLong,
		},
		{
			name:    "text at word limit",
			t:       model.BlockTypeText,
			content: model.TextContent{HTML: strings.Repeat("w ", model.MaxTextWords), WordCount: model.MaxTextWords},
		},
		{
			name:     "blank quote",
			t:        model.BlockTypeQuote,
			content:  model.QuoteContent{Quote: "   ", Author: "Y"},
			wantRule: rules.RuleContent,
			wantErr:  custom_errors.ErrEmptyQuote,
		},
		{
			name:     "quote too long",
			t:        model.BlockTypeQuote,
			content:  model.QuoteContent{Quote: strings.Repeat("ă", model.MaxQuoteLength+1)},
			wantRule: rules.RuleContent,
			wantErr:  custom_errors.ErrQuoteTooLong,
		},
		{
			name:    "quote limit counts characters not bytes",
			t:       model.BlockTypeQuote,
			content: model.QuoteContent{Quote: strings.Repeat("ă", model.MaxQuoteLength)},
		},
		{
			name:     "image without reference",
			t:        model.BlockTypeImage,
			content:  model.ImageContent{Caption: "c"},
			wantRule: rules.RuleContent,
			wantErr:  custom_errors.ErrMissingImageReference,
		},
		{
			name:    "youtube short link",
			t:       model.BlockTypeYouTube,
			content: model.YouTubeContent{YouTubeURL: "https://youtu.be/abc12345678", VideoID: "abc12345678"},
		},
		{
			name:     "youtube not a url",
			t:        model.BlockTypeYouTube,
			content:  model.YouTubeContent{YouTubeURL: "not a url"},
			wantRule: rules.RuleContent,
			wantErr:  custom_errors.ErrInvalidYouTubeURL,
		},
		{
			name:     "youtube id must match url",
			t:        model.BlockTypeYouTube,
			content:  model.YouTubeContent{YouTubeURL: "https://youtu.be/abc12345678", VideoID: "zzz12345678"},
			wantRule: rules.RuleContent,
			wantErr:  custom_errors.ErrInvalidYouTubeURL,
		},
		{
			name:     "content of another variant",
			t:        model.BlockTypeImage,
			content:  model.QuoteContent{Quote: "x"},
			wantRule: rules.RuleContent,
			wantErr:  custom_errors.ErrContentTypeMismatch,
		},
		{
			name:     "unknown type",
			t:        model.BlockType("video"),
			content:  model.QuoteContent{Quote: "x"},
			wantRule: rules.RuleContent,
			wantErr:  custom_errors.ErrInvalidBlockType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rules.ValidateAppend(tt.existing, tt.t, tt.content)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			var violation *rules.ViolationError
			require.True(t, errors.As(err, &violation))
			assert.Equal(t, tt.wantRule, violation.Rule)
		})
	}
}

func TestValidateRemoval(t *testing.T) {
	blocks := []model.Block{text("a", 0), quote("b", 1), text("c", 2), image("d", 3)}

	err := rules.ValidateRemoval(blocks, "b")
	assert.ErrorIs(t, err, custom_errors.ErrConsecutiveTextBlocks)

	assert.NoError(t, rules.ValidateRemoval(blocks, "a"))
	assert.NoError(t, rules.ValidateRemoval(blocks, "d"))
	assert.ErrorIs(t, rules.ValidateRemoval(blocks, "missing"), custom_errors.ErrBlockNotFound)
}

func TestValidateCollection(t *testing.T) {
	assert.NoError(t, rules.ValidateCollection([]model.Block{text("a", 0), quote("b", 1), text("c", 2)}))
	assert.ErrorIs(t, rules.ValidateCollection([]model.Block{text("a", 0), text("b", 1)}), custom_errors.ErrConsecutiveTextBlocks)
	assert.ErrorIs(t, rules.ValidateCollection([]model.Block{quote("a", 0), quote("b", 2)}), custom_errors.ErrOrderIndexGap)
}

func TestReindex(t *testing.T) {
	blocks := rules.Reindex([]model.Block{quote("a", 3), quote("b", 7)})
	assert.Equal(t, 0, blocks[0].OrderIndex)
	assert.Equal(t, 1, blocks[1].OrderIndex)
}
