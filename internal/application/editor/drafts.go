package editor

import (
	"context"
	"strings"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	"noders-content-service/internal/domain/rules"
)

// Draft is the local form state for one block variant. Drafts never talk to
// the block endpoints; they only produce content.
type Draft interface {
	Type() model.BlockType
	Content() model.Content
	IsValid() bool
}

// ImageUploader uploads a file and returns the stored image record.
type ImageUploader interface {
	UploadImage(ctx context.Context, upload *model.UploadImageDTO) (*model.Image, error)
}

func NewDraft(t model.BlockType) (Draft, error) {
	return DraftFromContent(t, nil)
}

// DraftFromContent seeds a draft of type t from content. A nil or
// mismatched content yields an empty draft.
func DraftFromContent(t model.BlockType, content model.Content) (Draft, error) {
	switch t {
	case model.BlockTypeText:
		d := &TextDraft{}
		if c, ok := content.(model.TextContent); ok {
			d.HTML = c.HTML
		}
		return d, nil
	case model.BlockTypeQuote:
		d := &QuoteDraft{}
		if c, ok := content.(model.QuoteContent); ok {
			d.Quote, d.Author, d.Source = c.Quote, c.Author, c.Source
		}
		return d, nil
	case model.BlockTypeImage:
		d := &ImageDraft{}
		if c, ok := content.(model.ImageContent); ok {
			d.ImageID, d.Caption, d.AltText = c.ImageID, c.Caption, c.AltText
		}
		return d, nil
	case model.BlockTypeYouTube:
		d := &YouTubeDraft{}
		if c, ok := content.(model.YouTubeContent); ok {
			d.URL, d.Title = c.YouTubeURL, c.Title
		}
		return d, nil
	}
	return nil, custom_errors.ErrInvalidBlockType
}

func DraftFromBlock(b model.Block) (Draft, error) {
	return DraftFromContent(b.Type, b.Content)
}

type TextDraft struct {
	HTML string
}

func (d *TextDraft) Type() model.BlockType { return model.BlockTypeText }

func (d *TextDraft) WordCount() int {
	return rules.CountWords(d.HTML)
}

func (d *TextDraft) Content() model.Content {
	return model.TextContent{HTML: d.HTML, WordCount: d.WordCount()}
}

func (d *TextDraft) IsValid() bool {
	return rules.ValidateContent(d.Type(), d.Content()) == nil
}

type QuoteDraft struct {
	Quote  string
	Author string
	Source string
}

func (d *QuoteDraft) Type() model.BlockType { return model.BlockTypeQuote }

func (d *QuoteDraft) Content() model.Content {
	return model.QuoteContent{
		Quote:  strings.TrimSpace(d.Quote),
		Author: strings.TrimSpace(d.Author),
		Source: strings.TrimSpace(d.Source),
	}
}

func (d *QuoteDraft) IsValid() bool {
	return rules.ValidateContent(d.Type(), d.Content()) == nil
}

type ImageDraft struct {
	ImageID    string
	Caption    string
	AltText    string
	PreviewURL string
}

func (d *ImageDraft) Type() model.BlockType { return model.BlockTypeImage }

func (d *ImageDraft) Content() model.Content {
	return model.ImageContent{
		ImageID: d.ImageID,
		Caption: strings.TrimSpace(d.Caption),
		AltText: strings.TrimSpace(d.AltText),
	}
}

func (d *ImageDraft) IsValid() bool {
	return rules.ValidateContent(d.Type(), d.Content()) == nil
}

// Upload sends the file through its own request and keeps the returned
// image id. A later block failure does not undo the upload.
func (d *ImageDraft) Upload(ctx context.Context, uploader ImageUploader, filename string, data []byte) (*model.Image, error) {
	image, err := uploader.UploadImage(ctx, &model.UploadImageDTO{
		Filename: filename,
		Data:     data,
		Usage:    model.ImageUsagePostBlock,
		AltText:  d.AltText,
	})
	if err != nil {
		return nil, err
	}
	d.ImageID = image.ID
	d.PreviewURL = image.PublicURL
	if d.AltText == "" {
		d.AltText = image.AltText
	}
	return image, nil
}

type YouTubeDraft struct {
	URL   string
	Title string
}

func (d *YouTubeDraft) Type() model.BlockType { return model.BlockTypeYouTube }

func (d *YouTubeDraft) VideoID() (string, bool) {
	return rules.ExtractVideoID(d.URL)
}

func (d *YouTubeDraft) Content() model.Content {
	id, _ := d.VideoID()
	return model.YouTubeContent{
		YouTubeURL: strings.TrimSpace(d.URL),
		VideoID:    id,
		Title:      strings.TrimSpace(d.Title),
	}
}

func (d *YouTubeDraft) IsValid() bool {
	return rules.ValidateContent(d.Type(), d.Content()) == nil
}
