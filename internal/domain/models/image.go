package model

import "time"

type ImageUsage string

const (
	ImageUsagePostBlock ImageUsage = "post_block"
	ImageUsageAvatar    ImageUsage = "avatar"
	ImageUsageProject   ImageUsage = "project"
)

func (u ImageUsage) IsValid() bool {
	switch u {
	case ImageUsagePostBlock, ImageUsageAvatar, ImageUsageProject:
		return true
	}
	return false
}

type Image struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	StorageKey  string     `json:"-"`
	PublicURL   string     `json:"public_url"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
	SizeBytes   int64      `json:"size_bytes"`
	Usage       ImageUsage `json:"usage"`
	AltText     string     `json:"alt_text,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type UploadImageDTO struct {
	OwnerID  string
	Filename string
	Data     []byte
	Usage    ImageUsage
	AltText  string
}
