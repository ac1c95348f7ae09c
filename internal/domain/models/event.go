package model

import "time"

type BlockEvent struct {
	PostID     string    `json:"post_id"`
	BlockID    string    `json:"block_id"`
	Type       BlockType `json:"type"`
	OrderIndex int       `json:"order_index"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ImageEvent struct {
	ImageID    string     `json:"image_id"`
	OwnerID    string     `json:"owner_id"`
	Usage      ImageUsage `json:"usage"`
	OccurredAt time.Time  `json:"occurred_at"`
}
