package model

import "time"

type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreatePostDTO struct {
	AuthorID string
	Title    string
}

// PostDetailed is a post together with its blocks in order.
type PostDetailed struct {
	Post   *Post   `json:"post"`
	Blocks []Block `json:"blocks"`
}
