package cms

import "time"

// PublishRecord is the write shape for a new blog post. Category is a
// single-element list because the CMS schema models it as a multi-select
// field.
type PublishRecord struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    []string `json:"category"`
	Description string   `json:"description"`
	Featured    bool     `json:"featured"`
	Writer      string   `json:"writer,omitempty"`
	Eyecatch    string   `json:"eyecatch,omitempty"`
}

// Post is a published blog post as returned by the read API.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    []string  `json:"category"`
	Description string    `json:"description"`
	Featured    bool      `json:"featured"`
	Writer      string    `json:"writer,omitempty"`
	Eyecatch    string    `json:"eyecatch,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	RevisedAt   time.Time `json:"revisedAt"`
}

// PostList is a page of posts.
type PostList struct {
	Contents   []Post `json:"contents"`
	TotalCount int    `json:"totalCount"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
}

// ListQuery narrows a ListPosts call. Zero values are omitted from the
// request.
type ListQuery struct {
	Limit    int
	Offset   int
	Category string
}
