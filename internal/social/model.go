package social

import "time"

// Post is a short community feed entry.
type Post struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	Likes      int       `json:"likes"`
	CreatedAt  time.Time `json:"createdAt"`
}
