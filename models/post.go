package models

import "github.com/google/uuid"

// Post is a top-level submission. Comments hold the ordered top-level
// thread; replies nest inside each comment.
type Post struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Content       string     `json:"content"`
	ImageFilename string     `json:"image_filename,omitempty"`
	Timestamp     Timestamp  `json:"timestamp"`
	Comments      []*Comment `json:"comments"`
}

// NewPost creates a post for the given author. imageFilename may be
// empty when no image was attached.
func NewPost(userID, content, imageFilename string) *Post {
	return &Post{
		ID:            uuid.NewString(),
		UserID:        userID,
		Content:       content,
		ImageFilename: imageFilename,
		Timestamp:     Now(),
		Comments:      []*Comment{},
	}
}

// AddComment appends a top-level comment in submission order.
func (p *Post) AddComment(c *Comment) {
	p.Comments = append(p.Comments, c)
}

// FindComment searches the post's whole reply tree for a comment id.
// Returns nil when the id does not occur anywhere under the post.
func (p *Post) FindComment(id string) *Comment {
	return FindComment(id, p.Comments)
}

// CommentCount returns the total number of comments under the post,
// replies included.
func (p *Post) CommentCount() int {
	return countComments(p.Comments)
}

func countComments(comments []*Comment) int {
	n := 0
	for _, c := range comments {
		n += 1 + countComments(c.Replies)
	}
	return n
}
