package models

import "github.com/google/uuid"

// Comment is a node in a post's reply tree. OriginalContent is the text
// exactly as submitted; ModeratedContent is what gets displayed. The
// two are equal whenever moderation left the text alone or fell back.
type Comment struct {
	ID               string     `json:"id"`
	PostID           string     `json:"post_id"`
	ParentCommentID  string     `json:"parent_comment_id,omitempty"`
	UserID           string     `json:"user_id"`
	OriginalContent  string     `json:"original_content"`
	ModeratedContent string     `json:"moderated_content"`
	Timestamp        Timestamp  `json:"timestamp"`
	Replies          []*Comment `json:"replies"`
}

// NewComment creates a comment whose displayed text is content. When
// originalContent is empty the submitted text is taken to be content
// itself. parentID is empty for top-level comments.
func NewComment(userID, content, postID, originalContent, parentID string) *Comment {
	if originalContent == "" {
		originalContent = content
	}
	return &Comment{
		ID:               uuid.NewString(),
		PostID:           postID,
		ParentCommentID:  parentID,
		UserID:           userID,
		OriginalContent:  originalContent,
		ModeratedContent: content,
		Timestamp:        Now(),
		Replies:          []*Comment{},
	}
}

// AddReply appends a reply in arrival order. Replies are only appended
// to a comment already attached to a post, which keeps the tree
// acyclic.
func (c *Comment) AddReply(reply *Comment) {
	c.Replies = append(c.Replies, reply)
}

// FindComment does a depth-first search over a comment list: each node
// is checked before its replies, siblings after. Returns nil when the
// id is absent from the whole tree.
func FindComment(id string, comments []*Comment) *Comment {
	for _, c := range comments {
		if c.ID == id {
			return c
		}
		if found := FindComment(id, c.Replies); found != nil {
			return found
		}
	}
	return nil
}
