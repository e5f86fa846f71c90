package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Marcelmutsaarts/Dialink/models"
)

// DecodeError reports a document that parses as JSON but is missing or
// carries an unusable value for a required entity field.
type DecodeError struct {
	Entity string
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("decode %s: field %q: %s", e.Entity, e.Field, e.Reason)
	}
	return fmt.Sprintf("decode %s: missing required field %q", e.Entity, e.Field)
}

func missingField(entity, field string) error {
	return &DecodeError{Entity: entity, Field: field}
}

func badField(entity, field string, err error) error {
	return &DecodeError{Entity: entity, Field: field, Reason: err.Error()}
}

// The persisted layout: one document with two named collections.
// Comments nest recursively through "replies". Pointer fields let the
// decoder tell a missing required field from a present one.

type document struct {
	Users []userDoc `json:"users"`
	Posts []postDoc `json:"posts"`
}

type userDoc struct {
	ID           *string `json:"id"`
	Username     *string `json:"username"`
	PasswordHash *string `json:"password_hash"`
}

type postDoc struct {
	ID            *string       `json:"id"`
	UserID        *string       `json:"user_id"`
	Content       *string       `json:"content"`
	ImageFilename *string       `json:"image_filename"`
	Timestamp     *string       `json:"timestamp"`
	Comments      *[]commentDoc `json:"comments"`
}

type commentDoc struct {
	ID               *string       `json:"id"`
	PostID           *string       `json:"post_id"`
	ParentCommentID  *string       `json:"parent_comment_id"`
	UserID           *string       `json:"user_id"`
	OriginalContent  *string       `json:"original_content"`
	ModeratedContent *string       `json:"moderated_content"`
	Timestamp        *string       `json:"timestamp"`
	Replies          *[]commentDoc `json:"replies"`
}

// Encode serializes the dataset into the single JSON document layout.
func Encode(users []*models.User, posts []*models.Post) ([]byte, error) {
	doc := document{
		Users: make([]userDoc, 0, len(users)),
		Posts: make([]postDoc, 0, len(posts)),
	}
	for _, u := range users {
		doc.Users = append(doc.Users, encodeUser(u))
	}
	for _, p := range posts {
		doc.Posts = append(doc.Posts, encodePost(p))
	}
	return json.MarshalIndent(doc, "", "    ")
}

// Decode rebuilds the dataset from a document produced by Encode. An
// empty or whitespace-only input yields two empty collections so a
// first run bootstraps cleanly. Structural JSON errors come back as
// json errors; missing required fields come back as *DecodeError.
func Decode(data []byte) ([]*models.User, []*models.Post, error) {
	users := []*models.User{}
	posts := []*models.Post{}

	if len(bytes.TrimSpace(data)) == 0 {
		return users, posts, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}

	for _, ud := range doc.Users {
		u, err := decodeUser(ud)
		if err != nil {
			return nil, nil, err
		}
		users = append(users, u)
	}
	for _, pd := range doc.Posts {
		p, err := decodePost(pd)
		if err != nil {
			return nil, nil, err
		}
		posts = append(posts, p)
	}
	return users, posts, nil
}

func encodeUser(u *models.User) userDoc {
	return userDoc{
		ID:           &u.ID,
		Username:     &u.Username,
		PasswordHash: &u.PasswordHash,
	}
}

func decodeUser(d userDoc) (*models.User, error) {
	switch {
	case d.ID == nil:
		return nil, missingField("user", "id")
	case d.Username == nil:
		return nil, missingField("user", "username")
	case d.PasswordHash == nil:
		return nil, missingField("user", "password_hash")
	}
	return &models.User{
		ID:           *d.ID,
		Username:     *d.Username,
		PasswordHash: *d.PasswordHash,
	}, nil
}

func encodePost(p *models.Post) postDoc {
	ts := p.Timestamp.String()
	d := postDoc{
		ID:        &p.ID,
		UserID:    &p.UserID,
		Content:   &p.Content,
		Timestamp: &ts,
	}
	if p.ImageFilename != "" {
		name := p.ImageFilename
		d.ImageFilename = &name
	}
	comments := make([]commentDoc, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, encodeComment(c))
	}
	d.Comments = &comments
	return d
}

func decodePost(d postDoc) (*models.Post, error) {
	switch {
	case d.ID == nil:
		return nil, missingField("post", "id")
	case d.UserID == nil:
		return nil, missingField("post", "user_id")
	case d.Content == nil:
		return nil, missingField("post", "content")
	case d.Timestamp == nil:
		return nil, missingField("post", "timestamp")
	case d.Comments == nil:
		return nil, missingField("post", "comments")
	}

	ts, err := models.ParseTimestamp(*d.Timestamp)
	if err != nil {
		return nil, badField("post", "timestamp", err)
	}

	p := &models.Post{
		ID:        *d.ID,
		UserID:    *d.UserID,
		Content:   *d.Content,
		Timestamp: ts,
		Comments:  []*models.Comment{},
	}
	if d.ImageFilename != nil {
		p.ImageFilename = *d.ImageFilename
	}
	for _, cd := range *d.Comments {
		c, err := decodeComment(cd)
		if err != nil {
			return nil, err
		}
		p.Comments = append(p.Comments, c)
	}
	return p, nil
}

func encodeComment(c *models.Comment) commentDoc {
	ts := c.Timestamp.String()
	d := commentDoc{
		ID:               &c.ID,
		PostID:           &c.PostID,
		UserID:           &c.UserID,
		OriginalContent:  &c.OriginalContent,
		ModeratedContent: &c.ModeratedContent,
		Timestamp:        &ts,
	}
	if c.ParentCommentID != "" {
		parent := c.ParentCommentID
		d.ParentCommentID = &parent
	}
	replies := make([]commentDoc, 0, len(c.Replies))
	for _, r := range c.Replies {
		replies = append(replies, encodeComment(r))
	}
	d.Replies = &replies
	return d
}

func decodeComment(d commentDoc) (*models.Comment, error) {
	switch {
	case d.ID == nil:
		return nil, missingField("comment", "id")
	case d.PostID == nil:
		return nil, missingField("comment", "post_id")
	case d.UserID == nil:
		return nil, missingField("comment", "user_id")
	case d.OriginalContent == nil:
		return nil, missingField("comment", "original_content")
	case d.ModeratedContent == nil:
		return nil, missingField("comment", "moderated_content")
	case d.Timestamp == nil:
		return nil, missingField("comment", "timestamp")
	case d.Replies == nil:
		return nil, missingField("comment", "replies")
	}

	ts, err := models.ParseTimestamp(*d.Timestamp)
	if err != nil {
		return nil, badField("comment", "timestamp", err)
	}

	c := &models.Comment{
		ID:               *d.ID,
		PostID:           *d.PostID,
		UserID:           *d.UserID,
		OriginalContent:  *d.OriginalContent,
		ModeratedContent: *d.ModeratedContent,
		Timestamp:        ts,
		Replies:          []*models.Comment{},
	}
	if d.ParentCommentID != nil {
		c.ParentCommentID = *d.ParentCommentID
	}
	for _, rd := range *d.Replies {
		r, err := decodeComment(rd)
		if err != nil {
			return nil, err
		}
		c.Replies = append(c.Replies, r)
	}
	return c, nil
}
