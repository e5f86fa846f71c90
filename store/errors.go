package store

import "errors"

// Input errors surfaced across the store boundary. Moderation failures
// never show up here; they are absorbed inside the transform.
var (
	ErrPostNotFound   = errors.New("post not found")
	ErrParentNotFound = errors.New("parent comment not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameTaken  = errors.New("username already exists")
	ErrEmptyContent   = errors.New("content cannot be empty")
)
