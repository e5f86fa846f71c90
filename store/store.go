// Package store owns the process-wide dataset: all users and posts,
// loaded from a single JSON document at startup and flushed back after
// every mutation. A single mutex serializes mutations; the deployment
// model is one process, one writer.
package store

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Marcelmutsaarts/Dialink/models"
	"github.com/Marcelmutsaarts/Dialink/moderation"
)

// CommentModerator rewrites a new comment given the conversation so
// far. Implementations must always return a usable body.
type CommentModerator interface {
	Moderate(ctx context.Context, postContent string, history []moderation.ContextEntry, newText string) string
}

// Stats summarizes dataset totals.
type Stats struct {
	Users    int `json:"users"`
	Posts    int `json:"posts"`
	Comments int `json:"comments"`
}

// Store is the owned dataset with its load/save lifecycle.
type Store struct {
	mu        sync.Mutex
	path      string
	moderator CommentModerator
	log       *zap.SugaredLogger

	users []*models.User
	posts []*models.Post
}

// New creates a store bound to a data file. moderator may be nil to
// disable comment rewriting.
func New(path string, moderator CommentModerator, log *zap.SugaredLogger) *Store {
	return &Store{
		path:      path,
		moderator: moderator,
		log:       log,
		users:     []*models.User{},
		posts:     []*models.Post{},
	}
}

// Load reads the data file into memory. A missing file and a malformed
// document both bootstrap an empty dataset (the latter with a warning);
// any other read failure is returned so boot can abort.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Infof("data file %s not found, starting with an empty dataset", s.path)
			s.users, s.posts = []*models.User{}, []*models.Post{}
			return nil
		}
		return err
	}

	// Any decode failure means a malformed document: bad JSON, wrong
	// collection types, or a missing required field. All of them
	// bootstrap empty rather than abort boot.
	users, posts, err := Decode(data)
	if err != nil {
		s.log.Warnf("data file %s is malformed (%v), starting with an empty dataset", s.path, err)
		s.users, s.posts = []*models.User{}, []*models.Post{}
		return nil
	}

	s.users, s.posts = users, posts
	s.log.Infof("dataset loaded: %d users, %d posts", len(users), len(posts))
	return nil
}

// Save flushes the current dataset to the data file.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	data, err := Encode(s.users, s.posts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.log.Errorf("failed to flush dataset to %s: %v", s.path, err)
		return err
	}
	return nil
}

// RegisterUser creates an account. Usernames are unique
// case-insensitively.
func (s *Store) RegisterUser(username, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userByUsernameLocked(username) != nil {
		return nil, ErrUsernameTaken
	}

	user, err := models.NewUser(username, password)
	if err != nil {
		return nil, err
	}

	s.users = append(s.users, user)
	if err := s.saveLocked(); err != nil {
		s.users = s.users[:len(s.users)-1]
		return nil, err
	}
	return user, nil
}

// AddPost creates a post for the author. imageFilename may be empty.
func (s *Store) AddPost(authorID, content, imageFilename string) (*models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := models.NewPost(authorID, content, imageFilename)
	s.posts = append(s.posts, post)
	if err := s.saveLocked(); err != nil {
		s.posts = s.posts[:len(s.posts)-1]
		return nil, err
	}
	return post, nil
}

// SubmitTopLevelComment runs the full pipeline for a comment attached
// directly to a post: context build, moderation, attach, flush.
func (s *Store) SubmitTopLevelComment(ctx context.Context, postID, authorID, text string) (*models.Comment, error) {
	return s.submitComment(ctx, postID, "", authorID, text)
}

// SubmitReply runs the same pipeline for a reply to an existing
// comment. An unknown parent id rejects the submission before any
// moderation call is made.
func (s *Store) SubmitReply(ctx context.Context, postID, parentID, authorID, text string) (*models.Comment, error) {
	if parentID == "" {
		return nil, ErrParentNotFound
	}
	return s.submitComment(ctx, postID, parentID, authorID, text)
}

func (s *Store) submitComment(ctx context.Context, postID, parentID, authorID, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.postByIDLocked(postID)
	if post == nil {
		return nil, ErrPostNotFound
	}

	var parent *models.Comment
	if parentID != "" {
		parent = post.FindComment(parentID)
		if parent == nil {
			return nil, ErrParentNotFound
		}
	}

	// The moderation call holds the store lock; submissions are
	// handled one at a time, which is the documented write model.
	history := moderation.BuildContext(post, s.usernamesLocked())
	moderated := text
	if s.moderator != nil {
		moderated = s.moderator.Moderate(ctx, post.Content, history, text)
	}

	comment := models.NewComment(authorID, moderated, post.ID, text, parentID)
	if parent != nil {
		parent.AddReply(comment)
	} else {
		post.AddComment(comment)
	}

	if err := s.saveLocked(); err != nil {
		if parent != nil {
			parent.Replies = parent.Replies[:len(parent.Replies)-1]
		} else {
			post.Comments = post.Comments[:len(post.Comments)-1]
		}
		return nil, err
	}
	return comment, nil
}

// PostByID returns the post or nil.
func (s *Store) PostByID(id string) *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.postByIDLocked(id)
}

// UserByID returns the user or nil.
func (s *Store) UserByID(id string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// UserByUsername returns the user matching the name
// case-insensitively, or nil.
func (s *Store) UserByUsername(username string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userByUsernameLocked(username)
}

// Usernames maps user id to display name for context building and feed
// rendering.
func (s *Store) Usernames() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usernamesLocked()
}

// PostsNewestFirst returns the posts sorted newest first.
func (s *Store) PostsNewestFirst() []*models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := make([]*models.Post, len(s.posts))
	copy(sorted, s.posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp.Time)
	})
	return sorted
}

// Totals counts users, posts and comments (replies included).
func (s *Store) Totals() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Users: len(s.users), Posts: len(s.posts)}
	for _, p := range s.posts {
		st.Comments += p.CommentCount()
	}
	return st
}

func (s *Store) postByIDLocked(id string) *models.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Store) userByUsernameLocked(username string) *models.User {
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u
		}
	}
	return nil
}

func (s *Store) usernamesLocked() map[string]string {
	m := make(map[string]string, len(s.users))
	for _, u := range s.users {
		m[u.ID] = u.Username
	}
	return m
}
