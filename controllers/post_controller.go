package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Marcelmutsaarts/Dialink/config"
	"github.com/Marcelmutsaarts/Dialink/middleware"
	"github.com/Marcelmutsaarts/Dialink/store"
	"github.com/Marcelmutsaarts/Dialink/utils"
)

// maxImageSize bounds uploaded post images.
const maxImageSize = 10 * 1024 * 1024

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// PostController manages posts and their comment threads.
type PostController struct {
	store *store.Store
}

// NewPostController creates a new PostController instance.
func NewPostController(st *store.Store) *PostController {
	return &PostController{store: st}
}

// ListPosts returns the feed, newest posts first, with a username map
// so clients can render authors without extra lookups.
func (p *PostController) ListPosts(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	posts := p.store.PostsNewestFirst()
	total := len(posts)

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	utils.Success(ctx, gin.H{
		"items":     posts[start:end],
		"usernames": p.store.Usernames(),
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": (total + pageSize - 1) / pageSize,
		},
	})
}

// GetPost returns a single post with its full comment tree.
func (p *PostController) GetPost(ctx *gin.Context) {
	post := p.store.PostByID(ctx.Param("id"))
	if post == nil {
		utils.Error(ctx, http.StatusNotFound, 40402, "post not found")
		return
	}
	utils.Success(ctx, gin.H{
		"post":      post,
		"usernames": p.store.Usernames(),
	})
}

// CreatePost accepts a multipart form with a content field and an
// optional image. Only the generated filename is stored on the post.
func (p *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	content := utils.Sanitize(strings.TrimSpace(ctx.PostForm("content")))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "post content cannot be empty")
		return
	}

	imageFilename := ""
	if file, err := ctx.FormFile("image"); err == nil && file != nil && file.Filename != "" {
		name, err := p.saveImage(ctx, file)
		if err != nil {
			// Image problems abort the post so the author can retry
			// instead of silently publishing without the picture.
			utils.Error(ctx, http.StatusBadRequest, 40022, err.Error())
			return
		}
		imageFilename = name
	}

	post, err := p.store.AddPost(userID, content, imageFilename)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create post")
		return
	}

	utils.Success(ctx, gin.H{"post": post})
}

// CreateComment submits a comment on a post. A parent_comment_id turns
// it into a reply nested under that comment. The body passes through
// the moderation pipeline before being stored.
func (p *PostController) CreateComment(ctx *gin.Context) {
	var req struct {
		Content         string `json:"content" binding:"required"`
		ParentCommentID string `json:"parent_comment_id"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid request payload")
		return
	}

	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40024, "comment content cannot be empty")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "unauthorized")
		return
	}

	postID := ctx.Param("id")
	var comment interface{}
	var err error
	if req.ParentCommentID != "" {
		comment, err = p.store.SubmitReply(ctx.Request.Context(), postID, req.ParentCommentID, userID, content)
	} else {
		comment, err = p.store.SubmitTopLevelComment(ctx.Request.Context(), postID, userID, content)
	}
	if err != nil {
		switch err {
		case store.ErrPostNotFound:
			utils.Error(ctx, http.StatusNotFound, 40403, "post not found")
		case store.ErrParentNotFound:
			utils.Error(ctx, http.StatusNotFound, 40404, "parent comment not found")
		case store.ErrEmptyContent:
			utils.Error(ctx, http.StatusBadRequest, 40024, "comment content cannot be empty")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to store comment")
		}
		return
	}

	utils.Success(ctx, gin.H{"comment": comment})
}

// saveImage validates the upload and writes it under the configured
// upload directory with a fresh unique name.
func (p *PostController) saveImage(ctx *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image exceeds %d MB", maxImageSize/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("image type %q not allowed", ext)
	}

	cfg := config.Get()
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare upload directory")
	}

	name := uuid.NewString() + ext
	if err := ctx.SaveUploadedFile(file, filepath.Join(cfg.UploadDir, name)); err != nil {
		utils.Sugar.Errorf("failed to save uploaded image: %v", err)
		return "", fmt.Errorf("failed to save image")
	}
	return name, nil
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

func getUserID(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
