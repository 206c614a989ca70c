package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"postify/models"
	"postify/utils"
)

// PostController manages creation and retrieval of posts.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// CreatePost persists a new post. imageUrl is accepted as an opaque string;
// no check ties it to a stored file. A persistence failure still answers HTTP
// 200 with an application-level failure flag, which is what the form expects.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required,min=1"`
		Content  string `json:"content" binding:"required"`
		ImageURL string `json:"imageUrl"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	// Stored and echoed verbatim; sanitization happens on the render path so
	// the API round-trips content byte for byte.
	title := strings.TrimSpace(req.Title)
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, "title cannot be empty")
		return
	}

	post := models.Post{
		Title:    title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}

	if err := p.db.Create(&post).Error; err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("create post failed: %v", err)
		}
		ctx.JSON(http.StatusOK, gin.H{"success": false, "error": "Error creating post"})
		return
	}

	// Claim the referenced upload so the orphan cleaner leaves it alone.
	if post.ImageURL != "" {
		now := time.Now()
		if err := p.db.Model(&models.UploadedFile{}).
			Where("url = ? AND claimed_at IS NULL", post.ImageURL).
			Update("claimed_at", now).Error; err != nil && utils.Sugar != nil {
			utils.Sugar.Warnf("claim upload failed url=%s err=%v", post.ImageURL, err)
		}
	}

	utils.InvalidateByPrefix("cache:posts:list:")

	ctx.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

// ListPosts returns published posts, newest first, with an optional limit.
func (p *PostController) ListPosts(ctx *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(ctx.Query("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	cacheKey := fmt.Sprintf("cache:posts:list:limit=%d", limit)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	posts, err := ListPublished(p.db, limit)
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("list posts failed: %v", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to list posts")
		return
	}

	payload := gin.H{"posts": posts}
	utils.CacheSetJSON(cacheKey, payload, time.Hour)
	ctx.JSON(http.StatusOK, payload)
}

// GetPost returns a single post by id.
func (p *PostController) GetPost(ctx *gin.Context) {
	// GORM inlines non-numeric First conditions into the SQL, so the path
	// parameter must be parsed before it gets near the query.
	postID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, "Post not found")
		return
	}
	cacheKey := fmt.Sprintf("cache:post:detail:%d", postID)

	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var post models.Post
	if err := p.db.First(&post, postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, "Post not found")
			return
		}
		if utils.Sugar != nil {
			utils.Sugar.Errorf("load post %d failed: %v", postID, err)
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to load post")
		return
	}

	payload := gin.H{"post": post}
	utils.CacheSetJSON(cacheKey, payload, time.Hour)
	ctx.JSON(http.StatusOK, payload)
}

// ListPublished is the shared read path for listings: published only, newest
// first, optional limit (0 means no limit). The JSON API and the rendered
// pages both go through it.
func ListPublished(db *gorm.DB, limit int) ([]models.Post, error) {
	var posts []models.Post
	q := db.Where("published = ?", true).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
