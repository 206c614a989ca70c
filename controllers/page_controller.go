package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"postify/config"
	"postify/models"
	"postify/utils"
)

// PageController renders the server-side HTML pages.
type PageController struct {
	db *gorm.DB
}

// NewPageController creates a new PageController instance.
func NewPageController(db *gorm.DB) *PageController {
	return &PageController{db: db}
}

// Home renders the latest published posts.
func (pc *PageController) Home(ctx *gin.Context) {
	posts, err := ListPublished(pc.db, config.Get().HomePostLimit)
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("home page query failed: %v", err)
		}
		posts = nil
	}
	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"Title": "Latest Posts",
		"Posts": posts,
	})
}

// Posts renders all published posts.
func (pc *PageController) Posts(ctx *gin.Context) {
	posts, err := ListPublished(pc.db, 0)
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("posts page query failed: %v", err)
		}
		posts = nil
	}
	ctx.HTML(http.StatusOK, "posts.html", gin.H{
		"Title": "All Posts",
		"Posts": posts,
	})
}

// PostDetail renders a single post, or a not-found page.
func (pc *PageController) PostDetail(ctx *gin.Context) {
	postID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.HTML(http.StatusNotFound, "notfound.html", gin.H{"Title": "Post not found"})
		return
	}
	var post models.Post
	if err := pc.db.First(&post, postID).Error; err != nil {
		ctx.HTML(http.StatusNotFound, "notfound.html", gin.H{"Title": "Post not found"})
		return
	}
	ctx.HTML(http.StatusOK, "post.html", gin.H{
		"Title":   post.Title,
		"Post":    post,
		"Content": utils.SafeHTML(post.Content),
	})
}

// CreateForm renders the post creation form.
func (pc *PageController) CreateForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "create.html", gin.H{"Title": "Create Post"})
}
