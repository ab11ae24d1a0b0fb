package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blogsyte/internal/models"
	"blogsyte/internal/services"
)

type BlogHandler struct {
	blogService  services.BlogService
	userService  services.UserService
	interactions services.InteractionService
}

func NewBlogHandler(blogService services.BlogService, userService services.UserService, interactions services.InteractionService) *BlogHandler {
	return &BlogHandler{blogService: blogService, userService: userService, interactions: interactions}
}

type createBlogRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
}

// @Summary      Create a blog post
// @Tags         Blogs
// @Accept       json
// @Produce      json
// @Param        request  body      createBlogRequest  true  "Post content"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]interface{}
// @Router       /blogs [post]
func (h *BlogHandler) Create(c *gin.Context) {
	userID, _ := callerIdentity(c)

	var req createBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title, description and category are required"})
		return
	}

	author, err := h.userService.GetUserByID(userID)
	if err != nil || author == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unknown author"})
		return
	}

	post := &models.BlogPost{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
	}
	if err := h.blogService.CreatePost(post); err != nil {
		log.Printf("[blog][create] failed author_id=%d: %v", author.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create blog post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Blog post created", "blog": post})
}

// @Summary      List blog posts
// @Tags         Blogs
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /blogs [get]
func (h *BlogHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	posts, err := h.blogService.ListPosts(size, (page-1)*size)
	if err != nil {
		log.Printf("[blog][list] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load blog posts"})
		return
	}
	if posts == nil {
		posts = []*models.BlogPost{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "blogs": posts})
}

// @Summary      Get one blog post with stats
// @Tags         Blogs
// @Produce      json
// @Param        id   path      int  true  "Blog ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /blogs/{id} [get]
func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid blog ID"})
		return
	}
	post, err := h.blogService.GetPost(id)
	if err != nil {
		log.Printf("[blog][get] failed id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load blog post"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Blog post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"blog":    post,
		"stats":   h.interactions.BlogStats(id),
	})
}

// @Summary      Update a blog post
// @Description  Only the author or an admin may update.
// @Tags         Blogs
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "Blog ID"
// @Param        request  body      createBlogRequest  true  "New content"
// @Success      200      {object}  map[string]interface{}
// @Failure      403      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}
// @Router       /blogs/{id} [put]
func (h *BlogHandler) Update(c *gin.Context) {
	userID, isAdmin := callerIdentity(c)

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid blog ID"})
		return
	}
	post, err := h.blogService.GetPost(id)
	if err != nil || post == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Blog post not found"})
		return
	}
	if post.AuthorID != userID && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You can only edit your own posts"})
		return
	}

	var req createBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title, description and category are required"})
		return
	}
	post.Title = req.Title
	post.Description = req.Description
	post.Category = req.Category

	if err := h.blogService.UpdatePost(post); err != nil {
		log.Printf("[blog][update] failed id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update blog post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Blog post updated", "blog": post})
}

// @Summary      Delete a blog post
// @Description  Only the author or an admin may delete.
// @Tags         Blogs
// @Produce      json
// @Param        id   path      int  true  "Blog ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /blogs/{id} [delete]
func (h *BlogHandler) Delete(c *gin.Context) {
	userID, isAdmin := callerIdentity(c)

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid blog ID"})
		return
	}
	post, err := h.blogService.GetPost(id)
	if err != nil || post == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Blog post not found"})
		return
	}
	if post.AuthorID != userID && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You can only delete your own posts"})
		return
	}

	if err := h.blogService.DeletePost(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Blog post not found"})
			return
		}
		log.Printf("[blog][delete] failed id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete blog post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Blog post deleted"})
}

// @Summary      Author dashboard stats
// @Tags         Blogs
// @Produce      json
// @Success      200  {object}  models.DashboardStats
// @Router       /user/dashboard [get]
func (h *BlogHandler) Dashboard(c *gin.Context) {
	userID, _ := callerIdentity(c)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"dashboard": h.interactions.Dashboard(userID),
	})
}
