package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blogsyte/internal/models"
	"blogsyte/internal/services"
)

type InteractionHandler struct {
	service     services.InteractionService
	blogService services.BlogService
}

func NewInteractionHandler(service services.InteractionService, blogService services.BlogService) *InteractionHandler {
	return &InteractionHandler{service: service, blogService: blogService}
}

func (h *InteractionHandler) requireBlog(c *gin.Context) (int, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid blog ID"})
		return 0, false
	}
	post, err := h.blogService.GetPost(id)
	if err != nil {
		log.Printf("[interaction] blog lookup failed id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load blog post"})
		return 0, false
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Blog post not found"})
		return 0, false
	}
	return id, true
}

// @Summary      Like or unlike a blog post
// @Tags         Interactions
// @Produce      json
// @Param        id   path      int  true  "Blog ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /blogs/{id}/like [post]
func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	userID, _ := callerIdentity(c)
	blogID, ok := h.requireBlog(c)
	if !ok {
		return
	}

	liked, count, err := h.service.ToggleLike(blogID, userID)
	if err != nil {
		log.Printf("[interaction][like] failed blog_id=%d user_id=%d: %v", blogID, userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update like"})
		return
	}

	message := "Blog liked"
	if !liked {
		message = "Blog unliked"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "liked": liked, "likes": count})
}

// @Summary      Like status for the current user
// @Tags         Interactions
// @Produce      json
// @Param        id   path      int  true  "Blog ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /blogs/{id}/like-status [get]
func (h *InteractionHandler) LikeStatus(c *gin.Context) {
	userID, _ := callerIdentity(c)
	blogID, ok := h.requireBlog(c)
	if !ok {
		return
	}

	liked, count, err := h.service.LikeStatus(blogID, userID)
	if err != nil {
		log.Printf("[interaction][like-status] failed blog_id=%d user_id=%d: %v", blogID, userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load like status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "liked": liked, "likes": count})
}

type commentRequest struct {
	Text string `json:"comment_text" binding:"required"`
}

// @Summary      Comment on a blog post
// @Tags         Interactions
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Blog ID"
// @Param        request  body      commentRequest  true  "Comment text"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]interface{}
// @Router       /blogs/{id}/comment [post]
func (h *InteractionHandler) AddComment(c *gin.Context) {
	userID, _ := callerIdentity(c)
	blogID, ok := h.requireBlog(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Comment text is required"})
		return
	}

	comment := &models.Comment{
		BlogID: blogID,
		UserID: userID,
		Text:   strings.TrimSpace(req.Text),
	}
	if err := h.service.AddComment(comment); err != nil {
		log.Printf("[interaction][comment] failed blog_id=%d user_id=%d: %v", blogID, userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add comment"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Comment added", "comment": comment})
}

// @Summary      List comments on a blog post
// @Tags         Interactions
// @Produce      json
// @Param        id   path      int  true  "Blog ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /blogs/{id}/comments [get]
func (h *InteractionHandler) ListComments(c *gin.Context) {
	blogID, ok := h.requireBlog(c)
	if !ok {
		return
	}

	comments, err := h.service.ListComments(blogID)
	if err != nil {
		log.Printf("[interaction][comments] failed blog_id=%d: %v", blogID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load comments"})
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "comments": comments})
}

// @Summary      Delete a comment
// @Description  Only the comment owner or an admin may delete.
// @Tags         Interactions
// @Produce      json
// @Param        id   path      int  true  "Comment ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /comments/{id} [delete]
func (h *InteractionHandler) DeleteComment(c *gin.Context) {
	userID, isAdmin := callerIdentity(c)

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid comment ID"})
		return
	}
	comment, err := h.service.GetComment(id)
	if err != nil || comment == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Comment not found"})
		return
	}
	if comment.UserID != userID && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You can only delete your own comments"})
		return
	}

	if err := h.service.DeleteComment(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Comment not found"})
			return
		}
		log.Printf("[interaction][comment-delete] failed id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment deleted"})
}

type viewRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// @Summary      Record a view
// @Description  Views are deduplicated per session; repeats are silent no-ops. Works for anonymous readers.
// @Tags         Interactions
// @Accept       json
// @Produce      json
// @Param        id       path      int          true  "Blog ID"
// @Param        request  body      viewRequest  true  "Session"
// @Success      200      {object}  map[string]interface{}
// @Router       /blogs/{id}/view [post]
func (h *InteractionHandler) RecordView(c *gin.Context) {
	blogID, ok := h.requireBlog(c)
	if !ok {
		return
	}

	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "session_id is required"})
		return
	}

	view := &models.View{
		BlogID:    blogID,
		IPAddress: c.ClientIP(),
		SessionID: req.SessionID,
		UserAgent: c.Request.UserAgent(),
	}
	if userID, okID := getIntFromCtx(c, "user_id"); okID {
		view.UserID = &userID
	}

	if err := h.service.RecordView(view); err != nil {
		log.Printf("[interaction][view] failed blog_id=%d: %v", blogID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to record view"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "View recorded"})
}

// @Summary      Blog post stats
// @Tags         Interactions
// @Produce      json
// @Param        id   path      int  true  "Blog ID"
// @Success      200  {object}  models.BlogStats
// @Router       /blogs/{id}/stats [get]
func (h *InteractionHandler) BlogStats(c *gin.Context) {
	blogID, ok := h.requireBlog(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": h.service.BlogStats(blogID)})
}
