package handlers

import (
	"bytes"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"blogsyte/internal/models"
	"blogsyte/internal/pdf"
	"blogsyte/internal/services"
)

type AdminHandler struct {
	userService   services.UserService
	blogService   services.BlogService
	reportService *services.ReportService
	pdfGen        pdf.Generator
}

func NewAdminHandler(
	userService services.UserService,
	blogService services.BlogService,
	reportService *services.ReportService,
	pdfGen pdf.Generator,
) *AdminHandler {
	return &AdminHandler{
		userService:   userService,
		blogService:   blogService,
		reportService: reportService,
		pdfGen:        pdfGen,
	}
}

// @Summary      List users
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "50"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}

	users, err := h.userService.ListUsers(size, (page-1)*size)
	if err != nil {
		log.Printf("[admin][users] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load users"})
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

func (h *AdminHandler) setBanned(c *gin.Context, banned bool) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}
	callerID, _ := callerIdentity(c)
	if banned && id == callerID {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "You cannot ban yourself"})
		return
	}

	if err := h.userService.SetBanned(id, banned); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		log.Printf("[admin][ban] failed user_id=%d banned=%v: %v", id, banned, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user"})
		return
	}

	message := "User banned"
	if !banned {
		message = "User unbanned"
	}
	log.Printf("[admin][ban] user_id=%d banned=%v by=%d", id, banned, callerID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// @Summary      Ban a user
// @Tags         Admin
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/users/{id}/ban [post]
func (h *AdminHandler) BanUser(c *gin.Context) { h.setBanned(c, true) }

// @Summary      Unban a user
// @Tags         Admin
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/users/{id}/unban [post]
func (h *AdminHandler) UnbanUser(c *gin.Context) { h.setBanned(c, false) }

// @Summary      Delete an account and everything it owns
// @Tags         Admin
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}
	callerID, _ := callerIdentity(c)
	if id == callerID {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "You cannot delete yourself"})
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		log.Printf("[admin][delete-user] failed user_id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete user"})
		return
	}

	log.Printf("[admin][delete-user] user_id=%d deleted by=%d", id, callerID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}

// @Summary      List all blog posts
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/blogs [get]
func (h *AdminHandler) ListBlogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "50"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}

	posts, err := h.blogService.ListPosts(size, (page-1)*size)
	if err != nil {
		log.Printf("[admin][blogs] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load blog posts"})
		return
	}
	if posts == nil {
		posts = []*models.BlogPost{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "blogs": posts})
}

// @Summary      Delete any blog post
// @Tags         Admin
// @Produce      json
// @Param        id   path      int  true  "Blog ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /admin/blogs/{id} [delete]
func (h *AdminHandler) DeleteBlog(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid blog ID"})
		return
	}
	if err := h.blogService.DeletePost(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Blog post not found"})
			return
		}
		log.Printf("[admin][delete-blog] failed id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete blog post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Blog post deleted"})
}

// @Summary      Platform stats
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  models.AdminStats
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": h.reportService.AdminStats()})
}

// @Summary      Platform stats as PDF
// @Tags         Admin
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /admin/stats/report [get]
func (h *AdminHandler) StatsReport(c *gin.Context) {
	stats := h.reportService.AdminStats()

	var buf bytes.Buffer
	if err := h.pdfGen.RenderAdminStats(&buf, stats, time.Now()); err != nil {
		log.Printf("[admin][report] render failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate report"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="blogsyte-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
