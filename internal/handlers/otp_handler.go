package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blogsyte/internal/services"
)

type OTPHandler struct {
	service *services.OTPService
}

func NewOTPHandler(service *services.OTPService) *OTPHandler {
	return &OTPHandler{service: service}
}

type sendOTPRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

// @Summary      Send signup OTP
// @Description  Issues a 6-digit verification code and emails it. fullName and password are kept pending until the code is verified.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      sendOTPRequest  true  "Signup details"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]interface{}
// @Failure      500      {object}  map[string]interface{}
// @Router       /send-otp [post]
func (h *OTPHandler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}

	if err := h.service.Issue(email, req.FullName, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateUser):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User with this email already exists"})
		default:
			log.Printf("[otp][send] failed email=%q: %v", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP. Please try again."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP sent successfully",
		"email":   email,
	})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// @Summary      Verify signup OTP
// @Description  Validates the code; on success with pending signup details the account is created.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      verifyOTPRequest  true  "Email and code"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]interface{}
// @Failure      500      {object}  map[string]interface{}
// @Router       /verify-otp [post]
func (h *OTPHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and OTP are required"})
		return
	}
	email := strings.TrimSpace(req.Email)
	otp := strings.TrimSpace(req.OTP)
	if email == "" || otp == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and OTP are required"})
		return
	}

	user, err := h.service.Verify(email, otp)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOTPNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP expired or not found. Please request a new OTP."})
		case errors.Is(err, services.ErrOTPExpired):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP has expired. Please request a new OTP."})
		case errors.Is(err, services.ErrTooManyAttempts):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Too many failed attempts. Please request a new OTP."})
		case errors.Is(err, services.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid OTP. Please try again."})
		case errors.Is(err, services.ErrDuplicateUser):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User with this email already exists"})
		default:
			log.Printf("[otp][verify] failed email=%q: %v", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create account. Please try again."})
		}
		return
	}

	if user == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified successfully"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account created successfully",
		"user":    user.Public(),
	})
}
