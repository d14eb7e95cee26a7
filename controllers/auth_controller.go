package controllers

import (
	"errors"
	"strconv"
	"ua-shop/models"
	"ua-shop/repositories"
	"ua-shop/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// @Summary Register
// @Description Register a new customer account
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "All fields are required", Error: err.Error()})
		return
	}

	_, err := ctrl.authService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(409, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		if errors.Is(err, services.ErrInvalidEmail) ||
			errors.Is(err, services.ErrInvalidMobileNo) ||
			errors.Is(err, services.ErrPasswordTooShort) {
			c.JSON(400, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Server error during registration"})
		return
	}

	c.JSON(201, models.Response{Success: true, Message: "Registered successfully"})
}

// @Summary Login
// @Description Authenticate and receive an access token
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /users/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Email and password are required", Error: err.Error()})
		return
	}

	result, err := ctrl.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidEmail) {
			c.JSON(400, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(401, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Server error during login"})
		return
	}

	c.JSON(200, result)
}

// @Summary User details
// @Description Get the authenticated user's profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/details [get]
func (ctrl *AuthController) GetDetails(c *gin.Context) {
	userID := c.GetInt("user_id")

	user, err := ctrl.authService.GetDetails(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(404, models.ErrorResponse{Success: false, Message: "User not found"})
			return
		}
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to fetch user profile"})
		return
	}

	c.JSON(200, user)
}

// @Summary Reset password
// @Description Set a new password for the authenticated user
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ResetPasswordRequest true "New password"
// @Success 200 {object} models.Response
// @Router /users/reset-password [post]
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "New password is required", Error: err.Error()})
		return
	}

	if err := ctrl.authService.ResetPassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrPasswordTooShort) {
			c.JSON(400, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to reset password"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Password reset successful"})
}

// @Summary Set as admin
// @Description Promote a user to administrator (Admin)
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/set-as-admin [patch]
func (ctrl *AuthController) SetAsAdmin(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid user ID"})
		return
	}

	user, err := ctrl.authService.SetAsAdmin(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(404, models.ErrorResponse{Success: false, Message: "User not found"})
			return
		}
		if errors.Is(err, services.ErrAlreadyAdmin) {
			c.JSON(400, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to promote user"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "User promoted to admin", Data: user})
}
