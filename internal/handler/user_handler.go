package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Sethuso/product-management-system/internal/service"
	"github.com/Sethuso/product-management-system/internal/utils"
)

// UserHandler handles user-service HTTP endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register creates a new user with the default USER role.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body: username, email, and password (min 8 chars) are required")
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "User created successfully", user)
}

// Login verifies credentials and returns a bearer token.
func (h *UserHandler) Login(c *gin.Context) {
	email := c.Query("email")
	password := c.Query("password")
	if email == "" || password == "" {
		utils.Error(c, http.StatusBadRequest, "Query parameters 'email' and 'password' are required")
		return
	}

	token, err := h.userService.Login(c.Request.Context(), email, password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Login successful", token)
}

// ValidateToken checks a token and returns its claims.
func (h *UserHandler) ValidateToken(c *gin.Context) {
	claims, err := h.userService.ValidateToken(c.Request.Context(), c.Query("token"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Token is valid", gin.H{
		"email": claims.Email,
		"role":  claims.Role,
	})
}

// AssignRole changes a user's role by email.
func (h *UserHandler) AssignRole(c *gin.Context) {
	email := c.Query("email")
	roleName := c.Query("roleName")
	if email == "" || roleName == "" {
		utils.Error(c, http.StatusBadRequest, "Query parameters 'email' and 'roleName' are required")
		return
	}

	if err := h.userService.AssignRole(c.Request.Context(), email, roleName); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Role assigned successfully", nil)
}

// DeactivateUser soft-deletes a user.
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.Error(c, http.StatusBadRequest, "Query parameter 'id' must be a positive integer")
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "User deactivated successfully", nil)
}

// GetUser returns a user by email.
func (h *UserHandler) GetUser(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		utils.Error(c, http.StatusBadRequest, "Query parameter 'email' is required")
		return
	}

	user, err := h.userService.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "User retrieved successfully", user)
}

// CreateRoleRequest is the role creation payload.
type CreateRoleRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateRole adds a new role.
func (h *UserHandler) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body: name is required")
		return
	}

	role, err := h.userService.CreateRole(c.Request.Context(), req.Name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Role created successfully", role)
}
