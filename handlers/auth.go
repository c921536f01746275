package handlers

import (
	"context"
	"net/http"

	"venus-recipe/apperrors"
	"venus-recipe/middleware"
	"venus-recipe/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest is the public sign-up body. Accounts created this way are always staff.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	CampusID *uint  `json:"campus_id"`
}

// CreateUserRequest lets an admin create an account with any role
type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required,oneof=staff admin"`
	CampusID *uint           `json:"campus_id"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

func newUser(name, email, password string, role models.UserRole, campusID *uint) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CampusID:     campusID,
	}, nil
}

// createUser stores the account, answering 409 itself on a taken email.
// ok is false when a response was already written.
func (h *API) createUser(c *gin.Context, user *models.User) bool {
	if err := h.users.CreateUser(c.Request.Context(), user); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeConflict) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Email already registered"})
			return false
		}
		h.respondError(c, err)
		return false
	}
	return true
}

// Register creates a staff account
func (h *API) Register(c *gin.Context) {
	var req RegisterRequest
	if !h.bind(c, &req) {
		return
	}

	user, err := newUser(req.Name, req.Email, req.Password, models.RoleStaff, req.CampusID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.createUser(c, user) {
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		h.respondError(c, apperrors.NewInternalError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"user":    userView(user),
	})
}

// AdminCreateUser creates a staff or admin account
func (h *API) AdminCreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !h.bind(c, &req) {
		return
	}

	user, err := newUser(req.Name, req.Email, req.Password, req.Role, req.CampusID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.createUser(c, user) {
		return
	}
	h.log.InfoContext(c.Request.Context(), "Account created by admin",
		"user_id", user.ID, "role", user.Role, "admin_id", middleware.GetUserID(c))
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": userView(user)})
}

// EnsureAdmin creates the bootstrap admin account unless the email is
// already registered.
func EnsureAdmin(ctx context.Context, users UserRepository, name, email, password string) (*models.User, error) {
	existing, err := users.UserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}
	user, err := newUser(name, email, password, models.RoleAdmin, nil)
	if err != nil {
		return nil, err
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a staff member and returns a JWT
func (h *API) Login(c *gin.Context) {
	var req LoginRequest
	if !h.bind(c, &req) {
		return
	}

	user, err := h.users.UserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid email or password"})
			return
		}
		h.respondError(c, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid email or password"})
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		h.respondError(c, apperrors.NewInternalError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    userView(user),
	})
}

// GetProfile returns the authenticated user's profile
func (h *API) GetProfile(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
