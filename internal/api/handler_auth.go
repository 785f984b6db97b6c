package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"building-telemetry-backend/internal/auth"
)

// messageResponse is the envelope for the auth endpoints.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	User    auth.User `json:"user"`
	Token   string    `json:"token"`
}

// Login handles POST /api/auth/login against the mock user registry.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, messageResponse{Message: "Username and password are required"})
		return
	}

	log.Printf("Login attempt: %s", req.Username)

	user, ok := h.users.Authenticate(req.Username, req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, messageResponse{Message: "Invalid username or password"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful",
		User:    user,
		Token:   auth.Token(user),
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	User    auth.User `json:"user"`
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
		return
	}

	user, err := h.users.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			c.JSON(http.StatusConflict, messageResponse{Message: "Username or email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, messageResponse{Message: "Registration failed"})
		return
	}

	log.Printf("New user registered: %s", user.Username)
	c.JSON(http.StatusCreated, registerResponse{
		Success: true,
		Message: "Registration successful",
		User:    user,
	})
}
