package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/gastozero/backend/internal/auth"
	"github.com/gastozero/backend/internal/common"
	"github.com/gastozero/backend/internal/repository"
)

type registerInput struct {
	Username        string `json:"username" binding:"required,min=3,max=64"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_input", "username and a password of at least 6 characters are required")
		return
	}
	if input.Password != input.ConfirmPassword {
		respondError(c, http.StatusBadRequest, "invalid_input", "password confirmation does not match")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("auth.register.hash_failed", "error", err)
		respondError(c, http.StatusInternalServerError, "internal_error", "could not create account")
		return
	}

	user := &repository.User{Username: input.Username, PasswordHash: string(hash)}
	if err := s.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			respondError(c, http.StatusBadRequest, "invalid_input", "username is already taken")
			return
		}
		s.log.Error("auth.register.create_failed", "error", err)
		respondError(c, http.StatusInternalServerError, "internal_error", "could not create account")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "account created",
		"user":    gin.H{"id": user.ID, "username": user.Username},
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_input", "username and password are required")
		return
	}

	user, err := s.users.FindByUsername(c.Request.Context(), input.Username)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "unauthenticated", "invalid username or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "unauthenticated", "invalid username or password")
		return
	}

	token, err := auth.GenerateToken(s.cfg.Auth.JWTSecret, user.ID, s.cfg.Auth.TokenTTL)
	if err != nil {
		s.log.Error("auth.login.token_failed", "error", err)
		respondError(c, http.StatusInternalServerError, "internal_error", "could not issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    gin.H{"id": user.ID, "username": user.Username},
	})
}

func (s *Server) handleMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthenticated", "access token required")
		return
	}
	user, err := s.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "unauthenticated", "user not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
