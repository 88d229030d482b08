package handlers

import (
	"net/http"
	"time"

	userRepo "bookmyspot/database/repository/user"
	"bookmyspot/models"
	"bookmyspot/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues tokens for the marketplace's three account roles.
type AuthHandler struct {
	Users userRepo.UserRepository
}

func NewAuthHandler(users userRepo.UserRepository) *AuthHandler {
	return &AuthHandler{Users: users}
}

// SignUp registers a driver or space-owner account. Admin accounts are
// provisioned out of band.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role" binding:"required"`
		FCMToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.Role != models.RoleDriver && input.Role != models.RoleOwner {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "role must be driver or owner")
		return
	}

	if existing, err := h.Users.GetByEmail(input.Email); err == nil && existing != nil {
		utils.JSONError(c, http.StatusConflict, "account exists", "an account with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "signup failed", err.Error())
		return
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		FCMToken:     input.FCMToken,
	}
	if err := h.Users.Create(u); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "signup failed", err.Error())
		return
	}

	token, err := utils.GenerateToken(u.ID, u.Email, 24*time.Hour)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "signup failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": u})
}

// SignIn exchanges credentials for a token.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		FCMToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	u, err := h.Users.GetByEmail(input.Email)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "signin failed", "invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "signin failed", "invalid email or password")
		return
	}

	if input.FCMToken != "" && input.FCMToken != u.FCMToken {
		if err := h.Users.SetFCMToken(u.ID, input.FCMToken); err != nil {
			utils.GetLogger().Warn("failed to refresh fcm token: " + err.Error())
		}
	}

	token, err := utils.GenerateToken(u.ID, u.Email, 24*time.Hour)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "signin failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}
