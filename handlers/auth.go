package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	adminRepo "serenity/database/repository/admin"
	"serenity/utils"
)

const adminTokenTTL = 12 * time.Hour

// AdminAuthHandler serves back-office login.
type AdminAuthHandler struct {
	repo   adminRepo.AdminRepository
	logger *zap.Logger
}

// NewAdminAuthHandler constructs the handler.
func NewAdminAuthHandler(repo adminRepo.AdminRepository, logger *zap.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{repo: repo, logger: logger}
}

// LoginHandler exchanges admin credentials for a JWT.
func (h *AdminAuthHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	admin, err := h.repo.GetByEmail(c.Request.Context(), input.Email)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := utils.GenerateAdminToken(admin.ID, admin.Email, adminTokenTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	h.logger.Info("admin signed in", zap.String("admin", admin.ID))
	c.JSON(http.StatusOK, gin.H{"token": token, "email": admin.Email})
}
