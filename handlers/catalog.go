package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogRepo "serenity/database/repository/catalog"
	"serenity/models"
	"serenity/utils"
)

// CatalogHandler serves category and service CRUD. Write operations sit
// behind the admin middleware; reads are public.
type CatalogHandler struct {
	repo   catalogRepo.CatalogRepository
	logger *zap.Logger
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(repo catalogRepo.CatalogRepository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{repo: repo, logger: logger}
}

// CreateCategoryHandler adds a new category.
func (h *CatalogHandler) CreateCategoryHandler(c *gin.Context) {
	var input struct {
		Title    string `json:"title" binding:"required"`
		ImageURL string `json:"img_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	id, err := h.repo.CreateCategory(c.Request.Context(), models.Category{
		Title:    input.Title,
		ImageURL: input.ImageURL,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create category", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateCategoryHandler updates an existing category.
func (h *CatalogHandler) UpdateCategoryHandler(c *gin.Context) {
	var input struct {
		Title    string `json:"title" binding:"required"`
		ImageURL string `json:"img_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	category := models.Category{ID: c.Param("id"), Title: input.Title, ImageURL: input.ImageURL}
	if err := h.repo.UpdateCategory(c.Request.Context(), category); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to update category", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": category.ID})
}

// DeleteCategoryHandler removes a category. Services referencing it keep
// their dangling category ID, matching the storefront's behavior.
func (h *CatalogHandler) DeleteCategoryHandler(c *gin.Context) {
	if err := h.repo.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to delete category", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCategoriesHandler returns all categories.
func (h *CatalogHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		c.JSON(http.StatusOK, []models.Category{})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateServiceHandler adds a new service.
func (h *CatalogHandler) CreateServiceHandler(c *gin.Context) {
	var input struct {
		Title       string  `json:"title" binding:"required"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		Description string  `json:"description" binding:"required"`
		ImageURL    string  `json:"img_url"`
		CategoryID  string  `json:"categoryId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	id, err := h.repo.CreateService(c.Request.Context(), models.Service{
		Title:       input.Title,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CategoryID:  input.CategoryID,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create service", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateServiceHandler updates an existing service.
func (h *CatalogHandler) UpdateServiceHandler(c *gin.Context) {
	var input struct {
		Title       string  `json:"title" binding:"required"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		Description string  `json:"description" binding:"required"`
		ImageURL    string  `json:"img_url"`
		CategoryID  string  `json:"categoryId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	service := models.Service{
		ID:          c.Param("id"),
		Title:       input.Title,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CategoryID:  input.CategoryID,
	}
	if err := h.repo.UpdateService(c.Request.Context(), service); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to update service", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": service.ID})
}

// DeleteServiceHandler removes a service.
func (h *CatalogHandler) DeleteServiceHandler(c *gin.Context) {
	if err := h.repo.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to delete service", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// GetServiceHandler returns one service by ID.
func (h *CatalogHandler) GetServiceHandler(c *gin.Context) {
	service, err := h.repo.GetServiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "service not found", "")
		return
	}
	c.JSON(http.StatusOK, service)
}

// ListServicesHandler returns all services, optionally filtered by
// category via ?categoryId=.
func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		services []models.Service
		err      error
	)
	if categoryID := c.Query("categoryId"); categoryID != "" {
		services, err = h.repo.ListServicesByCategory(ctx, categoryID)
	} else {
		services, err = h.repo.ListServices(ctx)
	}
	if err != nil {
		h.logger.Error("failed to list services", zap.Error(err))
		c.JSON(http.StatusOK, []models.Service{})
		return
	}
	c.JSON(http.StatusOK, services)
}
