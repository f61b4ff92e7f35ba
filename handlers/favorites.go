package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogRepo "serenity/database/repository/catalog"
	"serenity/middleware"
	"serenity/services/favorites"
	"serenity/utils"
)

// FavoritesHandler exposes the toggle-style favorites store.
type FavoritesHandler struct {
	store   *favorites.Store
	catalog catalogRepo.CatalogRepository
}

// NewFavoritesHandler constructs the handler.
func NewFavoritesHandler(store *favorites.Store, catalog catalogRepo.CatalogRepository) *FavoritesHandler {
	return &FavoritesHandler{store: store, catalog: catalog}
}

// ToggleFavoriteHandler adds the service to the user's favorites, or
// removes it when already present. Responds with the resulting state.
func (h *FavoritesHandler) ToggleFavoriteHandler(c *gin.Context) {
	serviceID := c.Param("serviceId")

	service, err := h.catalog.GetServiceByID(c.Request.Context(), serviceID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "service not found", "")
		return
	}

	userID := middleware.UserID(c)
	h.store.Toggle(userID, *service)
	c.JSON(http.StatusOK, gin.H{
		"serviceId": serviceID,
		"favorite":  h.store.IsFavorite(userID, serviceID),
	})
}

// ListFavoritesHandler returns the user's liked services in toggle order.
func (h *FavoritesHandler) ListFavoritesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.List(middleware.UserID(c)))
}
