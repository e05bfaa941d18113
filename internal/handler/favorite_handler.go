package handler

import (
	"errors"
	"net/http"

	"roadbook/internal/middleware"
	"roadbook/internal/model"
	"roadbook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FavoriteHandler struct {
	favoriteRepo repository.FavoriteRepositoryInterface
	placeRepo    repository.PlaceRepositoryInterface
	roadbookRepo repository.RoadbookRepositoryInterface

	shareGrantsEnabled bool
}

func NewFavoriteHandler(
	favoriteRepo repository.FavoriteRepositoryInterface,
	placeRepo repository.PlaceRepositoryInterface,
	roadbookRepo repository.RoadbookRepositoryInterface,
	shareGrantsEnabled bool,
) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteRepo:       favoriteRepo,
		placeRepo:          placeRepo,
		roadbookRepo:       roadbookRepo,
		shareGrantsEnabled: shareGrantsEnabled,
	}
}

func (h *FavoriteHandler) AddPlace(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	authenticatedUserID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	placeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid place ID format"})
		return
	}

	place, err := h.placeRepo.GetByID(c.Request.Context(), placeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve place"})
		return
	}
	if place == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Place not found"})
		return
	}

	if err := h.favoriteRepo.AddPlace(c.Request.Context(), authenticatedUserID, placeID); err != nil {
		if errors.Is(err, repository.ErrAlreadyFavorite) {
			c.JSON(http.StatusConflict, gin.H{"error": "Place is already in favorites"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Place added to favorites"})
}

func (h *FavoriteHandler) RemovePlace(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	authenticatedUserID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	placeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid place ID format"})
		return
	}

	if err := h.favoriteRepo.RemovePlace(c.Request.Context(), authenticatedUserID, placeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Place removed from favorites"})
}

func (h *FavoriteHandler) ListPlaces(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	authenticatedUserID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	places, err := h.favoriteRepo.ListPlaces(c.Request.Context(), authenticatedUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve favorites"})
		return
	}

	c.JSON(http.StatusOK, placeList(places))
}

// AddRoadbook favorites a roadbook the actor can read. The readability check
// follows the same rules as roadbook reads, so private roadbooks of other
// users answer not-found.
func (h *FavoriteHandler) AddRoadbook(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	authenticatedUserID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	roadbookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid roadbook ID format"})
		return
	}

	var roadbook *model.Roadbook
	if h.shareGrantsEnabled {
		roadbook, err = h.roadbookRepo.FindOneVisible(c.Request.Context(), roadbookID, authenticatedUserID)
	} else {
		roadbook, err = h.roadbookRepo.FindOneByIDAndUser(c.Request.Context(), roadbookID, authenticatedUserID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve roadbook"})
		return
	}
	if roadbook == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Roadbook not found or access denied"})
		return
	}

	if err := h.favoriteRepo.AddRoadbook(c.Request.Context(), authenticatedUserID, roadbookID); err != nil {
		if errors.Is(err, repository.ErrAlreadyFavorite) {
			c.JSON(http.StatusConflict, gin.H{"error": "Roadbook is already in favorites"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Roadbook added to favorites"})
}

func (h *FavoriteHandler) RemoveRoadbook(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	authenticatedUserID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	roadbookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid roadbook ID format"})
		return
	}

	if err := h.favoriteRepo.RemoveRoadbook(c.Request.Context(), authenticatedUserID, roadbookID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Roadbook removed from favorites"})
}

func (h *FavoriteHandler) ListRoadbooks(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	authenticatedUserID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	roadbooks, err := h.favoriteRepo.ListRoadbooks(c.Request.Context(), authenticatedUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve favorites"})
		return
	}

	c.JSON(http.StatusOK, roadbookList(roadbooks))
}
