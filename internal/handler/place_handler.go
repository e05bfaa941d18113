package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"roadbook/internal/geo"
	"roadbook/internal/model"
	"roadbook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DefaultSearchRadiusKm applies when a location query omits the radius.
const DefaultSearchRadiusKm = 10.0

type PlaceHandler struct {
	placeRepo repository.PlaceRepositoryInterface
}

func NewPlaceHandler(placeRepo repository.PlaceRepositoryInterface) *PlaceHandler {
	return &PlaceHandler{placeRepo: placeRepo}
}

type CreatePlaceRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude" binding:"required"`
	Longitude   *float64 `json:"longitude" binding:"required"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	PlaceType   string   `json:"placeType" binding:"required"`
}

type UpdatePlaceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	City        *string  `json:"city"`
	Country     *string  `json:"country"`
	PlaceType   *string  `json:"placeType"`
}

// PlaceListResponse is the compact list view of a place.
type PlaceListResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	City          string  `json:"city"`
	Country       string  `json:"country"`
	PlaceType     string  `json:"placeType"`
	AverageRating float64 `json:"averageRating"`
}

// PlaceResponse is the detail view; it adds what the list view omits.
type PlaceResponse struct {
	PlaceListResponse
	Description string `json:"description"`
	RatingCount int    `json:"ratingCount"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func placeListResponse(place *model.Place) PlaceListResponse {
	return PlaceListResponse{
		ID:            place.ID.String(),
		Name:          place.Name,
		Latitude:      place.Latitude,
		Longitude:     place.Longitude,
		City:          place.City,
		Country:       place.Country,
		PlaceType:     string(place.PlaceType),
		AverageRating: place.AverageRating,
	}
}

func placeResponse(place *model.Place) PlaceResponse {
	return PlaceResponse{
		PlaceListResponse: placeListResponse(place),
		Description:       place.Description,
		RatingCount:       place.RatingCount,
		CreatedAt:         place.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         place.UpdatedAt.Format(time.RFC3339),
	}
}

func placeList(places []model.Place) []PlaceListResponse {
	response := make([]PlaceListResponse, len(places))
	for i := range places {
		response[i] = placeListResponse(&places[i])
	}
	return response
}

// List dispatches on which query parameters are present, in fixed priority:
// latitude+longitude (radius search), then placeType, then city, then a
// paginated unfiltered listing. Lower-priority filters are ignored when a
// higher-priority one is present.
func (h *PlaceHandler) List(c *gin.Context) {
	latStr := c.Query("latitude")
	lngStr := c.Query("longitude")

	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
			return
		}
		if !geo.ValidCoordinates(lat, lng) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinates out of range"})
			return
		}

		radius := DefaultSearchRadiusKm
		if radiusStr := c.Query("radius"); radiusStr != "" {
			parsed, err := strconv.ParseFloat(radiusStr, 64)
			// Zero is a valid radius: the distance boundary is inclusive,
			// so it matches places at the exact point.
			if err != nil || parsed < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid radius"})
				return
			}
			radius = parsed
		}

		places, err := h.placeRepo.FindByLocation(c.Request.Context(), lat, lng, radius)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve places"})
			return
		}
		c.JSON(http.StatusOK, placeList(places))
		return
	}

	if typeStr := c.Query("placeType"); typeStr != "" {
		placeType, err := model.ParsePlaceType(typeStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid place type"})
			return
		}
		places, err := h.placeRepo.FindByPlaceType(c.Request.Context(), placeType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve places"})
			return
		}
		c.JSON(http.StatusOK, placeList(places))
		return
	}

	if city := c.Query("city"); city != "" {
		places, err := h.placeRepo.FindByCity(c.Request.Context(), city)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve places"})
			return
		}
		c.JSON(http.StatusOK, placeList(places))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	places, err := h.placeRepo.List(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve places"})
		return
	}
	c.JSON(http.StatusOK, placeList(places))
}

// Search performs a case-insensitive substring search over name, description,
// and city. An empty query is an input error, not an empty result.
func (h *PlaceHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	places, err := h.placeRepo.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search places"})
		return
	}

	c.JSON(http.StatusOK, placeList(places))
}

func (h *PlaceHandler) GetByID(c *gin.Context) {
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

	c.JSON(http.StatusOK, placeResponse(place))
}

func (h *PlaceHandler) Create(c *gin.Context) {
	var req CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	placeType, err := model.ParsePlaceType(req.PlaceType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"placeType": "This value is not a valid place type"}})
		return
	}

	if !geo.ValidCoordinates(*req.Latitude, *req.Longitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinates out of range"})
		return
	}

	place := &model.Place{
		Name:        req.Name,
		Description: req.Description,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		City:        req.City,
		Country:     req.Country,
		PlaceType:   placeType,
	}

	if err := h.placeRepo.Create(c.Request.Context(), place); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create place"})
		return
	}

	c.JSON(http.StatusCreated, placeResponse(place))
}

func (h *PlaceHandler) Update(c *gin.Context) {
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

	var req UpdatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if req.PlaceType != nil {
		placeType, err := model.ParsePlaceType(*req.PlaceType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"placeType": "This value is not a valid place type"}})
			return
		}
		place.PlaceType = placeType
	}
	if req.Latitude != nil {
		place.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		place.Longitude = *req.Longitude
	}
	if !geo.ValidCoordinates(place.Latitude, place.Longitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinates out of range"})
		return
	}
	if req.Name != nil {
		place.Name = *req.Name
	}
	if req.Description != nil {
		place.Description = *req.Description
	}
	if req.City != nil {
		place.City = *req.City
	}
	if req.Country != nil {
		place.Country = *req.Country
	}

	if err := h.placeRepo.Save(c.Request.Context(), place); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update place"})
		return
	}

	c.JSON(http.StatusOK, placeResponse(place))
}

func (h *PlaceHandler) Delete(c *gin.Context) {
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

	if err := h.placeRepo.Delete(c.Request.Context(), placeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete place"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Place deleted successfully"})
}
