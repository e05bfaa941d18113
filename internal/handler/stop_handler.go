package handler

import (
	"net/http"
	"time"

	"roadbook/internal/middleware"
	"roadbook/internal/model"
	"roadbook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// StopHandler manages the stops of a roadbook directly, for itineraries that
// need more than the place-list shortcut on the roadbook endpoints. All
// operations are owner-only; the roadbook access check answers not-found for
// anything the actor does not own.
type StopHandler struct {
	roadbookRepo repository.RoadbookRepositoryInterface
	placeRepo    repository.PlaceRepositoryInterface
}

func NewStopHandler(roadbookRepo repository.RoadbookRepositoryInterface, placeRepo repository.PlaceRepositoryInterface) *StopHandler {
	return &StopHandler{roadbookRepo: roadbookRepo, placeRepo: placeRepo}
}

type CreateStopRequest struct {
	PlaceID        *string    `json:"placeId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	CustomLocation string     `json:"customLocation"`
	DayNumber      *int       `json:"dayNumber" binding:"omitempty,min=1"`
	OrderIndex     *int       `json:"orderIndex" binding:"omitempty,min=0"`
	ArrivalDate    *time.Time `json:"arrivalDate"`
	DepartureDate  *time.Time `json:"departureDate"`
	Content        string     `json:"content"`
	Photos         []string   `json:"photos"`
	Mood           string     `json:"mood"`
	Weather        string     `json:"weather"`
	Temperature    *float64   `json:"temperature"`
	Expenses       *float64   `json:"expenses"`
}

type UpdateStopRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	CustomLocation *string    `json:"customLocation"`
	DayNumber      *int       `json:"dayNumber" binding:"omitempty,min=1"`
	OrderIndex     *int       `json:"orderIndex" binding:"omitempty,min=0"`
	ArrivalDate    *time.Time `json:"arrivalDate"`
	DepartureDate  *time.Time `json:"departureDate"`
	Content        *string    `json:"content"`
	Photos         *[]string  `json:"photos"`
	Mood           *string    `json:"mood"`
	Weather        *string    `json:"weather"`
	Temperature    *float64   `json:"temperature"`
	Expenses       *float64   `json:"expenses"`
}

func stopResponse(stop *model.RoadbookStop) StopResponse {
	var placeID *string
	if stop.PlaceID != nil {
		id := stop.PlaceID.String()
		placeID = &id
	}
	return StopResponse{
		ID:             stop.ID.String(),
		PlaceID:        placeID,
		Title:          stop.Title,
		Description:    stop.Description,
		CustomLocation: stop.CustomLocation,
		DayNumber:      stop.DayNumber,
		OrderIndex:     stop.OrderIndex,
	}
}

// ownedRoadbook resolves the roadbook only when the actor owns it; writes to
// stops never go through share grants.
func (h *StopHandler) ownedRoadbook(c *gin.Context, roadbookID, userID uuid.UUID) (*model.Roadbook, bool) {
	roadbook, err := h.roadbookRepo.FindOneByIDAndUser(c.Request.Context(), roadbookID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve roadbook"})
		return nil, false
	}
	if roadbook == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Roadbook not found or access denied"})
		return nil, false
	}
	return roadbook, true
}

func (h *StopHandler) Create(c *gin.Context) {
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

	if _, ok := h.ownedRoadbook(c, roadbookID, authenticatedUserID); !ok {
		return
	}

	var req CreateStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	stop := &model.RoadbookStop{
		RoadbookID:     roadbookID,
		Title:          req.Title,
		Description:    req.Description,
		CustomLocation: req.CustomLocation,
		DayNumber:      1,
		ArrivalDate:    req.ArrivalDate,
		DepartureDate:  req.DepartureDate,
		Content:        req.Content,
		Photos:         pq.StringArray(req.Photos),
		Mood:           req.Mood,
		Weather:        req.Weather,
		Temperature:    req.Temperature,
		Expenses:       req.Expenses,
	}
	if req.DayNumber != nil {
		stop.DayNumber = *req.DayNumber
	}
	if req.OrderIndex != nil {
		stop.OrderIndex = *req.OrderIndex
	}

	if req.PlaceID != nil {
		placeID, err := uuid.Parse(*req.PlaceID)
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
		stop.PlaceID = &place.ID
		if stop.Title == "" {
			stop.Title = place.Name
		}
	}

	if err := h.roadbookRepo.CreateStop(c.Request.Context(), stop); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create stop"})
		return
	}

	c.JSON(http.StatusCreated, stopResponse(stop))
}

func (h *StopHandler) Update(c *gin.Context) {
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

	stopID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stop ID format"})
		return
	}

	stop, err := h.roadbookRepo.GetStopByID(c.Request.Context(), stopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stop"})
		return
	}
	if stop == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stop not found"})
		return
	}

	if _, ok := h.ownedRoadbook(c, stop.RoadbookID, authenticatedUserID); !ok {
		return
	}

	var req UpdateStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if req.Title != nil {
		stop.Title = *req.Title
	}
	if req.Description != nil {
		stop.Description = *req.Description
	}
	if req.CustomLocation != nil {
		stop.CustomLocation = *req.CustomLocation
	}
	if req.DayNumber != nil {
		stop.DayNumber = *req.DayNumber
	}
	if req.OrderIndex != nil {
		stop.OrderIndex = *req.OrderIndex
	}
	if req.ArrivalDate != nil {
		stop.ArrivalDate = req.ArrivalDate
	}
	if req.DepartureDate != nil {
		stop.DepartureDate = req.DepartureDate
	}
	if req.Content != nil {
		stop.Content = *req.Content
	}
	if req.Photos != nil {
		stop.Photos = pq.StringArray(*req.Photos)
	}
	if req.Mood != nil {
		stop.Mood = *req.Mood
	}
	if req.Weather != nil {
		stop.Weather = *req.Weather
	}
	if req.Temperature != nil {
		stop.Temperature = req.Temperature
	}
	if req.Expenses != nil {
		stop.Expenses = req.Expenses
	}

	if err := h.roadbookRepo.SaveStop(c.Request.Context(), stop); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stop"})
		return
	}

	c.JSON(http.StatusOK, stopResponse(stop))
}

func (h *StopHandler) Delete(c *gin.Context) {
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

	stopID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stop ID format"})
		return
	}

	stop, err := h.roadbookRepo.GetStopByID(c.Request.Context(), stopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stop"})
		return
	}
	if stop == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stop not found"})
		return
	}

	if _, ok := h.ownedRoadbook(c, stop.RoadbookID, authenticatedUserID); !ok {
		return
	}

	if err := h.roadbookRepo.DeleteStop(c.Request.Context(), stopID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete stop"})
		return
	}

	c.Status(http.StatusNoContent)
}
