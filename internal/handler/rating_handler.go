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

type RatingHandler struct {
	ratingRepo repository.RatingRepositoryInterface
	placeRepo  repository.PlaceRepositoryInterface
}

func NewRatingHandler(ratingRepo repository.RatingRepositoryInterface, placeRepo repository.PlaceRepositoryInterface) *RatingHandler {
	return &RatingHandler{ratingRepo: ratingRepo, placeRepo: placeRepo}
}

type CreateRatingRequest struct {
	OverallRating    int        `json:"overallRating" binding:"required,min=1,max=5"`
	AtmosphereRating *int       `json:"atmosphereRating" binding:"omitempty,min=1,max=5"`
	ValueRating      *int       `json:"valueRating" binding:"omitempty,min=1,max=5"`
	ServiceRating    *int       `json:"serviceRating" binding:"omitempty,min=1,max=5"`
	Review           string     `json:"review"`
	Photos           []string   `json:"photos"`
	VisitDate        *time.Time `json:"visitDate"`
}

type RatingResponse struct {
	ID            string `json:"id"`
	PlaceID       string `json:"placeId"`
	UserID        string `json:"userId"`
	OverallRating int    `json:"overallRating"`
	Review        string `json:"review,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

func ratingResponse(rating *model.PlaceRating) RatingResponse {
	return RatingResponse{
		ID:            rating.ID.String(),
		PlaceID:       rating.PlaceID.String(),
		UserID:        rating.UserID.String(),
		OverallRating: rating.OverallRating,
		Review:        rating.Review,
		CreatedAt:     rating.CreatedAt.Format(time.RFC3339),
	}
}

// Create stores a rating; the place's aggregate rating is recomputed as part
// of the same operation.
func (h *RatingHandler) Create(c *gin.Context) {
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

	var req CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	rating := &model.PlaceRating{
		PlaceID:          placeID,
		UserID:           authenticatedUserID,
		OverallRating:    req.OverallRating,
		AtmosphereRating: req.AtmosphereRating,
		ValueRating:      req.ValueRating,
		ServiceRating:    req.ServiceRating,
		Review:           req.Review,
		Photos:           pq.StringArray(req.Photos),
		VisitDate:        req.VisitDate,
	}

	if err := h.ratingRepo.Create(c.Request.Context(), rating); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rating"})
		return
	}

	c.JSON(http.StatusCreated, ratingResponse(rating))
}

func (h *RatingHandler) ListForPlace(c *gin.Context) {
	placeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid place ID format"})
		return
	}

	ratings, err := h.ratingRepo.ListForPlace(c.Request.Context(), placeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ratings"})
		return
	}

	response := make([]RatingResponse, len(ratings))
	for i := range ratings {
		response[i] = ratingResponse(&ratings[i])
	}
	c.JSON(http.StatusOK, response)
}
