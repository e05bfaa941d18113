package handler

import (
	"errors"
	"net/http"
	"time"

	"roadbook/internal/middleware"
	"roadbook/internal/model"
	"roadbook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TipHandler struct {
	tipRepo   repository.TipRepositoryInterface
	placeRepo repository.PlaceRepositoryInterface
}

func NewTipHandler(tipRepo repository.TipRepositoryInterface, placeRepo repository.PlaceRepositoryInterface) *TipHandler {
	return &TipHandler{tipRepo: tipRepo, placeRepo: placeRepo}
}

type CreateTipRequest struct {
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
}

type VoteRequest struct {
	VoteType string `json:"voteType" binding:"required"`
}

type TipResponse struct {
	ID        string `json:"id"`
	PlaceID   string `json:"placeId"`
	UserID    string `json:"userId"`
	Category  string `json:"category"`
	Content   string `json:"content"`
	UpVotes   int    `json:"upVotes"`
	DownVotes int    `json:"downVotes"`
	CreatedAt string `json:"createdAt"`
}

func tipResponse(tip *model.Tip) TipResponse {
	return TipResponse{
		ID:        tip.ID.String(),
		PlaceID:   tip.PlaceID.String(),
		UserID:    tip.UserID.String(),
		Category:  string(tip.Category),
		Content:   tip.Content,
		UpVotes:   tip.UpVotes,
		DownVotes: tip.DownVotes,
		CreatedAt: tip.CreatedAt.Format(time.RFC3339),
	}
}

func (h *TipHandler) Create(c *gin.Context) {
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

	var req CreateTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	category := model.TipGeneral
	if req.Category != "" {
		parsed, err := model.ParseTipCategory(req.Category)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"category": "This value is not a valid tip category"}})
			return
		}
		category = parsed
	}

	tip := &model.Tip{
		PlaceID:  placeID,
		UserID:   authenticatedUserID,
		Category: category,
		Content:  req.Content,
	}

	if err := h.tipRepo.Create(c.Request.Context(), tip); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tip"})
		return
	}

	c.JSON(http.StatusCreated, tipResponse(tip))
}

func (h *TipHandler) ListForPlace(c *gin.Context) {
	placeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid place ID format"})
		return
	}

	tips, err := h.tipRepo.ListForPlace(c.Request.Context(), placeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tips"})
		return
	}

	response := make([]TipResponse, len(tips))
	for i := range tips {
		response[i] = tipResponse(&tips[i])
	}
	c.JSON(http.StatusOK, response)
}

// Vote records the actor's up or down vote. A second vote replaces the first.
func (h *TipHandler) Vote(c *gin.Context) {
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

	tipID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tip ID format"})
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	voteType, err := model.ParseVoteType(req.VoteType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"voteType": "This value must be UP or DOWN"}})
		return
	}

	if _, err := h.tipRepo.GetByID(c.Request.Context(), tipID); err != nil {
		if errors.Is(err, repository.ErrTipNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tip not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tip"})
		return
	}

	if err := h.tipRepo.Vote(c.Request.Context(), tipID, authenticatedUserID, voteType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded"})
}

func (h *TipHandler) RemoveVote(c *gin.Context) {
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

	tipID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tip ID format"})
		return
	}

	if err := h.tipRepo.RemoveVote(c.Request.Context(), tipID, authenticatedUserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote removed"})
}
