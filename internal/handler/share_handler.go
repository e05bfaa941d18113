package handler

import (
	"net/http"
	"time"

	"roadbook/internal/middleware"
	"roadbook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ShareHandler struct {
	roadbookRepo repository.RoadbookRepositoryInterface
	userRepo     repository.UserRepositoryInterface
	shareRepo    repository.SharedRoadbookRepositoryInterface
}

func NewShareHandler(
	roadbookRepo repository.RoadbookRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	shareRepo repository.SharedRoadbookRepositoryInterface,
) *ShareHandler {
	return &ShareHandler{
		roadbookRepo: roadbookRepo,
		userRepo:     userRepo,
		shareRepo:    shareRepo,
	}
}

type ShareRoadbookRequest struct {
	Email   string `json:"email" binding:"required,email"`
	CanEdit bool   `json:"canEdit"`
	Message string `json:"message"`
}

type ShareResponse struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CanEdit   bool   `json:"canEdit"`
	Message   string `json:"message,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// Share grants a recipient access to one of the actor's roadbooks. Non-owners
// get the same not-found answer as for a missing roadbook.
func (h *ShareHandler) Share(c *gin.Context) {
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

	roadbook, err := h.roadbookRepo.FindOneByIDAndUser(c.Request.Context(), roadbookID, authenticatedUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve roadbook"})
		return
	}
	if roadbook == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Roadbook not found or access denied"})
		return
	}

	var req ShareRoadbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	target, err := h.userRepo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find user"})
		return
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if target.ID == authenticatedUserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot share roadbook with yourself"})
		return
	}

	// A second share to the same recipient replaces the grant rather than
	// stacking a new one.
	existing, err := h.shareRepo.GetGrant(c.Request.Context(), roadbookID, target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve share"})
		return
	}

	if err := h.shareRepo.Share(c.Request.Context(), roadbookID, target.ID, authenticatedUserID, req.CanEdit, req.Message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to share roadbook"})
		return
	}

	message := "Roadbook shared successfully"
	if existing != nil {
		message = "Roadbook share updated successfully"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"share": ShareResponse{
			UserID:    target.ID.String(),
			Email:     target.Email,
			Username:  target.Username,
			CanEdit:   req.CanEdit,
			Message:   req.Message,
			CreatedAt: time.Now().Format(time.RFC3339),
		},
	})
}

// Revoke removes a recipient's grant. Owner-only.
func (h *ShareHandler) Revoke(c *gin.Context) {
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

	targetUserID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	roadbook, err := h.roadbookRepo.FindOneByIDAndUser(c.Request.Context(), roadbookID, authenticatedUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve roadbook"})
		return
	}
	if roadbook == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Roadbook not found or access denied"})
		return
	}

	if err := h.shareRepo.Revoke(c.Request.Context(), roadbookID, targetUserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke share"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Roadbook access revoked successfully"})
}

// ListShares returns the grants on one of the actor's roadbooks.
func (h *ShareHandler) ListShares(c *gin.Context) {
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

	roadbook, err := h.roadbookRepo.FindOneByIDAndUser(c.Request.Context(), roadbookID, authenticatedUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve roadbook"})
		return
	}
	if roadbook == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Roadbook not found or access denied"})
		return
	}

	grants, err := h.shareRepo.ListForRoadbook(c.Request.Context(), roadbookID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve shares"})
		return
	}

	response := make([]ShareResponse, len(grants))
	for i, grant := range grants {
		response[i] = ShareResponse{
			UserID:    grant.SharedWithUserID.String(),
			Email:     grant.SharedWith.Email,
			Username:  grant.SharedWith.Username,
			CanEdit:   grant.CanEdit,
			Message:   grant.Message,
			CreatedAt: grant.CreatedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, response)
}

// ListSharedWithMe returns the roadbooks other users shared with the actor.
func (h *ShareHandler) ListSharedWithMe(c *gin.Context) {
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

	roadbooks, err := h.shareRepo.ListSharedWith(c.Request.Context(), authenticatedUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve shared roadbooks"})
		return
	}

	c.JSON(http.StatusOK, roadbookList(roadbooks))
}
