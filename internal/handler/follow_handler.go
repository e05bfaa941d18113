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

type FollowHandler struct {
	followRepo repository.FollowRepositoryInterface
	userRepo   repository.UserRepositoryInterface
}

func NewFollowHandler(followRepo repository.FollowRepositoryInterface, userRepo repository.UserRepositoryInterface) *FollowHandler {
	return &FollowHandler{followRepo: followRepo, userRepo: userRepo}
}

func userList(users []model.User) []UserResponse {
	response := make([]UserResponse, len(users))
	for i := range users {
		response[i] = userResponse(&users[i])
	}
	return response
}

func (h *FollowHandler) Follow(c *gin.Context) {
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

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if targetID == authenticatedUserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	target, err := h.userRepo.GetByID(c.Request.Context(), targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find user"})
		return
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.followRepo.Follow(c.Request.Context(), authenticatedUserID, targetID); err != nil {
		if errors.Is(err, repository.ErrAlreadyFollowing) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already following this user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User followed successfully"})
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
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

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := h.followRepo.Unfollow(c.Request.Context(), authenticatedUserID, targetID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unfollowed successfully"})
}

func (h *FollowHandler) Followers(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	users, err := h.followRepo.Followers(c.Request.Context(), targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve followers"})
		return
	}

	c.JSON(http.StatusOK, userList(users))
}

func (h *FollowHandler) Following(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	users, err := h.followRepo.Following(c.Request.Context(), targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve following"})
		return
	}

	c.JSON(http.StatusOK, userList(users))
}
