package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"roadbook/internal/middleware"
	"roadbook/internal/model"
	"roadbook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type RoadbookHandler struct {
	roadbookRepo repository.RoadbookRepositoryInterface
	placeRepo    repository.PlaceRepositoryInterface

	// shareGrantsEnabled widens GetByID to sharees and public roadbooks.
	// When false (the default), reads are owner-only and everything else is
	// reported as not found, so private roadbook ids cannot be enumerated.
	shareGrantsEnabled bool
}

func NewRoadbookHandler(roadbookRepo repository.RoadbookRepositoryInterface, placeRepo repository.PlaceRepositoryInterface, shareGrantsEnabled bool) *RoadbookHandler {
	return &RoadbookHandler{
		roadbookRepo:       roadbookRepo,
		placeRepo:          placeRepo,
		shareGrantsEnabled: shareGrantsEnabled,
	}
}

type CreateRoadbookRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	CoverImage  string     `json:"coverImage"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Countries   []string   `json:"countries"`
	Tags        []string   `json:"tags"`
	IsPublished bool       `json:"isPublished"`
	IsPublic    bool       `json:"isPublic"`
	Template    string     `json:"template"`
	Theme       *string    `json:"theme"`
	Places      []string   `json:"places"`
}

type UpdateRoadbookRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	CoverImage  *string    `json:"coverImage"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Countries   *[]string  `json:"countries"`
	Tags        *[]string  `json:"tags"`
	IsPublished *bool      `json:"isPublished"`
	IsPublic    *bool      `json:"isPublic"`
	Template    *string    `json:"template"`
	Theme       *string    `json:"theme"`
	Places      *[]string  `json:"places"`
}

// RoadbookListResponse is the compact list view.
type RoadbookListResponse struct {
	ID            string   `json:"id"`
	UserID        string   `json:"userId"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	CoverImage    string   `json:"coverImage,omitempty"`
	Countries     []string `json:"countries,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	IsPublished   bool     `json:"isPublished"`
	IsPublic      bool     `json:"isPublic"`
	ViewCount     int      `json:"viewCount"`
	FavoriteCount int      `json:"favoriteCount"`
	CreatedAt     string   `json:"createdAt"`
}

// RoadbookResponse is the detail view, including stops and timestamps the
// list view omits.
type RoadbookResponse struct {
	RoadbookListResponse
	StartDate   *time.Time     `json:"startDate,omitempty"`
	EndDate     *time.Time     `json:"endDate,omitempty"`
	Template    string         `json:"template"`
	Theme       string         `json:"theme,omitempty"`
	UpdatedAt   string         `json:"updatedAt"`
	PublishedAt *time.Time     `json:"publishedAt,omitempty"`
	Stops       []StopResponse `json:"stops"`
}

type StopResponse struct {
	ID             string  `json:"id"`
	PlaceID        *string `json:"placeId,omitempty"`
	Title          string  `json:"title,omitempty"`
	Description    string  `json:"description,omitempty"`
	CustomLocation string  `json:"customLocation,omitempty"`
	DayNumber      int     `json:"dayNumber"`
	OrderIndex     int     `json:"orderIndex"`
}

func roadbookListResponse(roadbook *model.Roadbook) RoadbookListResponse {
	return RoadbookListResponse{
		ID:            roadbook.ID.String(),
		UserID:        roadbook.UserID.String(),
		Title:         roadbook.Title,
		Description:   roadbook.Description,
		CoverImage:    roadbook.CoverImage,
		Countries:     []string(roadbook.Countries),
		Tags:          []string(roadbook.Tags),
		IsPublished:   roadbook.IsPublished,
		IsPublic:      roadbook.IsPublic,
		ViewCount:     roadbook.ViewCount,
		FavoriteCount: roadbook.FavoriteCount,
		CreatedAt:     roadbook.CreatedAt.Format(time.RFC3339),
	}
}

func roadbookResponse(roadbook *model.Roadbook, stops []model.RoadbookStop) RoadbookResponse {
	stopResponses := make([]StopResponse, len(stops))
	for i, stop := range stops {
		var placeID *string
		if stop.PlaceID != nil {
			id := stop.PlaceID.String()
			placeID = &id
		}
		stopResponses[i] = StopResponse{
			ID:             stop.ID.String(),
			PlaceID:        placeID,
			Title:          stop.Title,
			Description:    stop.Description,
			CustomLocation: stop.CustomLocation,
			DayNumber:      stop.DayNumber,
			OrderIndex:     stop.OrderIndex,
		}
	}

	return RoadbookResponse{
		RoadbookListResponse: roadbookListResponse(roadbook),
		StartDate:            roadbook.StartDate,
		EndDate:              roadbook.EndDate,
		Template:             string(roadbook.Template),
		Theme:                roadbook.Theme,
		UpdatedAt:            roadbook.UpdatedAt.Format(time.RFC3339),
		PublishedAt:          roadbook.PublishedAt,
		Stops:                stopResponses,
	}
}

func roadbookList(roadbooks []model.Roadbook) []RoadbookListResponse {
	response := make([]RoadbookListResponse, len(roadbooks))
	for i := range roadbooks {
		response[i] = roadbookListResponse(&roadbooks[i])
	}
	return response
}

// resolvePlaces applies LenientReferenceResolution: place ids that do not
// parse or do not exist are dropped without error. The result keeps the
// request order of the ids that did resolve.
func (h *RoadbookHandler) resolvePlaces(ctx context.Context, ids []string) ([]model.Place, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		parsed = append(parsed, id)
	}

	found, err := h.placeRepo.FindByIDs(ctx, parsed)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]model.Place, len(found))
	for _, place := range found {
		byID[place.ID] = place
	}

	places := make([]model.Place, 0, len(found))
	for _, id := range parsed {
		if place, ok := byID[id]; ok {
			places = append(places, place)
		}
	}
	return places, nil
}

// List returns the roadbooks the actor owns, newest first.
func (h *RoadbookHandler) List(c *gin.Context) {
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

	roadbooks, err := h.roadbookRepo.FindByUser(c.Request.Context(), authenticatedUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve roadbooks"})
		return
	}

	c.JSON(http.StatusOK, roadbookList(roadbooks))
}

// GetByID resolves the roadbook through the access check. A roadbook the
// actor may not read is answered with the same not-found message as a missing
// one.
func (h *RoadbookHandler) GetByID(c *gin.Context) {
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

	stops, err := h.roadbookRepo.GetStops(c.Request.Context(), roadbookID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stops"})
		return
	}

	c.JSON(http.StatusOK, roadbookResponse(roadbook, stops))
}

func (h *RoadbookHandler) Create(c *gin.Context) {
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

	var req CreateRoadbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	template := model.TemplateSimple
	if req.Template != "" {
		parsed, err := model.ParseBookTemplate(req.Template)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"template": "This value is not a valid template"}})
			return
		}
		template = parsed
	}

	theme := "default"
	if req.Theme != nil {
		theme = *req.Theme
	}

	now := time.Now()
	roadbook := &model.Roadbook{
		UserID:      authenticatedUserID,
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Countries:   pq.StringArray(req.Countries),
		Tags:        pq.StringArray(req.Tags),
		IsPublished: req.IsPublished,
		IsPublic:    req.IsPublic,
		Template:    template,
		Theme:       theme,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if roadbook.IsPublished {
		roadbook.PublishedAt = &now
	}

	if err := h.roadbookRepo.Create(c.Request.Context(), roadbook); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create roadbook"})
		return
	}

	if len(req.Places) > 0 {
		places, err := h.resolvePlaces(c.Request.Context(), req.Places)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve places"})
			return
		}
		if err := h.roadbookRepo.ReplacePlaceStops(c.Request.Context(), roadbook.ID, places); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add places"})
			return
		}
	}

	stops, err := h.roadbookRepo.GetStops(c.Request.Context(), roadbook.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stops"})
		return
	}

	c.JSON(http.StatusCreated, roadbookResponse(roadbook, stops))
}

// Update applies only the provided fields. Writes are owner-only even when
// share grants are enabled; a canEdit grant does not reach this path.
func (h *RoadbookHandler) Update(c *gin.Context) {
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

	var req UpdateRoadbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if req.Template != nil {
		template, err := model.ParseBookTemplate(*req.Template)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"template": "This value is not a valid template"}})
			return
		}
		roadbook.Template = template
	}
	if req.Title != nil {
		roadbook.Title = *req.Title
	}
	if req.Description != nil {
		roadbook.Description = *req.Description
	}
	if req.CoverImage != nil {
		roadbook.CoverImage = *req.CoverImage
	}
	if req.StartDate != nil {
		roadbook.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		roadbook.EndDate = req.EndDate
	}
	if req.Countries != nil {
		roadbook.Countries = pq.StringArray(*req.Countries)
	}
	if req.Tags != nil {
		roadbook.Tags = pq.StringArray(*req.Tags)
	}
	if req.IsPublished != nil {
		roadbook.IsPublished = *req.IsPublished
		if roadbook.IsPublished && roadbook.PublishedAt == nil {
			now := time.Now()
			roadbook.PublishedAt = &now
		}
	}
	if req.IsPublic != nil {
		roadbook.IsPublic = *req.IsPublic
	}
	if req.Theme != nil {
		roadbook.Theme = *req.Theme
	}
	roadbook.UpdatedAt = time.Now()

	if err := h.roadbookRepo.Save(c.Request.Context(), roadbook); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update roadbook"})
		return
	}

	// A provided places list replaces the whole place-derived stop set; it is
	// never merged with the existing one.
	if req.Places != nil {
		places, err := h.resolvePlaces(c.Request.Context(), *req.Places)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve places"})
			return
		}
		if err := h.roadbookRepo.ReplacePlaceStops(c.Request.Context(), roadbook.ID, places); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update places"})
			return
		}
	}

	stops, err := h.roadbookRepo.GetStops(c.Request.Context(), roadbook.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stops"})
		return
	}

	c.JSON(http.StatusOK, roadbookResponse(roadbook, stops))
}

func (h *RoadbookHandler) Delete(c *gin.Context) {
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

	if err := h.roadbookRepo.Delete(c.Request.Context(), roadbookID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete roadbook"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Search matches the query against titles of the actor's own roadbooks only.
func (h *RoadbookHandler) Search(c *gin.Context) {
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

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	roadbooks, err := h.roadbookRepo.SearchByTitle(c.Request.Context(), query, authenticatedUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search roadbooks"})
		return
	}

	c.JSON(http.StatusOK, roadbookList(roadbooks))
}
