package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"roadbook/internal/handler"
	"roadbook/internal/model"
	"roadbook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Мок репозитория советов
type MockTipRepository struct {
	mock.Mock
}

func (m *MockTipRepository) Create(ctx context.Context, tip *model.Tip) error {
	args := m.Called(ctx, tip)
	return args.Error(0)
}

func (m *MockTipRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tip, error) {
	args := m.Called(ctx, id)
	tip := args.Get(0)
	if tip == nil {
		return nil, args.Error(1)
	}
	return tip.(*model.Tip), args.Error(1)
}

func (m *MockTipRepository) ListForPlace(ctx context.Context, placeID uuid.UUID) ([]model.Tip, error) {
	args := m.Called(ctx, placeID)
	tips := args.Get(0)
	if tips == nil {
		return nil, args.Error(1)
	}
	return tips.([]model.Tip), args.Error(1)
}

func (m *MockTipRepository) Vote(ctx context.Context, tipID, userID uuid.UUID, voteType model.VoteType) error {
	args := m.Called(ctx, tipID, userID, voteType)
	return args.Error(0)
}

func (m *MockTipRepository) RemoveVote(ctx context.Context, tipID, userID uuid.UUID) error {
	args := m.Called(ctx, tipID, userID)
	return args.Error(0)
}

func setupTipTest(userID uuid.UUID) (*gin.Engine, *MockTipRepository, *MockPlaceRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	mockTipRepo := new(MockTipRepository)
	mockPlaceRepo := new(MockPlaceRepository)
	tipHandler := handler.NewTipHandler(mockTipRepo, mockPlaceRepo)

	authed := r.Group("/")
	authed.Use(fakeAuth(userID))
	{
		authed.POST("/places/:id/tips", tipHandler.Create)
		authed.GET("/places/:id/tips", tipHandler.ListForPlace)
		authed.POST("/tips/:id/vote", tipHandler.Vote)
		authed.DELETE("/tips/:id/vote", tipHandler.RemoveVote)
	}

	return r, mockTipRepo, mockPlaceRepo
}

func TestTipCreate_DefaultCategory(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTipRepo, mockPlaceRepo := setupTipTest(userID)

	place := &model.Place{ID: uuid.New(), Name: "Louvre", PlaceType: model.PlaceTypeMuseum}
	mockPlaceRepo.On("GetByID", mock.Anything, place.ID).Return(place, nil)

	// Без категории совет получает категорию GENERAL
	mockTipRepo.On("Create", mock.Anything, mock.MatchedBy(func(tip *model.Tip) bool {
		return tip.Category == model.TipGeneral && tip.UserID == userID
	})).Return(nil)

	reqBody := handler.CreateTipRequest{Content: "Go early to skip the line"}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/places/"+place.ID.String()+"/tips", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)
	mockTipRepo.AssertExpectations(t)
	mockPlaceRepo.AssertExpectations(t)
}

func TestTipCreate_InvalidCategory(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTipRepo, mockPlaceRepo := setupTipTest(userID)

	place := &model.Place{ID: uuid.New(), Name: "Louvre", PlaceType: model.PlaceTypeMuseum}
	mockPlaceRepo.On("GetByID", mock.Anything, place.ID).Return(place, nil)

	reqBody := handler.CreateTipRequest{Content: "text", Category: "GOSSIP"}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/places/"+place.ID.String()+"/tips", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockTipRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTipVote_Success(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTipRepo, _ := setupTipTest(userID)

	tip := &model.Tip{ID: uuid.New(), PlaceID: uuid.New(), UserID: uuid.New(), Category: model.TipGeneral}
	mockTipRepo.On("GetByID", mock.Anything, tip.ID).Return(tip, nil)
	mockTipRepo.On("Vote", mock.Anything, tip.ID, userID, model.VoteUp).Return(nil)

	// Направление голоса парсится без учета регистра
	reqBody := handler.VoteRequest{VoteType: "up"}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/tips/"+tip.ID.String()+"/vote", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Vote recorded")
	mockTipRepo.AssertExpectations(t)
}

func TestTipVote_TipNotFound(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTipRepo, _ := setupTipTest(userID)

	tipID := uuid.New()
	mockTipRepo.On("GetByID", mock.Anything, tipID).Return(nil, repository.ErrTipNotFound)

	reqBody := handler.VoteRequest{VoteType: "UP"}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/tips/"+tipID.String()+"/vote", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Tip not found")
	mockTipRepo.AssertNotCalled(t, "Vote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTipVote_InvalidDirection(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTipRepo, _ := setupTipTest(userID)

	reqBody := handler.VoteRequest{VoteType: "SIDEWAYS"}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/tips/"+uuid.New().String()+"/vote", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockTipRepo.AssertNotCalled(t, "Vote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
