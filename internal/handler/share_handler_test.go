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

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Мок репозитория грантов доступа
type MockSharedRoadbookRepository struct {
	mock.Mock
}

func (m *MockSharedRoadbookRepository) Share(ctx context.Context, roadbookID, withUserID, byUserID uuid.UUID, canEdit bool, message string) error {
	args := m.Called(ctx, roadbookID, withUserID, byUserID, canEdit, message)
	return args.Error(0)
}

func (m *MockSharedRoadbookRepository) Revoke(ctx context.Context, roadbookID, withUserID uuid.UUID) error {
	args := m.Called(ctx, roadbookID, withUserID)
	return args.Error(0)
}

func (m *MockSharedRoadbookRepository) GetGrant(ctx context.Context, roadbookID, userID uuid.UUID) (*model.SharedRoadbook, error) {
	args := m.Called(ctx, roadbookID, userID)
	grant := args.Get(0)
	if grant == nil {
		return nil, args.Error(1)
	}
	return grant.(*model.SharedRoadbook), args.Error(1)
}

func (m *MockSharedRoadbookRepository) ListForRoadbook(ctx context.Context, roadbookID uuid.UUID) ([]model.SharedRoadbook, error) {
	args := m.Called(ctx, roadbookID)
	grants := args.Get(0)
	if grants == nil {
		return nil, args.Error(1)
	}
	return grants.([]model.SharedRoadbook), args.Error(1)
}

func (m *MockSharedRoadbookRepository) ListSharedWith(ctx context.Context, userID uuid.UUID) ([]model.Roadbook, error) {
	args := m.Called(ctx, userID)
	roadbooks := args.Get(0)
	if roadbooks == nil {
		return nil, args.Error(1)
	}
	return roadbooks.([]model.Roadbook), args.Error(1)
}

func setupShareTest(userID uuid.UUID) (*gin.Engine, *MockRoadbookRepository, *MockUserRepository, *MockSharedRoadbookRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	mockRoadbookRepo := new(MockRoadbookRepository)
	mockUserRepo := new(MockUserRepository)
	mockShareRepo := new(MockSharedRoadbookRepository)
	shareHandler := handler.NewShareHandler(mockRoadbookRepo, mockUserRepo, mockShareRepo)

	authed := r.Group("/")
	authed.Use(fakeAuth(userID))
	{
		authed.POST("/roadbooks/:id/share", shareHandler.Share)
		authed.DELETE("/roadbooks/:id/share/:user_id", shareHandler.Revoke)
		authed.GET("/roadbooks/:id/share", shareHandler.ListShares)
	}

	return r, mockRoadbookRepo, mockUserRepo, mockShareRepo
}

func TestShare_Success(t *testing.T) {
	// Arrange
	ownerID := uuid.New()
	router, mockRoadbookRepo, mockUserRepo, mockShareRepo := setupShareTest(ownerID)

	roadbook := &model.Roadbook{ID: uuid.New(), UserID: ownerID, Title: "Trip", Template: model.TemplateSimple}
	recipient := &model.User{ID: uuid.New(), Email: "friend@example.com", Username: "friend"}

	mockRoadbookRepo.On("FindOneByIDAndUser", mock.Anything, roadbook.ID, ownerID).Return(roadbook, nil)
	mockUserRepo.On("FindByEmail", mock.Anything, "friend@example.com").Return(recipient, nil)
	mockShareRepo.On("GetGrant", mock.Anything, roadbook.ID, recipient.ID).Return(nil, nil)
	mockShareRepo.On("Share", mock.Anything, roadbook.ID, recipient.ID, ownerID, true, "enjoy").Return(nil)

	reqBody := handler.ShareRoadbookRequest{Email: "friend@example.com", CanEdit: true, Message: "enjoy"}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/roadbooks/"+roadbook.ID.String()+"/share", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Roadbook shared successfully")

	mockRoadbookRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockShareRepo.AssertExpectations(t)
}

func TestShare_ReplacesExistingGrant(t *testing.T) {
	// Arrange
	ownerID := uuid.New()
	router, mockRoadbookRepo, mockUserRepo, mockShareRepo := setupShareTest(ownerID)

	roadbook := &model.Roadbook{ID: uuid.New(), UserID: ownerID, Title: "Trip", Template: model.TemplateSimple}
	recipient := &model.User{ID: uuid.New(), Email: "friend@example.com", Username: "friend"}

	// Повторная выдача доступа тому же получателю заменяет существующий грант
	grant := &model.SharedRoadbook{
		ID:               uuid.New(),
		RoadbookID:       roadbook.ID,
		SharedWithUserID: recipient.ID,
		SharedByUserID:   ownerID,
		CanEdit:          false,
	}

	mockRoadbookRepo.On("FindOneByIDAndUser", mock.Anything, roadbook.ID, ownerID).Return(roadbook, nil)
	mockUserRepo.On("FindByEmail", mock.Anything, "friend@example.com").Return(recipient, nil)
	mockShareRepo.On("GetGrant", mock.Anything, roadbook.ID, recipient.ID).Return(grant, nil)
	mockShareRepo.On("Share", mock.Anything, roadbook.ID, recipient.ID, ownerID, true, "").Return(nil)

	reqBody := handler.ShareRoadbookRequest{Email: "friend@example.com", CanEdit: true}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/roadbooks/"+roadbook.ID.String()+"/share", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Roadbook share updated successfully")

	mockShareRepo.AssertExpectations(t)
}

func TestShare_NotOwner(t *testing.T) {
	// Arrange
	actorID := uuid.New()
	router, mockRoadbookRepo, _, mockShareRepo := setupShareTest(actorID)

	// Попытка поделиться чужим роадбуком выглядит как работа с несуществующим
	roadbookID := uuid.New()
	mockRoadbookRepo.On("FindOneByIDAndUser", mock.Anything, roadbookID, actorID).Return(nil, nil)

	reqBody := handler.ShareRoadbookRequest{Email: "friend@example.com"}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/roadbooks/"+roadbookID.String()+"/share", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Roadbook not found or access denied")

	mockRoadbookRepo.AssertExpectations(t)
	mockShareRepo.AssertNotCalled(t, "Share", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestShare_WithYourself(t *testing.T) {
	// Arrange
	ownerID := uuid.New()
	router, mockRoadbookRepo, mockUserRepo, _ := setupShareTest(ownerID)

	roadbook := &model.Roadbook{ID: uuid.New(), UserID: ownerID, Title: "Trip", Template: model.TemplateSimple}
	owner := &model.User{ID: ownerID, Email: "me@example.com", Username: "me"}

	mockRoadbookRepo.On("FindOneByIDAndUser", mock.Anything, roadbook.ID, ownerID).Return(roadbook, nil)
	mockUserRepo.On("FindByEmail", mock.Anything, "me@example.com").Return(owner, nil)

	reqBody := handler.ShareRoadbookRequest{Email: "me@example.com"}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/roadbooks/"+roadbook.ID.String()+"/share", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Cannot share roadbook with yourself")
}

func TestShare_RecipientNotFound(t *testing.T) {
	// Arrange
	ownerID := uuid.New()
	router, mockRoadbookRepo, mockUserRepo, _ := setupShareTest(ownerID)

	roadbook := &model.Roadbook{ID: uuid.New(), UserID: ownerID, Title: "Trip", Template: model.TemplateSimple}

	mockRoadbookRepo.On("FindOneByIDAndUser", mock.Anything, roadbook.ID, ownerID).Return(roadbook, nil)
	mockUserRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	reqBody := handler.ShareRoadbookRequest{Email: "ghost@example.com"}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/roadbooks/"+roadbook.ID.String()+"/share", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "User not found")
}

func TestRevoke_Owner(t *testing.T) {
	// Arrange
	ownerID := uuid.New()
	router, mockRoadbookRepo, _, mockShareRepo := setupShareTest(ownerID)

	roadbook := &model.Roadbook{ID: uuid.New(), UserID: ownerID, Title: "Trip", Template: model.TemplateSimple}
	recipientID := uuid.New()

	mockRoadbookRepo.On("FindOneByIDAndUser", mock.Anything, roadbook.ID, ownerID).Return(roadbook, nil)
	mockShareRepo.On("Revoke", mock.Anything, roadbook.ID, recipientID).Return(nil)

	req, _ := http.NewRequest("DELETE", "/roadbooks/"+roadbook.ID.String()+"/share/"+recipientID.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Roadbook access revoked successfully")

	mockRoadbookRepo.AssertExpectations(t)
	mockShareRepo.AssertExpectations(t)
}
