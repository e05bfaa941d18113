package handler_test

import (
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

// Мок репозитория мест
type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) Create(ctx context.Context, place *model.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) Save(ctx context.Context, place *model.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	args := m.Called(ctx, id)
	place := args.Get(0)
	if place == nil {
		return nil, args.Error(1)
	}
	return place.(*model.Place), args.Error(1)
}

func (m *MockPlaceRepository) List(ctx context.Context, page, limit int) ([]model.Place, error) {
	args := m.Called(ctx, page, limit)
	places := args.Get(0)
	if places == nil {
		return nil, args.Error(1)
	}
	return places.([]model.Place), args.Error(1)
}

func (m *MockPlaceRepository) FindByLocation(ctx context.Context, lat, lng, radiusKm float64) ([]model.Place, error) {
	args := m.Called(ctx, lat, lng, radiusKm)
	places := args.Get(0)
	if places == nil {
		return nil, args.Error(1)
	}
	return places.([]model.Place), args.Error(1)
}

func (m *MockPlaceRepository) FindByPlaceType(ctx context.Context, placeType model.PlaceType) ([]model.Place, error) {
	args := m.Called(ctx, placeType)
	places := args.Get(0)
	if places == nil {
		return nil, args.Error(1)
	}
	return places.([]model.Place), args.Error(1)
}

func (m *MockPlaceRepository) FindByCity(ctx context.Context, city string) ([]model.Place, error) {
	args := m.Called(ctx, city)
	places := args.Get(0)
	if places == nil {
		return nil, args.Error(1)
	}
	return places.([]model.Place), args.Error(1)
}

func (m *MockPlaceRepository) Search(ctx context.Context, query string) ([]model.Place, error) {
	args := m.Called(ctx, query)
	places := args.Get(0)
	if places == nil {
		return nil, args.Error(1)
	}
	return places.([]model.Place), args.Error(1)
}

func (m *MockPlaceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Place, error) {
	args := m.Called(ctx, ids)
	places := args.Get(0)
	if places == nil {
		return nil, args.Error(1)
	}
	return places.([]model.Place), args.Error(1)
}

func setupPlaceTest() (*gin.Engine, *MockPlaceRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	mockRepo := new(MockPlaceRepository)
	placeHandler := handler.NewPlaceHandler(mockRepo)

	r.GET("/places", placeHandler.List)
	r.GET("/places/search", placeHandler.Search)

	return r, mockRepo
}

func TestPlaceList_LocationSearch(t *testing.T) {
	// Arrange
	router, mockRepo := setupPlaceTest()

	places := []model.Place{
		{ID: uuid.New(), Name: "Tour Eiffel", Latitude: 48.8584, Longitude: 2.2945, PlaceType: model.PlaceTypeAttraction},
	}
	mockRepo.On("FindByLocation", mock.Anything, 48.8566, 2.3522, 5.0).Return(places, nil)

	// Создаем запрос с координатами и радиусом
	req, _ := http.NewRequest("GET", "/places?latitude=48.8566&longitude=2.3522&radius=5", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response []handler.PlaceListResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
	assert.Equal(t, "Tour Eiffel", response[0].Name)

	mockRepo.AssertExpectations(t)
}

func TestPlaceList_DefaultRadius(t *testing.T) {
	// Arrange
	router, mockRepo := setupPlaceTest()

	// Без параметра radius применяется радиус по умолчанию 10 км
	mockRepo.On("FindByLocation", mock.Anything, 48.8566, 2.3522, handler.DefaultSearchRadiusKm).
		Return([]model.Place{}, nil)

	req, _ := http.NewRequest("GET", "/places?latitude=48.8566&longitude=2.3522", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	mockRepo.AssertExpectations(t)
}

func TestPlaceList_LocationBeatsPlaceType(t *testing.T) {
	// Arrange
	router, mockRepo := setupPlaceTest()

	// Координаты имеют приоритет: placeType в том же запросе игнорируется
	mockRepo.On("FindByLocation", mock.Anything, 48.8566, 2.3522, handler.DefaultSearchRadiusKm).
		Return([]model.Place{}, nil)

	req, _ := http.NewRequest("GET", "/places?latitude=48.8566&longitude=2.3522&placeType=MUSEUM", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "FindByPlaceType", mock.Anything, mock.Anything)
}

func TestPlaceList_InvalidCoordinates(t *testing.T) {
	// Arrange
	router, _ := setupPlaceTest()

	// Нечисловые координаты отклоняются
	req, _ := http.NewRequest("GET", "/places?latitude=abc&longitude=2.3522", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid coordinates")
}

func TestPlaceList_CoordinatesOutOfRange(t *testing.T) {
	// Arrange
	router, _ := setupPlaceTest()

	req, _ := http.NewRequest("GET", "/places?latitude=91&longitude=2.3522", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Coordinates out of range")
}

func TestPlaceList_InvalidRadius(t *testing.T) {
	// Arrange
	router, _ := setupPlaceTest()

	// Отрицательный радиус отклоняется
	req, _ := http.NewRequest("GET", "/places?latitude=48.8566&longitude=2.3522&radius=-1", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid radius")
}

func TestPlaceList_ZeroRadius(t *testing.T) {
	// Arrange
	router, mockRepo := setupPlaceTest()

	// Нулевой радиус допустим: граница включительная, найдутся места
	// точно в заданной точке
	places := []model.Place{
		{ID: uuid.New(), Name: "Tour Eiffel", Latitude: 48.8584, Longitude: 2.2945, PlaceType: model.PlaceTypeAttraction},
	}
	mockRepo.On("FindByLocation", mock.Anything, 48.8584, 2.2945, 0.0).Return(places, nil)

	req, _ := http.NewRequest("GET", "/places?latitude=48.8584&longitude=2.2945&radius=0", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response []handler.PlaceListResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)

	mockRepo.AssertExpectations(t)
}

func TestPlaceList_ByPlaceType(t *testing.T) {
	// Arrange
	router, mockRepo := setupPlaceTest()

	// Тип места парсится без учета регистра
	mockRepo.On("FindByPlaceType", mock.Anything, model.PlaceTypeMuseum).Return([]model.Place{}, nil)

	req, _ := http.NewRequest("GET", "/places?placeType=museum", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	mockRepo.AssertExpectations(t)
}

func TestPlaceList_InvalidPlaceType(t *testing.T) {
	// Arrange
	router, _ := setupPlaceTest()

	req, _ := http.NewRequest("GET", "/places?placeType=SPACESHIP", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid place type")
}

func TestPlaceList_ByCity(t *testing.T) {
	// Arrange
	router, mockRepo := setupPlaceTest()

	mockRepo.On("FindByCity", mock.Anything, "Paris").Return([]model.Place{}, nil)

	req, _ := http.NewRequest("GET", "/places?city=Paris", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	mockRepo.AssertExpectations(t)
}

func TestPlaceList_Paginated(t *testing.T) {
	// Arrange
	router, mockRepo := setupPlaceTest()

	// Без фильтров возвращается постраничный список
	mockRepo.On("List", mock.Anything, 2, 5).Return([]model.Place{}, nil)

	req, _ := http.NewRequest("GET", "/places?page=2&limit=5", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	mockRepo.AssertExpectations(t)
}

func TestPlaceSearch_EmptyQuery(t *testing.T) {
	// Arrange
	router, _ := setupPlaceTest()

	// Пустой запрос - это ошибка ввода, а не пустой результат
	req, _ := http.NewRequest("GET", "/places/search?q=", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Search query is required")
}

func TestPlaceSearch_WhitespaceQuery(t *testing.T) {
	// Arrange
	router, _ := setupPlaceTest()

	// Запрос из одних пробелов тоже отклоняется
	req, _ := http.NewRequest("GET", "/places/search?q=%20%20", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Search query is required")
}

func TestPlaceSearch_Success(t *testing.T) {
	// Arrange
	router, mockRepo := setupPlaceTest()

	places := []model.Place{
		{ID: uuid.New(), Name: "Louvre", City: "Paris", PlaceType: model.PlaceTypeMuseum},
	}
	mockRepo.On("Search", mock.Anything, "louvre").Return(places, nil)

	req, _ := http.NewRequest("GET", "/places/search?q=louvre", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response []handler.PlaceListResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
	assert.Equal(t, "Louvre", response[0].Name)

	mockRepo.AssertExpectations(t)
}
