package repository

import (
	"context"
	"errors"
	"strings"

	"roadbook/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// searchResultLimit caps text search results. Radius/type/city queries are
// unbounded.
const searchResultLimit = 50

// haversineExpr computes the great-circle distance in kilometers between the
// query point (lat, lng, lat) and a row's stored coordinates, on a sphere of
// radius 6371 km.
const haversineExpr = "(6371 * acos(cos(radians(?)) * cos(radians(latitude)) * " +
	"cos(radians(longitude) - radians(?)) + sin(radians(?)) * sin(radians(latitude))))"

type PlaceRepository struct {
	db *gorm.DB
}

type PlaceRepositoryInterface interface {
	Create(ctx context.Context, place *model.Place) error
	Save(ctx context.Context, place *model.Place) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Place, error)
	List(ctx context.Context, page, limit int) ([]model.Place, error)
	FindByLocation(ctx context.Context, lat, lng, radiusKm float64) ([]model.Place, error)
	FindByPlaceType(ctx context.Context, placeType model.PlaceType) ([]model.Place, error)
	FindByCity(ctx context.Context, city string) ([]model.Place, error)
	Search(ctx context.Context, query string) ([]model.Place, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Place, error)
}

var _ PlaceRepositoryInterface = (*PlaceRepository)(nil)

func NewPlaceRepository(db *gorm.DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

func (r *PlaceRepository) Create(ctx context.Context, place *model.Place) error {
	return r.db.WithContext(ctx).Create(place).Error
}

func (r *PlaceRepository) Save(ctx context.Context, place *model.Place) error {
	return r.db.WithContext(ctx).Save(place).Error
}

func (r *PlaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Place{}).Error
}

func (r *PlaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	var place model.Place
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&place).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &place, nil
}

// List returns places newest first, paginated.
func (r *PlaceRepository) List(ctx context.Context, page, limit int) ([]model.Place, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	var places []model.Place
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&places).Error
	return places, err
}

// FindByLocation returns all places whose haversine distance from the query
// point is at most radiusKm (inclusive), nearest first.
func (r *PlaceRepository) FindByLocation(ctx context.Context, lat, lng, radiusKm float64) ([]model.Place, error) {
	var places []model.Place
	err := r.db.WithContext(ctx).
		Select("*, "+haversineExpr+" AS distance", lat, lng, lat).
		Where(haversineExpr+" <= ?", lat, lng, lat, radiusKm).
		Order("distance ASC").
		Find(&places).Error
	return places, err
}

func (r *PlaceRepository) FindByPlaceType(ctx context.Context, placeType model.PlaceType) ([]model.Place, error) {
	var places []model.Place
	err := r.db.WithContext(ctx).
		Where("place_type = ?", placeType).
		Order("average_rating DESC").
		Find(&places).Error
	return places, err
}

func (r *PlaceRepository) FindByCity(ctx context.Context, city string) ([]model.Place, error) {
	var places []model.Place
	err := r.db.WithContext(ctx).
		Where("city = ?", city).
		Order("average_rating DESC").
		Find(&places).Error
	return places, err
}

// Search matches the query case-insensitively as a substring of name,
// description, or city, best rated first, capped at 50 results.
func (r *PlaceRepository) Search(ctx context.Context, query string) ([]model.Place, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var places []model.Place
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(city) LIKE ?",
			pattern, pattern, pattern).
		Order("average_rating DESC").
		Limit(searchResultLimit).
		Find(&places).Error
	return places, err
}

// FindByIDs returns the places that exist among ids; unknown ids are simply
// absent from the result.
func (r *PlaceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Place, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var places []model.Place
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&places).Error
	return places, err
}
