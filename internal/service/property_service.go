package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stayviet/stayviet/internal/domain"
	"github.com/stayviet/stayviet/internal/repo/postgres"
	"github.com/stayviet/stayviet/pkg/logger"
)

// Cache is the slice of the Redis adapter the services need. A nil Cache
// disables caching.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

const propertyListKey = "properties:list"

func propertyKey(id int64) string {
	return fmt.Sprintf("properties:%d", id)
}

type PropertyService interface {
	List(ctx context.Context) ([]domain.PropertySummary, error)
	Get(ctx context.Context, id int64) (*domain.Property, error)
}

type propertyService struct {
	properties postgres.PropertiesRepo
	cache      Cache
	cacheTTL   time.Duration
}

func NewPropertyService(properties postgres.PropertiesRepo, cache Cache, cacheTTL time.Duration) PropertyService {
	return &propertyService{
		properties: properties,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

func (s *propertyService) List(ctx context.Context) ([]domain.PropertySummary, error) {
	if s.cache != nil {
		var cached []domain.PropertySummary
		if hit, err := s.cache.Get(ctx, propertyListKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	properties, err := s.properties.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}

	summaries := make([]domain.PropertySummary, 0, len(properties))
	for i := range properties {
		summaries = append(summaries, properties[i].Summary())
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, propertyListKey, summaries, s.cacheTTL); err != nil {
			logger.WarnContext(ctx, "failed to cache property list", "error", err)
		}
	}

	return summaries, nil
}

func (s *propertyService) Get(ctx context.Context, id int64) (*domain.Property, error) {
	key := propertyKey(id)

	if s.cache != nil {
		var cached domain.Property
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	if property == nil {
		return nil, domain.ErrNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, property, s.cacheTTL); err != nil {
			logger.WarnContext(ctx, "failed to cache property", "error", err, "property_id", id)
		}
	}

	return property, nil
}
