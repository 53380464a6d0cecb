package service

import (
	"context"
	"fmt"

	"github.com/stayviet/stayviet/internal/domain"
	"github.com/stayviet/stayviet/internal/repo/postgres"
	"github.com/stayviet/stayviet/pkg/events"
	"github.com/stayviet/stayviet/pkg/logger"
)

// ReviewPage is the paginated shape returned by the per-property listing.
type ReviewPage struct {
	Reviews    []domain.Review `json:"reviews"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

type ReviewService interface {
	Create(ctx context.Context, userID int64, req *domain.CreateReviewRequest) (*domain.Review, error)
	Delete(ctx context.Context, userID, reviewID int64) error
	ListForProperty(ctx context.Context, propertyID int64, page, limit int) (*ReviewPage, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Review, error)
}

type reviewService struct {
	reviews    postgres.ReviewsRepo
	bookings   postgres.BookingsRepo
	properties postgres.PropertiesRepo
	cache      Cache
	bus        events.Publisher
}

func NewReviewService(
	reviews postgres.ReviewsRepo,
	bookings postgres.BookingsRepo,
	properties postgres.PropertiesRepo,
	cache Cache,
	bus events.Publisher,
) ReviewService {
	return &reviewService{
		reviews:    reviews,
		bookings:   bookings,
		properties: properties,
		cache:      cache,
		bus:        bus,
	}
}

func (s *reviewService) Create(ctx context.Context, userID int64, req *domain.CreateReviewRequest) (*domain.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Reviews are gated on a completed booking owned by the caller.
	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil || !booking.IsOwner(userID) || booking.Status != domain.BookingCompleted {
		return nil, domain.ErrReviewNotAllowed
	}
	if booking.PropertyID != req.PropertyID {
		return nil, domain.Invalid("booking does not belong to the given property")
	}

	exists, err := s.reviews.ExistsForBooking(ctx, req.BookingID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateReview
	}

	review := &domain.Review{
		PropertyID:    req.PropertyID,
		UserID:        userID,
		BookingID:     req.BookingID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		Categories:    req.Categories(),
		Images:        req.Images,
		IsRecommended: req.Recommended(),
	}

	// The unique (booking_id, user_id) constraint backstops the pre-check
	// under concurrent submissions.
	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, err
	}

	s.recomputeRating(ctx, created.PropertyID)

	event := events.ReviewEvent{
		ReviewID:   created.ID,
		PropertyID: created.PropertyID,
		UserID:     created.UserID,
		Rating:     float64(created.Rating),
	}
	if err := s.bus.Publish(ctx, events.ReviewCreated, event); err != nil {
		logger.ErrorContext(ctx, "failed to publish review created event", "error", err, "review_id", created.ID)
	}

	return created, nil
}

func (s *reviewService) Delete(ctx context.Context, userID, reviewID int64) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("failed to load review: %w", err)
	}
	if review == nil {
		return domain.ErrNotFound
	}
	if review.UserID != userID {
		return domain.ErrForbidden
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.recomputeRating(ctx, review.PropertyID)

	event := events.ReviewEvent{
		ReviewID:   review.ID,
		PropertyID: review.PropertyID,
		UserID:     review.UserID,
		Rating:     float64(review.Rating),
	}
	if err := s.bus.Publish(ctx, events.ReviewDeleted, event); err != nil {
		logger.ErrorContext(ctx, "failed to publish review deleted event", "error", err, "review_id", review.ID)
	}

	return nil
}

func (s *reviewService) ListForProperty(ctx context.Context, propertyID int64, page, limit int) (*ReviewPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	reviews, total, err := s.reviews.ListByProperty(ctx, propertyID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	return &ReviewPage{
		Reviews:    reviews,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

func (s *reviewService) ListForUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	return s.reviews.ListByUser(ctx, userID)
}

// recomputeRating rebuilds the property's aggregate rating from its current
// set of reviews and writes it back. Failures are logged and swallowed: the
// review mutation that triggered the recompute has already succeeded, and a
// stale aggregate heals on the next mutation. Last write wins under
// concurrent recomputes.
func (s *reviewService) recomputeRating(ctx context.Context, propertyID int64) {
	summary, err := s.reviews.AggregateForProperty(ctx, propertyID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to aggregate property rating", "error", err, "property_id", propertyID)
		return
	}

	if err := s.properties.UpdateRating(ctx, propertyID, summary); err != nil {
		logger.ErrorContext(ctx, "failed to update property rating", "error", err, "property_id", propertyID)
		return
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, propertyListKey, propertyKey(propertyID)); err != nil {
			logger.WarnContext(ctx, "failed to invalidate property cache", "error", err, "property_id", propertyID)
		}
	}
}
