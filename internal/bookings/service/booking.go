package service

import (
	"context"
	"fmt"
	"time"

	bookingserrors "staynest/internal/bookings/errors"
	"staynest/internal/bookings/repository"
	"staynest/internal/bookings/validator"
	"staynest/pkg/config"
	apperrors "staynest/pkg/errors"
	"staynest/pkg/events"
	"staynest/pkg/logger"
	"staynest/pkg/model"
	"staynest/pkg/sanitizer"
	"staynest/pkg/validation"
)

// dateLayouts are tried in order: full timestamps from API clients, then the
// plain value of an HTML date input.
var dateLayouts = []string{time.RFC3339, time.DateOnly}

// PlaceLookup expands booking place references.
type PlaceLookup interface {
	FindByIDs(ctx context.Context, ids []string) ([]*model.Place, error)
}

type BookingService interface {
	Create(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*model.PopulatedBooking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	places    PlaceLookup
	validator *validator.BookingValidator
	events    events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	places PlaceLookup,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		places:    places,
		validator: validator,
		events:    publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error) {
	sanitizer.SanitizeBooking(req, s.cfg.DefaultPhoneRegion)

	if err := s.validator.Validate(req); err != nil {
		return nil, validation.AppError("Invalid booking input", err)
	}

	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, apperrors.Validation("Invalid booking dates", map[string]any{"error": err.Error()})
	}

	booking := &model.Booking{
		PlaceID:        req.Place,
		UserID:         userID,
		Name:           req.Name,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Phone:          req.Phone,
		Price:          req.Price,
		NumberOfGuests: req.NumberOfGuests,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.log(ctx).Info("Booking created successfully",
		"booking_id", booking.ID,
		"place_id", booking.PlaceID,
		"user_id", userID,
	)
	s.events.Publish(ctx, events.Event{
		Type:    events.TypeBookingCreated,
		Key:     booking.PlaceID,
		ActorID: userID,
		Payload: map[string]any{
			"booking_id": booking.ID,
			"check_in":   booking.CheckIn,
			"check_out":  booking.CheckOut,
			"guests":     booking.NumberOfGuests,
		},
	})

	return booking, nil
}

// ListByUser returns the caller's bookings ordered by check-in, each with its
// place attached. Bookings whose place is gone carry a nil place.
func (s *bookingService) ListByUser(ctx context.Context, userID string) ([]*model.PopulatedBooking, error) {
	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	result := make([]*model.PopulatedBooking, 0, len(bookings))
	if len(bookings) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.PlaceID)
	}

	places, err := s.places.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve booked places", err)
	}

	byID := make(map[string]*model.Place, len(places))
	for _, p := range places {
		byID[p.ID] = p
	}

	for _, b := range bookings {
		result = append(result, &model.PopulatedBooking{Booking: b, Place: byID[b.PlaceID]})
	}

	return result, nil
}

func (s *bookingService) log(ctx context.Context) *logger.Logger {
	return logger.FromContext(ctx, s.cfg.Log)
}

func parseStay(checkInRaw, checkOutRaw string) (time.Time, time.Time, error) {
	checkIn, err := parseDate(checkInRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("checkIn: %w", err)
	}
	checkOut, err := parseDate(checkOutRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("checkOut: %w", err)
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, bookingserrors.ErrInvalidTimeRange
	}
	return checkIn, checkOut, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", bookingserrors.ErrInvalidDate, raw)
}
