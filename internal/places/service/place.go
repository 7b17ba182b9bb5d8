package service

import (
	"context"
	"errors"

	auditrepository "staynest/internal/audit/repository"
	placeserrors "staynest/internal/places/errors"
	"staynest/internal/places/repository"
	"staynest/internal/places/validator"
	"staynest/pkg/config"
	apperrors "staynest/pkg/errors"
	"staynest/pkg/events"
	"staynest/pkg/logger"
	"staynest/pkg/model"
	"staynest/pkg/sanitizer"
	"staynest/pkg/validation"
)

const rejectReasonNotOwner = "caller is not the owner"

type PlaceService interface {
	Create(ctx context.Context, ownerID string, req *model.PlaceRequest) (*model.Place, error)
	GetByID(ctx context.Context, id string) (*model.Place, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Place, error)
	ListAll(ctx context.Context) ([]*model.Place, error)
	Update(ctx context.Context, callerID string, req *model.PlaceRequest) error
}

type placeService struct {
	repo      repository.PlaceRepository
	audit     auditrepository.AuditRepository
	validator *validator.PlaceValidator
	events    events.Publisher
	cfg       *config.Config
}

func NewPlaceService(
	repo repository.PlaceRepository,
	audit auditrepository.AuditRepository,
	validator *validator.PlaceValidator,
	publisher events.Publisher,
	cfg *config.Config,
) PlaceService {
	return &placeService{
		repo:      repo,
		audit:     audit,
		validator: validator,
		events:    publisher,
		cfg:       cfg,
	}
}

func (s *placeService) Create(ctx context.Context, ownerID string, req *model.PlaceRequest) (*model.Place, error) {
	sanitizer.SanitizePlace(req)

	if err := s.validator.Validate(req); err != nil {
		return nil, validation.AppError("Invalid place input", err)
	}

	place := &model.Place{Owner: ownerID}
	req.ApplyTo(place)

	if err := s.repo.Create(ctx, place); err != nil {
		return nil, apperrors.Internal("Failed to create place", err)
	}

	s.log(ctx).Info("Place created successfully", "place_id", place.ID, "owner", ownerID)
	s.events.Publish(ctx, events.Event{
		Type:    events.TypePlaceCreated,
		Key:     place.ID,
		ActorID: ownerID,
		Payload: map[string]any{"title": place.Title, "price": place.Price},
	})

	return place, nil
}

func (s *placeService) GetByID(ctx context.Context, id string) (*model.Place, error) {
	place, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapFindError(id, err)
	}
	return place, nil
}

func (s *placeService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Place, error) {
	places, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve places", err)
	}
	return places, nil
}

func (s *placeService) ListAll(ctx context.Context) ([]*model.Place, error) {
	places, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve places", err)
	}
	return places, nil
}

// Update reports success to non-owners too; the rejection is only visible in
// the audit log, the event stream and the logs. No write happens in that case.
func (s *placeService) Update(ctx context.Context, callerID string, req *model.PlaceRequest) error {
	sanitizer.SanitizePlace(req)

	if err := s.validator.ValidateUpdate(req); err != nil {
		return validation.AppError("Invalid place input", err)
	}

	place, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return s.mapFindError(req.ID, err)
	}

	if place.Owner != callerID {
		s.rejectUpdate(ctx, callerID, place)
		return nil
	}

	req.ApplyTo(place)
	if err := s.repo.Update(ctx, place); err != nil {
		if errors.Is(err, placeserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Place", place.ID)
		}
		return apperrors.Internal("Failed to update place", err)
	}

	s.log(ctx).Info("Place updated successfully", "place_id", place.ID, "owner", callerID)
	s.events.Publish(ctx, events.Event{
		Type:    events.TypePlaceUpdated,
		Key:     place.ID,
		ActorID: callerID,
	})

	return nil
}

func (s *placeService) rejectUpdate(ctx context.Context, callerID string, place *model.Place) {
	log := s.log(ctx)
	log.Warn("Place update rejected",
		"place_id", place.ID,
		"owner", place.Owner,
		"caller", callerID,
		"reason", rejectReasonNotOwner,
	)

	entry := &model.AuditEntry{
		Actor:        callerID,
		Action:       model.AuditActionPlaceUpdateRejected,
		ResourceType: model.AuditResourcePlace,
		ResourceID:   place.ID,
		Reason:       rejectReasonNotOwner,
		RequestID:    logger.RequestID(ctx),
	}
	if err := s.audit.Log(ctx, entry); err != nil {
		log.Error("Failed to write audit entry", "place_id", place.ID, "error", err)
	}

	s.events.Publish(ctx, events.Event{
		Type:    events.TypePlaceUpdateRejected,
		Key:     place.ID,
		ActorID: callerID,
		Payload: map[string]any{"owner": place.Owner, "reason": rejectReasonNotOwner},
	})
}

func (s *placeService) mapFindError(id string, err error) error {
	switch {
	case errors.Is(err, placeserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Place", id)
	case errors.Is(err, placeserrors.ErrInvalidID):
		return apperrors.InvalidInput("invalid place id: " + id)
	default:
		return apperrors.Internal("Failed to retrieve place", err)
	}
}

func (s *placeService) log(ctx context.Context) *logger.Logger {
	return logger.FromContext(ctx, s.cfg.Log)
}
