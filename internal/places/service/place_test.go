package service

import (
	"context"
	"errors"
	"testing"

	placeserrors "staynest/internal/places/errors"
	"staynest/internal/places/validator"
	"staynest/pkg/config"
	apperrors "staynest/pkg/errors"
	"staynest/pkg/events"
	"staynest/pkg/logger"
	"staynest/pkg/model"
)

const (
	ownerID  = "64b000000000000000000001"
	otherID  = "64b000000000000000000002"
	placeID  = "64b0000000000000000000a1"
	unknownID = "64b0000000000000000000ff"
)

type mockPlaceRepository struct {
	places    map[string]*model.Place
	createErr error
	updates   []*model.Place
}

func newMockRepo() *mockPlaceRepository {
	return &mockPlaceRepository{places: map[string]*model.Place{
		placeID: {ID: placeID, Owner: ownerID, Title: "Loft", Address: "1 Main St", Price: 100},
	}}
}

func (m *mockPlaceRepository) Create(ctx context.Context, place *model.Place) error {
	if m.createErr != nil {
		return m.createErr
	}
	place.ID = "64b0000000000000000000a2"
	m.places[place.ID] = place
	return nil
}

func (m *mockPlaceRepository) FindByID(ctx context.Context, id string) (*model.Place, error) {
	if len(id) != 24 {
		return nil, placeserrors.ErrInvalidID
	}
	p, ok := m.places[id]
	if !ok {
		return nil, placeserrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockPlaceRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Place, error) {
	return nil, nil
}

func (m *mockPlaceRepository) FindByOwner(ctx context.Context, owner string) ([]*model.Place, error) {
	out := []*model.Place{}
	for _, p := range m.places {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPlaceRepository) FindAll(ctx context.Context) ([]*model.Place, error) {
	out := []*model.Place{}
	for _, p := range m.places {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPlaceRepository) Update(ctx context.Context, place *model.Place) error {
	m.updates = append(m.updates, place)
	m.places[place.ID] = place
	return nil
}

type mockAuditRepository struct {
	entries []*model.AuditEntry
	err     error
}

func (m *mockAuditRepository) Log(ctx context.Context, entry *model.AuditEntry) error {
	m.entries = append(m.entries, entry)
	return m.err
}

func (m *mockAuditRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]*model.AuditEntry, error) {
	return m.entries, nil
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) {
	p.events = append(p.events, e)
}

func (p *recordingPublisher) Close() error { return nil }

type fixture struct {
	repo  *mockPlaceRepository
	audit *mockAuditRepository
	pub   *recordingPublisher
	svc   PlaceService
}

func newFixture() *fixture {
	log := logger.Discard()
	f := &fixture{
		repo:  newMockRepo(),
		audit: &mockAuditRepository{},
		pub:   &recordingPublisher{},
	}
	f.svc = NewPlaceService(f.repo, f.audit, validator.NewPlaceValidator(log), f.pub, &config.Config{Log: log})
	return f
}

func TestCreate(t *testing.T) {
	f := newFixture()

	place, err := f.svc.Create(context.Background(), ownerID, &model.PlaceRequest{
		Title:        "  Sea   view ",
		Address:      "2 Beach Rd",
		AddPhotos:    []string{"a.jpg", " a.jpg ", "b.jpg"},
		Perks:        []string{"WiFi", "wifi", "parking"},
		CheckInTime:  14,
		CheckOutTime: 11,
		MaxGuest:     3,
		Price:        -1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if place.Owner != ownerID || place.Title != "Sea view" {
		t.Errorf("unexpected place %+v", place)
	}
	if len(place.Photos) != 3 || place.Photos[1] != "a.jpg" {
		t.Errorf("expected trimmed photos in request order, got %v", place.Photos)
	}
	if len(place.Perks) != 2 {
		t.Errorf("expected deduplicated perks, got %v", place.Perks)
	}
	if place.CheckIn != 14 || place.CheckOut != 11 || place.MaxGuests != 3 || place.Price != -1 {
		t.Errorf("numeric fields must be stored as given, got %+v", place)
	}
	if len(f.pub.events) != 1 || f.pub.events[0].Type != events.TypePlaceCreated {
		t.Errorf("unexpected events %+v", f.pub.events)
	}
}

func TestCreate_Errors(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Create(context.Background(), ownerID, &model.PlaceRequest{Address: "x"})
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}

	f = newFixture()
	f.repo.createErr = errors.New("disk full")
	_, err = f.svc.Create(context.Background(), ownerID, &model.PlaceRequest{Title: "t", Address: "a"})
	if apperrors.AsAppError(err).Code != apperrors.CodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name     string
		id       string
		wantCode string
	}{
		{"found", placeID, ""},
		{"unknown", unknownID, apperrors.CodeNotFound},
		{"malformed", "abc", apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			place, err := f.svc.GetByID(context.Background(), tt.id)
			if tt.wantCode == "" {
				if err != nil || place.ID != tt.id {
					t.Fatalf("unexpected result %+v, %v", place, err)
				}
				return
			}
			if got := apperrors.AsAppError(err).Code; got != tt.wantCode {
				t.Errorf("expected %s, got %s", tt.wantCode, got)
			}
		})
	}
}

func TestUpdate_Owner(t *testing.T) {
	f := newFixture()

	err := f.svc.Update(context.Background(), ownerID, &model.PlaceRequest{
		ID: placeID, Title: "Renamed", Address: "1 Main St", Price: 150,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.repo.updates) != 1 {
		t.Fatalf("expected one write, got %d", len(f.repo.updates))
	}
	updated := f.repo.places[placeID]
	if updated.Title != "Renamed" || updated.Price != 150 || updated.Owner != ownerID {
		t.Errorf("unexpected stored place %+v", updated)
	}
	if len(f.audit.entries) != 0 {
		t.Errorf("no audit entry expected, got %+v", f.audit.entries)
	}
	if len(f.pub.events) != 1 || f.pub.events[0].Type != events.TypePlaceUpdated {
		t.Errorf("unexpected events %+v", f.pub.events)
	}
}

func TestUpdate_NonOwnerIsSilentlyRejected(t *testing.T) {
	f := newFixture()
	before := *f.repo.places[placeID]

	err := f.svc.Update(context.Background(), otherID, &model.PlaceRequest{
		ID: placeID, Title: "Hijacked", Address: "elsewhere",
	})
	if err != nil {
		t.Fatalf("non-owner update must look successful, got %v", err)
	}

	if len(f.repo.updates) != 0 {
		t.Fatalf("no write expected, got %+v", f.repo.updates)
	}
	if after := f.repo.places[placeID]; after.Title != before.Title || after.Address != before.Address {
		t.Errorf("place mutated: %+v", after)
	}

	if len(f.audit.entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(f.audit.entries))
	}
	entry := f.audit.entries[0]
	if entry.Actor != otherID || entry.ResourceID != placeID || entry.Action != model.AuditActionPlaceUpdateRejected {
		t.Errorf("unexpected audit entry %+v", entry)
	}

	if len(f.pub.events) != 1 || f.pub.events[0].Type != events.TypePlaceUpdateRejected {
		t.Errorf("unexpected events %+v", f.pub.events)
	}
}

func TestUpdate_AuditFailureStillLooksSuccessful(t *testing.T) {
	f := newFixture()
	f.audit.err = errors.New("write concern timeout")

	if err := f.svc.Update(context.Background(), otherID, &model.PlaceRequest{ID: placeID, Title: "t", Address: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.repo.updates) != 0 {
		t.Error("no write expected")
	}
}

func TestUpdate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      model.PlaceRequest
		wantCode string
	}{
		{"missing id", model.PlaceRequest{Title: "t", Address: "a"}, apperrors.CodeValidation},
		{"malformed id", model.PlaceRequest{ID: "zz", Title: "t", Address: "a"}, apperrors.CodeValidation},
		{"unknown id", model.PlaceRequest{ID: unknownID, Title: "t", Address: "a"}, apperrors.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			err := f.svc.Update(context.Background(), ownerID, &tt.req)
			if got := apperrors.AsAppError(err).Code; got != tt.wantCode {
				t.Errorf("expected %s, got %s (%v)", tt.wantCode, got, err)
			}
			if len(f.repo.updates) != 0 || len(f.audit.entries) != 0 {
				t.Error("no write expected")
			}
		})
	}
}

func TestListAll_IncludesEveryOwner(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Create(context.Background(), otherID, &model.PlaceRequest{Title: "Cabin", Address: "Woods"}); err != nil {
		t.Fatal(err)
	}

	all, err := f.svc.ListAll(context.Background())
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 places, got %d, %v", len(all), err)
	}

	mine, err := f.svc.ListByOwner(context.Background(), otherID)
	if err != nil || len(mine) != 1 || mine[0].Title != "Cabin" {
		t.Errorf("unexpected owner listing %+v, %v", mine, err)
	}
}
