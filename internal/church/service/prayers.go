package service

import (
	"context"
	"errors"
	"strings"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
	"github.com/newcreaturechurch/church-api/internal/church/store"
	"github.com/newcreaturechurch/church-api/pkg/idx"
)

var ErrInvalidCategory = errors.New("invalid_prayer_category")

type PrayerService struct {
	Store store.Store
}

// CreateRequest files a prayer request on behalf of the actor.
func (s *PrayerService) CreateRequest(ctx context.Context, actor domain.Identity, p domain.PrayerRequest) (domain.PrayerRequest, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return domain.PrayerRequest{}, ErrMissingFields
	}
	if !p.Category.Valid() {
		return domain.PrayerRequest{}, ErrInvalidCategory
	}

	p.ID = idx.New().String()
	p.Requester = actor.UserID
	p.Answered = false
	p.AnswerNotes = ""
	p.AnsweredAt = nil
	p.PrayerCount = 0
	p.PrayedBy = nil

	if err := s.Store.PrayerRequests().CreatePrayerRequest(ctx, p); err != nil {
		return domain.PrayerRequest{}, err
	}
	return s.Store.PrayerRequests().GetPrayerRequestByID(ctx, p.ID)
}

// GetRequest returns one request, with the requester masked when anonymous
// and the actor is neither the requester nor elevated.
func (s *PrayerService) GetRequest(ctx context.Context, actor domain.Identity, id string) (domain.PrayerRequest, error) {
	p, err := s.Store.PrayerRequests().GetPrayerRequestByID(ctx, id)
	if err != nil {
		return domain.PrayerRequest{}, err
	}
	return s.mask(actor, p), nil
}

// ListRequests returns the active (non-expired) requests, urgent first.
func (s *PrayerService) ListRequests(ctx context.Context, actor domain.Identity) ([]domain.PrayerRequest, error) {
	list, err := s.Store.PrayerRequests().ListPrayerRequests(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i] = s.mask(actor, list[i])
	}
	return list, nil
}

// ListMyRequests returns the actor's own requests, including expired ones.
func (s *PrayerService) ListMyRequests(ctx context.Context, actor domain.Identity) ([]domain.PrayerRequest, error) {
	return s.Store.PrayerRequests().ListPrayerRequestsForRequester(ctx, actor.UserID)
}

// UpdateRequest replaces the mutable fields. Only the requester or an
// elevated role may touch it.
func (s *PrayerService) UpdateRequest(ctx context.Context, actor domain.Identity, p domain.PrayerRequest) (domain.PrayerRequest, error) {
	current, err := s.Store.PrayerRequests().GetPrayerRequestByID(ctx, p.ID)
	if err != nil {
		return domain.PrayerRequest{}, err
	}
	if err := s.requireRequester(actor, current.Requester); err != nil {
		return domain.PrayerRequest{}, err
	}

	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return domain.PrayerRequest{}, ErrMissingFields
	}
	if !p.Category.Valid() {
		return domain.PrayerRequest{}, ErrInvalidCategory
	}

	if err := s.Store.PrayerRequests().UpdatePrayerRequest(ctx, p); err != nil {
		return domain.PrayerRequest{}, err
	}
	return s.Store.PrayerRequests().GetPrayerRequestByID(ctx, p.ID)
}

// DeleteRequest removes a request and its supporter records.
func (s *PrayerService) DeleteRequest(ctx context.Context, actor domain.Identity, id string) error {
	current, err := s.Store.PrayerRequests().GetPrayerRequestByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireRequester(actor, current.Requester); err != nil {
		return err
	}
	return s.Store.PrayerRequests().DeletePrayerRequest(ctx, id)
}

// Pray records that the actor prayed for the request. Praying twice is
// harmless and does not move the count.
func (s *PrayerService) Pray(ctx context.Context, actor domain.Identity, id string) (domain.PrayerRequest, error) {
	if _, err := s.Store.PrayerRequests().AddSupporter(ctx, id, actor.UserID); err != nil {
		return domain.PrayerRequest{}, err
	}
	p, err := s.Store.PrayerRequests().GetPrayerRequestByID(ctx, id)
	if err != nil {
		return domain.PrayerRequest{}, err
	}
	return s.mask(actor, p), nil
}

// MarkAnswered closes a request with a testimony note. Only the requester or
// an elevated role may answer it.
func (s *PrayerService) MarkAnswered(ctx context.Context, actor domain.Identity, id, notes string) (domain.PrayerRequest, error) {
	current, err := s.Store.PrayerRequests().GetPrayerRequestByID(ctx, id)
	if err != nil {
		return domain.PrayerRequest{}, err
	}
	if err := s.requireRequester(actor, current.Requester); err != nil {
		return domain.PrayerRequest{}, err
	}

	if err := s.Store.PrayerRequests().MarkAnswered(ctx, id, strings.TrimSpace(notes)); err != nil {
		return domain.PrayerRequest{}, err
	}
	return s.Store.PrayerRequests().GetPrayerRequestByID(ctx, id)
}

func (s *PrayerService) requireRequester(actor domain.Identity, requester string) error {
	if actor.UserID == requester {
		return nil
	}
	if actor.Role == domain.RoleAdmin || actor.Role == domain.RolePastor {
		return nil
	}
	return ErrForbidden
}

// mask hides the requester of anonymous requests from everyone except the
// requester themselves and elevated roles.
func (s *PrayerService) mask(actor domain.Identity, p domain.PrayerRequest) domain.PrayerRequest {
	if !p.Anonymous {
		return p
	}
	if actor.UserID == p.Requester || actor.Role == domain.RoleAdmin || actor.Role == domain.RolePastor {
		return p
	}
	p.Requester = ""
	return p
}
