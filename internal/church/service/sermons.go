package service

import (
	"context"
	"strings"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
	"github.com/newcreaturechurch/church-api/internal/church/store"
	"github.com/newcreaturechurch/church-api/pkg/idx"
)

type SermonService struct {
	Store store.Store
}

// CreateSermon archives a sermon. The preacher defaults to the actor unless
// another user is named.
func (s *SermonService) CreateSermon(ctx context.Context, actor domain.Identity, sermon domain.Sermon) (domain.Sermon, error) {
	sermon.Title = strings.TrimSpace(sermon.Title)
	if sermon.Title == "" || sermon.Date.IsZero() {
		return domain.Sermon{}, ErrMissingFields
	}

	sermon.ID = idx.New().String()
	if sermon.Preacher == "" {
		sermon.Preacher = actor.UserID
	}
	sermon.ViewCount = 0

	if err := s.Store.Sermons().CreateSermon(ctx, sermon); err != nil {
		return domain.Sermon{}, err
	}
	return s.Store.Sermons().GetSermonByID(ctx, sermon.ID)
}

// GetSermon returns one sermon. Hidden sermons are only visible to members.
func (s *SermonService) GetSermon(ctx context.Context, authenticated bool, id string) (domain.Sermon, error) {
	sermon, err := s.Store.Sermons().GetSermonByID(ctx, id)
	if err != nil {
		return domain.Sermon{}, err
	}
	if !sermon.Public && !authenticated {
		return domain.Sermon{}, store.ErrNotFound
	}
	return sermon, nil
}

// RecordView counts a playback of the sermon and returns the updated record.
// Hidden sermons only count views from members.
func (s *SermonService) RecordView(ctx context.Context, authenticated bool, id string) (domain.Sermon, error) {
	sermon, err := s.GetSermon(ctx, authenticated, id)
	if err != nil {
		return domain.Sermon{}, err
	}
	if err := s.Store.Sermons().IncrementViewCount(ctx, id); err != nil {
		return domain.Sermon{}, err
	}
	sermon.ViewCount++
	return sermon, nil
}

// ListSermons returns the archive, newest first. Anonymous callers only see
// public sermons.
func (s *SermonService) ListSermons(ctx context.Context, authenticated bool) ([]domain.Sermon, error) {
	return s.Store.Sermons().ListSermons(ctx, !authenticated)
}

// UpdateSermon replaces the mutable fields of an archived sermon.
func (s *SermonService) UpdateSermon(ctx context.Context, sermon domain.Sermon) (domain.Sermon, error) {
	sermon.Title = strings.TrimSpace(sermon.Title)
	if sermon.Title == "" || sermon.Date.IsZero() {
		return domain.Sermon{}, ErrMissingFields
	}

	if err := s.Store.Sermons().UpdateSermon(ctx, sermon); err != nil {
		return domain.Sermon{}, err
	}
	return s.Store.Sermons().GetSermonByID(ctx, sermon.ID)
}

// DeleteSermon removes a sermon from the archive.
func (s *SermonService) DeleteSermon(ctx context.Context, id string) error {
	return s.Store.Sermons().DeleteSermon(ctx, id)
}
