package passage

import (
	"context"

	"github.com/verte-zerg/storytype/internal/model"
)

// Store is the storage contract used by library-backed sources.
type Store interface {
	ListByLength(ctx context.Context, words int) ([]model.PassageSummary, error)
	FetchByID(ctx context.Context, id string) (model.Passage, error)
	CountByLength(ctx context.Context, words int) (int, error)
	InsertPassage(ctx context.Context, content string, words int, title string) (string, error)
	RandomByLength(ctx context.Context, words int) (*model.Passage, error)
}

// Library serves random stored passages from the requested length bucket.
type Library struct {
	Store Store
}

// RequestPassage implements Source.
func (l Library) RequestPassage(ctx context.Context, req Request) (string, error) {
	p, err := l.Store.RandomByLength(ctx, req.Words)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", ErrEmpty
	}
	return p.Content, nil
}

// Saving stores every passage produced by Source in Store.
type Saving struct {
	Source Source
	Store  Store
	// OnError is called when saving fails; the passage is still returned.
	OnError func(error)
}

// RequestPassage implements Source.
func (s Saving) RequestPassage(ctx context.Context, req Request) (string, error) {
	text, err := s.Source.RequestPassage(ctx, req)
	if err != nil {
		return "", err
	}
	if _, err := s.Store.InsertPassage(ctx, text, req.Words, Title(text)); err != nil && s.OnError != nil {
		s.OnError(err)
	}
	return text, nil
}
