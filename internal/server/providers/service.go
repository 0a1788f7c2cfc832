// Package providers contains the server-side business logic for mutating
// the provider collection. Reads are served from the in-memory mirror; this
// service only writes, and relies on the database notify trigger to get the
// mirror refreshed afterwards.
package providers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"zorgkaart/internal/common"
	"zorgkaart/internal/dbx"
	"zorgkaart/internal/directory"
	"zorgkaart/internal/logging"
	"zorgkaart/internal/server/repositories/repomanager"
)

// Service validates and persists provider mutations.
type Service struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

// NewService constructs a Service using repositories and a clock.
func NewService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *Service {
	return &Service{db: db, repomanager: m, logger: logger, now: time.Now}
}

// Create validates p, deduplicates its labels, and inserts it.
func (s *Service) Create(ctx context.Context, p *directory.Provider) (*directory.Provider, error) {
	if err := directory.Validate(p); err != nil {
		return nil, err
	}
	p.Labels = dedupeLabels(p.Labels)
	p.Opmerkingen = []directory.Comment{}

	repo := s.repomanager.Providers(s.db)
	created, err := repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("error creating provider: %w", err)
	}
	s.logger.Info(ctx, "provider created", "id", created.ID, "naam", created.Naam)
	return created, nil
}

// Update overwrites the provider's fields while leaving its stored comment
// sequence intact, whatever the caller sent in p.Opmerkingen.
func (s *Service) Update(ctx context.Context, p *directory.Provider) error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is verplicht", common.ErrorValidation)
	}
	if err := directory.Validate(p); err != nil {
		return err
	}
	p.Labels = dedupeLabels(p.Labels)

	repo := s.repomanager.Providers(s.db)
	if err := repo.Update(ctx, p); err != nil {
		return err
	}
	s.logger.Info(ctx, "provider updated", "id", p.ID)
	return nil
}

// Delete removes the provider and all of its comments.
func (s *Service) Delete(ctx context.Context, id string) error {
	repo := s.repomanager.Providers(s.db)
	if err := repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "provider deleted", "id", id)
	return nil
}

// AppendComment adds a comment to the provider's canonical sequence. The
// read-modify-write runs in one transaction so concurrent comment writes
// cannot drop each other.
func (s *Service) AppendComment(ctx context.Context, id string, tekst, auteur string) error {
	comment, err := directory.NewComment(tekst, auteur, s.now())
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Providers(tx)
		p, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		return repo.UpdateOpmerkingen(ctx, id, append(p.Opmerkingen, comment))
	})
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "comment added", "provider", id)
	return nil
}

// RemoveComment deletes the comment at the given display position, i.e. the
// position in the newest-first ordering clients render. The display index is
// resolved against the canonical sequence inside the same transaction that
// rewrites it.
func (s *Service) RemoveComment(ctx context.Context, id string, displayIndex int) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Providers(tx)
		p, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		canonical, err := directory.ResolveDisplayIndex(p.Opmerkingen, displayIndex)
		if err != nil {
			return err
		}
		rest, err := directory.RemoveComment(p.Opmerkingen, canonical)
		if err != nil {
			return err
		}
		return repo.UpdateOpmerkingen(ctx, id, rest)
	})
	if err != nil {
		if errors.Is(err, common.ErrorUnknownComment) {
			s.logger.Warn(ctx, "comment delete with stale index", "provider", id, "index", displayIndex)
		}
		return err
	}
	s.logger.Info(ctx, "comment removed", "provider", id, "index", displayIndex)
	return nil
}

func dedupeLabels(labels []string) []string {
	result := []string{}
	for _, l := range labels {
		if next, ok := directory.AddLabel(result, l); ok {
			result = next
		}
	}
	return result
}
