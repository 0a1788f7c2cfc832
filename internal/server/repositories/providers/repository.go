// Package providers provides the PostgreSQL-backed repository for the
// provider collection. Labels and comments live in jsonb columns: a
// provider is one document, and its comment sequence is always read and
// written whole.
package providers

import (
	"context"

	"zorgkaart/internal/directory"
)

// Repository is the storage contract for provider records.
type Repository interface {
	// List returns the full collection ordered by name: the store order
	// every snapshot and filter result is based on.
	List(ctx context.Context) ([]directory.Provider, error)

	// Get returns one provider by id, or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*directory.Provider, error)

	// Create inserts p with a freshly assigned id and returns it.
	Create(ctx context.Context, p *directory.Provider) (*directory.Provider, error)

	// Update overwrites every field of p except the comment sequence.
	Update(ctx context.Context, p *directory.Provider) error

	// Delete removes the provider and, with it, its comments.
	Delete(ctx context.Context, id string) error

	// UpdateOpmerkingen replaces the stored comment sequence wholesale.
	// This is the only comment write primitive.
	UpdateOpmerkingen(ctx context.Context, id string, opmerkingen []directory.Comment) error
}
