package ui

import (
	"context"
	"time"

	"github.com/claimdeck/claimdeck/internal/cache"
	"github.com/claimdeck/claimdeck/internal/claims"
	"github.com/claimdeck/claimdeck/internal/monday"
)

// Service is the remote operation surface the interface depends on. The
// monday client satisfies it; tests substitute a fake.
type Service interface {
	Me(ctx context.Context) (monday.User, error)
	ClaimsBetween(ctx context.Context, from, to time.Time) ([]claims.ClaimEntry, error)
	CreateClaim(ctx context.Context, entry claims.ClaimEntry) (claims.ClaimEntry, error)
	UpdateClaim(ctx context.Context, entry claims.ClaimEntry) error
	DeleteClaim(ctx context.Context, id string) error
}

// CachePersistence stores quick-select pairs between runs. Failures here are
// warnings, never fatal.
type CachePersistence interface {
	Load(userID string) ([]cache.Entry, error)
	Save(userID string, entries []cache.Entry) error
}

var _ Service = (*monday.Client)(nil)
