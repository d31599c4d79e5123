package listings

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/listing-lab/pkg/pagination"
)

// System defines listing store operations. Every mutation bumps the listing
// version and records a snapshot; reads never modify state.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Listing], error)
	Find(ctx context.Context, id uuid.UUID) (*Listing, error)
	Create(ctx context.Context, cmd CreateCommand) (*Listing, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Duplicate(ctx context.Context, id uuid.UUID, cmd DuplicateCommand) (*Listing, error)
	Publish(ctx context.Context, id uuid.UUID) (*Listing, error)
	Archive(ctx context.Context, id uuid.UUID) (*Listing, error)
	Results(ctx context.Context, id uuid.UUID) ([]AgentResult, error)
	ReplaceResult(ctx context.Context, id uuid.UUID, result AgentResult, update UpdateCommand) (*Listing, error)
	Versions(ctx context.Context, id uuid.UUID) ([]Version, error)
	Stats(ctx context.Context) (*Stats, error)
}

// New creates a System backed by PostgreSQL.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "listings"),
		pagination: pagination,
	}
}
