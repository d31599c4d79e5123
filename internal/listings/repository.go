package listings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/listing-lab/pkg/pagination"
	"github.com/JaimeStill/listing-lab/pkg/query"
	"github.com/JaimeStill/listing-lab/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

const listingColumns = `id, product_input, category, title, description,
	bullet_points, search_terms, backend_keywords, pricing_notes, hashtags,
	captions, image_prompts, image_urls, recommendations, confidence, status,
	version, notes, created_at, updated_at`

var insertListingSQL = fmt.Sprintf(`
	INSERT INTO listings (
		product_input, category, title, description, bullet_points,
		search_terms, backend_keywords, pricing_notes, hashtags, captions,
		image_prompts, image_urls, recommendations, confidence, status,
		version, notes
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	RETURNING %s`, listingColumns)

var updateListingSQL = fmt.Sprintf(`
	UPDATE listings SET
		title = $1, description = $2, bullet_points = $3, search_terms = $4,
		backend_keywords = $5, pricing_notes = $6, hashtags = $7, captions = $8,
		image_prompts = $9, image_urls = $10, recommendations = $11,
		confidence = $12, status = $13, version = $14, notes = $15,
		updated_at = NOW()
	WHERE id = $16
	RETURNING %s`, listingColumns)

const deleteListingSQL = `DELETE FROM listings WHERE id = $1`

const insertResultSQL = `
	INSERT INTO listing_agent_results (
		listing_id, agent, status, payload, confidence, duration_ns, notes, position
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const updateResultSQL = `
	UPDATE listing_agent_results
	SET status = $1, payload = $2, confidence = $3, duration_ns = $4, notes = $5,
		created_at = NOW()
	WHERE listing_id = $6 AND agent = $7`

const appendResultSQL = `
	INSERT INTO listing_agent_results (
		listing_id, agent, status, payload, confidence, duration_ns, notes, position
	)
	SELECT $1, $2, $3, $4, $5, $6, $7, COALESCE(MAX(position) + 1, 0)
	FROM listing_agent_results
	WHERE listing_id = $1`

const selectResultsSQL = `
	SELECT id, listing_id, agent, status, payload, confidence, duration_ns,
		notes, position, created_at
	FROM listing_agent_results
	WHERE listing_id = $1
	ORDER BY position`

const insertVersionSQL = `
	INSERT INTO listing_versions (listing_id, version, snapshot)
	VALUES ($1, $2, $3)`

const selectVersionsSQL = `
	SELECT id, listing_id, version, snapshot, created_at
	FROM listing_versions
	WHERE listing_id = $1
	ORDER BY version DESC`

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Listing], error) {
	page.Normalize(r.pagination)

	builder := filters.
		Apply(query.NewBuilder(projection, defaultSort)).
		WhereSearch(page.Search, "Title", "Category").
		OrderByFields(page.Sort)

	countSQL, countArgs := builder.BuildCount()
	var total int64
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count listings: %w", err)
	}

	pageSQL, pageArgs := builder.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanListing)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}

	result := pagination.NewPageResult(items, total, page)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Listing, error) {
	listing, err := findListing(ctx, r.db, id)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &listing, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Listing, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Listing, error) {
		listing, err := insertListing(ctx, tx, cmd.listing())
		if err != nil {
			return Listing{}, err
		}
		if err := insertResults(ctx, tx, listing.ID, cmd.Results); err != nil {
			return Listing{}, err
		}
		if err := insertVersion(ctx, tx, listing); err != nil {
			return Listing{}, err
		}
		return listing, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("listing created",
		"id", created.ID,
		"title", created.Title,
		"confidence", created.Confidence)

	return &created, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Listing, error) {
	updated, err := r.revise(ctx, id, func(current Listing) (Listing, error) {
		return cmd.Apply(current), nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("listing updated", "id", updated.ID, "version", updated.Version)
	return updated, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repository.ExecExpectOne(ctx, r.db, deleteListingSQL, id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("listing deleted", "id", id)
	return nil
}

func (r *repo) Duplicate(ctx context.Context, id uuid.UUID, cmd DuplicateCommand) (*Listing, error) {
	duplicated, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Listing, error) {
		source, err := findListing(ctx, tx, id)
		if err != nil {
			return Listing{}, err
		}
		results, err := repository.QueryMany(ctx, tx, selectResultsSQL, []any{id}, scanResult)
		if err != nil {
			return Listing{}, err
		}

		created, err := insertListing(ctx, tx, cloneForDuplicate(source, cmd))
		if err != nil {
			return Listing{}, err
		}
		if err := insertResults(ctx, tx, created.ID, results); err != nil {
			return Listing{}, err
		}
		if err := insertVersion(ctx, tx, created); err != nil {
			return Listing{}, err
		}
		return created, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("listing duplicated", "source", id, "id", duplicated.ID)
	return &duplicated, nil
}

func (r *repo) Publish(ctx context.Context, id uuid.UUID) (*Listing, error) {
	return r.transitionTo(ctx, id, StatusPublished)
}

func (r *repo) Archive(ctx context.Context, id uuid.UUID) (*Listing, error) {
	return r.transitionTo(ctx, id, StatusArchived)
}

func (r *repo) transitionTo(ctx context.Context, id uuid.UUID, next Status) (*Listing, error) {
	updated, err := r.revise(ctx, id, func(current Listing) (Listing, error) {
		if err := transition(current.Status, next); err != nil {
			return Listing{}, err
		}
		current.Status = next
		return current, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("listing status changed",
		"id", updated.ID,
		"status", updated.Status,
		"version", updated.Version)

	return updated, nil
}

func (r *repo) Results(ctx context.Context, id uuid.UUID) ([]AgentResult, error) {
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	results, err := repository.QueryMany(ctx, r.db, selectResultsSQL, []any{id}, scanResult)
	if err != nil {
		return nil, fmt.Errorf("list agent results: %w", err)
	}
	if results == nil {
		results = []AgentResult{}
	}
	return results, nil
}

func (r *repo) ReplaceResult(ctx context.Context, id uuid.UUID, result AgentResult, update UpdateCommand) (*Listing, error) {
	updated, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Listing, error) {
		current, err := findListing(ctx, tx, id)
		if err != nil {
			return Listing{}, err
		}
		if err := upsertResult(ctx, tx, id, result); err != nil {
			return Listing{}, err
		}

		next := update.Apply(current)
		next.Version = current.Version + 1

		saved, err := saveListing(ctx, tx, next)
		if err != nil {
			return Listing{}, err
		}
		if err := insertVersion(ctx, tx, saved); err != nil {
			return Listing{}, err
		}
		return saved, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent result replaced",
		"id", updated.ID,
		"agent", result.Agent,
		"version", updated.Version)

	return &updated, nil
}

func (r *repo) Versions(ctx context.Context, id uuid.UUID) ([]Version, error) {
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	versions, err := repository.QueryMany(ctx, r.db, selectVersionsSQL, []any{id}, scanVersion)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	if versions == nil {
		versions = []Version{}
	}
	return versions, nil
}

// revise loads a listing, applies mutate, bumps the version, and persists the
// result with a snapshot, all inside one transaction.
func (r *repo) revise(ctx context.Context, id uuid.UUID, mutate func(Listing) (Listing, error)) (*Listing, error) {
	updated, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Listing, error) {
		current, err := findListing(ctx, tx, id)
		if err != nil {
			return Listing{}, err
		}

		next, err := mutate(current)
		if err != nil {
			return Listing{}, err
		}
		next.Version = current.Version + 1

		saved, err := saveListing(ctx, tx, next)
		if err != nil {
			return Listing{}, err
		}
		if err := insertVersion(ctx, tx, saved); err != nil {
			return Listing{}, err
		}
		return saved, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &updated, nil
}

func findListing(ctx context.Context, q repository.Querier, id uuid.UUID) (Listing, error) {
	sqlStr, args := query.NewBuilder(projection, defaultSort).BuildSingle("Id", id)
	return repository.QueryOne(ctx, q, sqlStr, args, scanListing)
}

func insertListing(ctx context.Context, q repository.Querier, l Listing) (Listing, error) {
	args := []any{
		encode(l.ProductInput), l.Category, l.Title, l.Description,
		encode(l.BulletPoints), encode(l.SearchTerms), encode(l.BackendKeywords),
		l.PricingNotes, encode(l.Hashtags), encode(l.Captions),
		encode(l.ImagePrompts), encode(l.ImageURLs), encode(l.Recommendations),
		l.Confidence, l.Status, l.Version, encode(l.Notes),
	}
	return repository.QueryOne(ctx, q, insertListingSQL, args, scanListing)
}

func saveListing(ctx context.Context, q repository.Querier, l Listing) (Listing, error) {
	args := []any{
		l.Title, l.Description, encode(l.BulletPoints), encode(l.SearchTerms),
		encode(l.BackendKeywords), l.PricingNotes, encode(l.Hashtags),
		encode(l.Captions), encode(l.ImagePrompts), encode(l.ImageURLs),
		encode(l.Recommendations), l.Confidence, l.Status, l.Version,
		encode(l.Notes), l.ID,
	}
	return repository.QueryOne(ctx, q, updateListingSQL, args, scanListing)
}

func insertResults(ctx context.Context, q repository.Querier, listingID uuid.UUID, results []AgentResult) error {
	for i, result := range results {
		payload, notes := resultArgs(result)
		if _, err := q.ExecContext(ctx, insertResultSQL,
			listingID, result.Agent, result.Status, payload,
			result.Confidence, int64(result.Duration), notes, i,
		); err != nil {
			return fmt.Errorf("store %s result: %w", result.Agent, err)
		}
	}
	return nil
}

// upsertResult replaces an agent's stored result in place, preserving its
// invocation position. An agent with no prior result is appended after the
// existing ones.
func upsertResult(ctx context.Context, q repository.Querier, listingID uuid.UUID, result AgentResult) error {
	payload, notes := resultArgs(result)

	res, err := q.ExecContext(ctx, updateResultSQL,
		result.Status, payload, result.Confidence, int64(result.Duration),
		notes, listingID, result.Agent)
	if err != nil {
		return fmt.Errorf("replace %s result: %w", result.Agent, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	if _, err := q.ExecContext(ctx, appendResultSQL,
		listingID, result.Agent, result.Status, payload,
		result.Confidence, int64(result.Duration), notes,
	); err != nil {
		return fmt.Errorf("append %s result: %w", result.Agent, err)
	}
	return nil
}

func insertVersion(ctx context.Context, q repository.Querier, l Listing) error {
	if _, err := q.ExecContext(ctx, insertVersionSQL, l.ID, l.Version, encode(l)); err != nil {
		return fmt.Errorf("record version %d: %w", l.Version, err)
	}
	return nil
}

func resultArgs(result AgentResult) (payload, notes []byte) {
	payload = []byte(result.Payload)
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	list := result.Notes
	if list == nil {
		list = []string{}
	}
	return payload, encode(list)
}

// encode marshals JSONB parameters. The listing types marshal without error.
func encode(v any) []byte {
	data, _ := json.Marshal(v)
	return data
}
