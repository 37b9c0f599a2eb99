package postgres

import (
	"context"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type toolRepository struct {
	q Querier
}

func NewToolRepository(q Querier) repository.ToolRepository {
	return &toolRepository{q: q}
}

const toolColumns = `id, owner_id, name, COALESCE(description, ''), COALESCE(image_url, ''), daily_rate_cents, deposit_cents, available, created_on, deleted_on`

func scanTool(s rowScanner, t *domain.Tool) error {
	return s.Scan(&t.ID, &t.OwnerID, &t.Name, &t.Description, &t.ImageURL, &t.DailyRateCents, &t.DepositCents, &t.Available, &t.CreatedOn, &t.DeletedOn)
}

func (r *toolRepository) Create(ctx context.Context, t *domain.Tool) error {
	query := `INSERT INTO tools (owner_id, name, description, image_url, daily_rate_cents, deposit_cents, available)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_on`
	err := r.q.QueryRowContext(ctx, query, t.OwnerID, t.Name, t.Description, t.ImageURL, t.DailyRateCents, t.DepositCents, t.Available).Scan(&t.ID, &t.CreatedOn)
	return mapError("tools.create", err)
}

// GetByID returns live tools only; soft-deleted rows read as not found.
func (r *toolRepository) GetByID(ctx context.Context, id int32) (*domain.Tool, error) {
	t := &domain.Tool{}
	query := `SELECT ` + toolColumns + ` FROM tools WHERE id = $1 AND deleted_on IS NULL`
	if err := scanTool(r.q.QueryRowContext(ctx, query, id), t); err != nil {
		return nil, mapError("tools.get_by_id", err)
	}
	return t, nil
}

func (r *toolRepository) List(ctx context.Context) ([]domain.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE deleted_on IS NULL ORDER BY id`
	return r.list(ctx, "tools.list", query)
}

func (r *toolRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE owner_id = $1 AND deleted_on IS NULL ORDER BY id`
	return r.list(ctx, "tools.list_by_owner", query, ownerID)
}

func (r *toolRepository) list(ctx context.Context, op, query string, args ...any) ([]domain.Tool, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	tools := []domain.Tool{}
	for rows.Next() {
		var t domain.Tool
		if err := scanTool(rows, &t); err != nil {
			return nil, mapError(op, err)
		}
		tools = append(tools, t)
	}
	return tools, mapError(op, rows.Err())
}

func (r *toolRepository) Update(ctx context.Context, t *domain.Tool) error {
	query := `UPDATE tools SET name=$1, description=$2, image_url=$3, daily_rate_cents=$4, deposit_cents=$5, available=$6
	          WHERE id=$7 AND deleted_on IS NULL`
	res, err := r.q.ExecContext(ctx, query, t.Name, t.Description, t.ImageURL, t.DailyRateCents, t.DepositCents, t.Available, t.ID)
	if err != nil {
		return mapError("tools.update", err)
	}
	return expectAffected(res)
}

// Delete soft-deletes the tool so existing bookings and reviews keep their references.
func (r *toolRepository) Delete(ctx context.Context, id int32) error {
	query := `UPDATE tools SET deleted_on = $1 WHERE id = $2 AND deleted_on IS NULL`
	res, err := r.q.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return mapError("tools.delete", err)
	}
	return expectAffected(res)
}
