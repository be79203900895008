package repository

import (
	"context"
	"fmt"

	"catalog/navigator/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SelectionRepository interface {
	SaveSelection(ctx context.Context, owner string, selection domain.Selection) error
}

type selectionRepository struct {
	db *pgxpool.Pool
}

func NewSelectionRepository(db *pgxpool.Pool) SelectionRepository {
	return &selectionRepository{
		db: db,
	}
}

// SaveSelection stores the last committed category of owner
func (r *selectionRepository) SaveSelection(ctx context.Context, owner string, selection domain.Selection) error {
	if selection.Node == nil {
		return fmt.Errorf("failed to save selection: no category committed")
	}

	query := `
	INSERT INTO category_selections (owner, category_id, breadcrumb, path, updated_at)
	VALUES ($1, $2, $3, $4, now())
	ON CONFLICT (owner)
	DO UPDATE SET category_id = $2, breadcrumb = $3, path = $4, updated_at = now()`
	_, err := r.db.Exec(ctx, query, owner, selection.Node.ID.String(), selection.Breadcrumb, pathStrings(selection.PathIDs()))
	if err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}

	return nil
}

func pathStrings(ids []domain.CategoryID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
