package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"os-system/internal/entities"
	apperrors "os-system/pkg/errors"
)

type ChecklistRepository interface {
	SeedInTx(ctx context.Context, tx pgx.Tx, osID uuid.UUID, descricoes []string) error
	FindByOSID(ctx context.Context, empresaID, osID uuid.UUID) ([]entities.ChecklistItem, error)
	UpdateStatus(ctx context.Context, empresaID, osID, itemID uuid.UUID, status string) (*entities.ChecklistItem, error)
	CountPendentes(ctx context.Context, osID uuid.UUID) (int, error)
}

type checklistRepository struct {
	pool *pgxpool.Pool
}

func NewChecklistRepository(pool *pgxpool.Pool) ChecklistRepository {
	return &checklistRepository{pool: pool}
}

// SeedInTx cria os itens na ordem recebida, dentro da transação de criação
// da OS.
func (r *checklistRepository) SeedInTx(ctx context.Context, tx pgx.Tx, osID uuid.UUID, descricoes []string) error {
	for i, descricao := range descricoes {
		_, err := tx.Exec(ctx, `
			INSERT INTO os_checklist_items (id, os_id, descricao, ordem)
			VALUES ($1, $2, $3, $4)`,
			uuid.New(), osID, descricao, i+1)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *checklistRepository) FindByOSID(ctx context.Context, empresaID, osID uuid.UUID) ([]entities.ChecklistItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.id, i.os_id, i.descricao, i.ordem, i.status, i.created_at, i.updated_at
		FROM os_checklist_items i
		JOIN ordens_servico os ON os.id = i.os_id
		WHERE i.os_id = $1 AND os.empresa_id = $2
		ORDER BY i.ordem ASC`,
		osID, empresaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	itens := make([]entities.ChecklistItem, 0)
	for rows.Next() {
		var item entities.ChecklistItem
		err := rows.Scan(&item.ID, &item.OSID, &item.Descricao, &item.Ordem,
			&item.Status, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, err
		}
		itens = append(itens, item)
	}
	return itens, rows.Err()
}

func (r *checklistRepository) UpdateStatus(ctx context.Context, empresaID, osID, itemID uuid.UUID, status string) (*entities.ChecklistItem, error) {
	var item entities.ChecklistItem
	err := r.pool.QueryRow(ctx, `
		UPDATE os_checklist_items i SET status = $1, updated_at = now()
		FROM ordens_servico os
		WHERE i.id = $2 AND i.os_id = $3 AND os.id = i.os_id AND os.empresa_id = $4
		RETURNING i.id, i.os_id, i.descricao, i.ordem, i.status, i.created_at, i.updated_at`,
		status, itemID, osID, empresaID,
	).Scan(&item.ID, &item.OSID, &item.Descricao, &item.Ordem,
		&item.Status, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNaoEncontrado
		}
		return nil, err
	}
	return &item, nil
}

// CountPendentes conta itens ainda sem avaliação; usado só para log na
// finalização, nunca para bloquear.
func (r *checklistRepository) CountPendentes(ctx context.Context, osID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM os_checklist_items
		WHERE os_id = $1 AND status IS NULL`,
		osID).Scan(&count)
	return count, err
}
