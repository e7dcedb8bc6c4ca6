package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"os-system/internal/entities"
)

type OSHistoryRepository interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, h *entities.OSStatusHistory) error
	FindByOSID(ctx context.Context, empresaID, osID uuid.UUID) ([]entities.OSStatusHistory, error)
}

type osHistoryRepository struct {
	pool *pgxpool.Pool
}

func NewOSHistoryRepository(pool *pgxpool.Pool) OSHistoryRepository {
	return &osHistoryRepository{pool: pool}
}

// CreateInTx grava o evento na mesma transação da mudança de status; ou os
// dois persistem, ou nenhum.
func (r *osHistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, h *entities.OSStatusHistory) error {
	return tx.QueryRow(ctx, `
		INSERT INTO os_status_history (id, os_id, status_anterior, status_novo, changed_by, action_type, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING changed_at`,
		h.ID, h.OSID, h.StatusAnterior, h.StatusNovo, h.ChangedBy, h.ActionType, h.Reason,
	).Scan(&h.ChangedAt)
}

// FindByOSID devolve a linha do tempo da OS, evento mais recente primeiro.
// O join com ordens_servico garante o escopo por empresa.
func (r *osHistoryRepository) FindByOSID(ctx context.Context, empresaID, osID uuid.UUID) ([]entities.OSStatusHistory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT h.id, h.os_id, h.status_anterior, h.status_novo, h.changed_by,
		       h.changed_at, h.action_type, h.reason
		FROM os_status_history h
		JOIN ordens_servico os ON os.id = h.os_id
		WHERE h.os_id = $1 AND os.empresa_id = $2
		ORDER BY h.changed_at DESC, h.id DESC`,
		osID, empresaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	eventos := make([]entities.OSStatusHistory, 0)
	for rows.Next() {
		var h entities.OSStatusHistory
		err := rows.Scan(&h.ID, &h.OSID, &h.StatusAnterior, &h.StatusNovo,
			&h.ChangedBy, &h.ChangedAt, &h.ActionType, &h.Reason)
		if err != nil {
			return nil, err
		}
		eventos = append(eventos, h)
	}
	return eventos, rows.Err()
}
