package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"os-system/internal/entities"
)

type EvidenciaRepository interface {
	Create(ctx context.Context, e *entities.Evidencia) error
	FindByOSID(ctx context.Context, empresaID, osID uuid.UUID) ([]entities.Evidencia, error)
}

type evidenciaRepository struct {
	pool *pgxpool.Pool
}

func NewEvidenciaRepository(pool *pgxpool.Pool) EvidenciaRepository {
	return &evidenciaRepository{pool: pool}
}

func (r *evidenciaRepository) Create(ctx context.Context, e *entities.Evidencia) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO os_evidencias (id, os_id, tipo, referencia, texto)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		e.ID, e.OSID, e.Tipo, e.Referencia, e.Texto,
	).Scan(&e.CreatedAt)
}

func (r *evidenciaRepository) FindByOSID(ctx context.Context, empresaID, osID uuid.UUID) ([]entities.Evidencia, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.os_id, e.tipo, e.referencia, e.texto, e.created_at
		FROM os_evidencias e
		JOIN ordens_servico os ON os.id = e.os_id
		WHERE e.os_id = $1 AND os.empresa_id = $2
		ORDER BY e.created_at ASC`,
		osID, empresaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	evidencias := make([]entities.Evidencia, 0)
	for rows.Next() {
		var e entities.Evidencia
		if err := rows.Scan(&e.ID, &e.OSID, &e.Tipo, &e.Referencia, &e.Texto, &e.CreatedAt); err != nil {
			return nil, err
		}
		evidencias = append(evidencias, e)
	}
	return evidencias, rows.Err()
}
