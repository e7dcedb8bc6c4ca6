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

type LaudoRepository interface {
	FindByOSID(ctx context.Context, empresaID, osID uuid.UUID) (*entities.Laudo, error)
	Upsert(ctx context.Context, l *entities.Laudo) error
}

type laudoRepository struct {
	pool *pgxpool.Pool
}

func NewLaudoRepository(pool *pgxpool.Pool) LaudoRepository {
	return &laudoRepository{pool: pool}
}

func (r *laudoRepository) FindByOSID(ctx context.Context, empresaID, osID uuid.UUID) (*entities.Laudo, error) {
	var l entities.Laudo
	err := r.pool.QueryRow(ctx, `
		SELECT id, os_id, empresa_id, o_que_foi_feito, observacao, created_at, updated_at
		FROM laudos
		WHERE os_id = $1 AND empresa_id = $2`,
		osID, empresaID,
	).Scan(&l.ID, &l.OSID, &l.EmpresaID, &l.OQueFoiFeito, &l.Observacao, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNaoEncontrado
		}
		return nil, err
	}
	return &l, nil
}

// Upsert mantém no máximo um laudo por OS; edições sucessivas sobrescrevem
// os campos em vez de acumular registros.
func (r *laudoRepository) Upsert(ctx context.Context, l *entities.Laudo) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO laudos (id, os_id, empresa_id, o_que_foi_feito, observacao)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (os_id) DO UPDATE SET
			o_que_foi_feito = EXCLUDED.o_que_foi_feito,
			observacao = EXCLUDED.observacao,
			updated_at = now()
		RETURNING id, created_at, updated_at`,
		l.ID, l.OSID, l.EmpresaID, l.OQueFoiFeito, l.Observacao,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}
