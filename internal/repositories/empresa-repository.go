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

type EmpresaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Empresa, error)
	List(ctx context.Context) ([]entities.Empresa, error)
}

type empresaRepository struct {
	pool *pgxpool.Pool
}

func NewEmpresaRepository(pool *pgxpool.Pool) EmpresaRepository {
	return &empresaRepository{pool: pool}
}

func (r *empresaRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Empresa, error) {
	var e entities.Empresa
	err := r.pool.QueryRow(ctx, `
		SELECT id, nome, documento, created_at FROM empresas WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Nome, &e.Documento, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNaoEncontrado
		}
		return nil, err
	}
	return &e, nil
}

// List só é exposta a admins de plataforma, para escolher quem impersonar.
func (r *empresaRepository) List(ctx context.Context) ([]entities.Empresa, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, nome, documento, created_at FROM empresas ORDER BY nome ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	empresas := make([]entities.Empresa, 0)
	for rows.Next() {
		var e entities.Empresa
		if err := rows.Scan(&e.ID, &e.Nome, &e.Documento, &e.CreatedAt); err != nil {
			return nil, err
		}
		empresas = append(empresas, e)
	}
	return empresas, rows.Err()
}
