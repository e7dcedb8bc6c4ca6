package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"os-system/internal/entities"
	apperrors "os-system/pkg/errors"
	"os-system/pkg/types"
)

var colaboradorSortable = map[string]string{
	"nome":       "nome",
	"funcao":     "funcao",
	"ativo":      "ativo",
	"created_at": "created_at",
}

type ColaboradorRepository interface {
	Create(ctx context.Context, c *entities.Colaborador) error
	Update(ctx context.Context, c *entities.Colaborador) error
	FindByID(ctx context.Context, empresaID, id uuid.UUID) (*entities.Colaborador, error)
	List(ctx context.Context, empresaID uuid.UUID, filter types.Filter) ([]entities.Colaborador, uint64, error)
	Delete(ctx context.Context, empresaID, id uuid.UUID) error
}

type colaboradorRepository struct {
	pool *pgxpool.Pool
}

func NewColaboradorRepository(pool *pgxpool.Pool) ColaboradorRepository {
	return &colaboradorRepository{pool: pool}
}

func (r *colaboradorRepository) Create(ctx context.Context, c *entities.Colaborador) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO colaboradores (id, empresa_id, nome, funcao, telefone, email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ativo, created_at, updated_at`,
		c.ID, c.EmpresaID, c.Nome, c.Funcao, c.Telefone, c.Email,
	).Scan(&c.Ativo, &c.CreatedAt, &c.UpdatedAt)
}

func (r *colaboradorRepository) Update(ctx context.Context, c *entities.Colaborador) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE colaboradores SET nome = $1, funcao = $2, telefone = $3, email = $4,
			ativo = $5, updated_at = now()
		WHERE id = $6 AND empresa_id = $7
		RETURNING updated_at`,
		c.Nome, c.Funcao, c.Telefone, c.Email, c.Ativo, c.ID, c.EmpresaID,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNaoEncontrado
	}
	return err
}

func (r *colaboradorRepository) FindByID(ctx context.Context, empresaID, id uuid.UUID) (*entities.Colaborador, error) {
	var c entities.Colaborador
	err := r.pool.QueryRow(ctx, `
		SELECT id, empresa_id, nome, funcao, telefone, email, ativo, created_at, updated_at
		FROM colaboradores WHERE id = $1 AND empresa_id = $2`,
		id, empresaID,
	).Scan(&c.ID, &c.EmpresaID, &c.Nome, &c.Funcao, &c.Telefone,
		&c.Email, &c.Ativo, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNaoEncontrado
		}
		return nil, err
	}
	return &c, nil
}

func (r *colaboradorRepository) List(ctx context.Context, empresaID uuid.UUID, filter types.Filter) ([]entities.Colaborador, uint64, error) {
	base := applyFilter(
		psql.Select().From("colaboradores").Where(sq.Eq{"empresa_id": empresaID}),
		types.Filter{Search: filter.Search, Filter: filter.Filter},
		[]string{"nome", "funcao", "email"}, colaboradorSortable,
	)

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sel := applyFilter(
		psql.Select("id, empresa_id, nome, funcao, telefone, email, ativo, created_at, updated_at").
			From("colaboradores").Where(sq.Eq{"empresa_id": empresaID}),
		filter, []string{"nome", "funcao", "email"}, colaboradorSortable,
	)
	if len(filter.Sort) == 0 {
		sel = sel.OrderBy("nome ASC")
	}

	listSQL, listArgs, err := sel.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	colaboradores := make([]entities.Colaborador, 0)
	for rows.Next() {
		var c entities.Colaborador
		err := rows.Scan(&c.ID, &c.EmpresaID, &c.Nome, &c.Funcao, &c.Telefone,
			&c.Email, &c.Ativo, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}
		colaboradores = append(colaboradores, c)
	}
	return colaboradores, total, rows.Err()
}

func (r *colaboradorRepository) Delete(ctx context.Context, empresaID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM colaboradores WHERE id = $1 AND empresa_id = $2`, id, empresaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNaoEncontrado
	}
	return nil
}
