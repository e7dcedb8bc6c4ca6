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

var clienteSortable = map[string]string{
	"nome":       "nome",
	"ativo":      "ativo",
	"created_at": "created_at",
}

type ClienteRepository interface {
	Create(ctx context.Context, c *entities.Cliente) error
	Update(ctx context.Context, c *entities.Cliente) error
	FindByID(ctx context.Context, empresaID, id uuid.UUID) (*entities.Cliente, error)
	List(ctx context.Context, empresaID uuid.UUID, filter types.Filter) ([]entities.Cliente, uint64, error)
	Delete(ctx context.Context, empresaID, id uuid.UUID) error
}

type clienteRepository struct {
	pool *pgxpool.Pool
}

func NewClienteRepository(pool *pgxpool.Pool) ClienteRepository {
	return &clienteRepository{pool: pool}
}

func (r *clienteRepository) Create(ctx context.Context, c *entities.Cliente) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO clientes (id, empresa_id, nome, documento, endereco, telefone, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ativo, created_at, updated_at`,
		c.ID, c.EmpresaID, c.Nome, c.Documento, c.Endereco, c.Telefone, c.Email,
	).Scan(&c.Ativo, &c.CreatedAt, &c.UpdatedAt)
}

func (r *clienteRepository) Update(ctx context.Context, c *entities.Cliente) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE clientes SET nome = $1, documento = $2, endereco = $3, telefone = $4,
			email = $5, ativo = $6, updated_at = now()
		WHERE id = $7 AND empresa_id = $8
		RETURNING updated_at`,
		c.Nome, c.Documento, c.Endereco, c.Telefone, c.Email, c.Ativo, c.ID, c.EmpresaID,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNaoEncontrado
	}
	return err
}

func (r *clienteRepository) FindByID(ctx context.Context, empresaID, id uuid.UUID) (*entities.Cliente, error) {
	var c entities.Cliente
	err := r.pool.QueryRow(ctx, `
		SELECT id, empresa_id, nome, documento, endereco, telefone, email, ativo, created_at, updated_at
		FROM clientes WHERE id = $1 AND empresa_id = $2`,
		id, empresaID,
	).Scan(&c.ID, &c.EmpresaID, &c.Nome, &c.Documento, &c.Endereco,
		&c.Telefone, &c.Email, &c.Ativo, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNaoEncontrado
		}
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepository) List(ctx context.Context, empresaID uuid.UUID, filter types.Filter) ([]entities.Cliente, uint64, error) {
	base := psql.Select().From("clientes").Where(sq.Eq{"empresa_id": empresaID})
	base = applyFilter(base, types.Filter{Search: filter.Search, Filter: filter.Filter},
		[]string{"nome", "documento", "email"}, clienteSortable)

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sel := applyFilter(
		psql.Select("id, empresa_id, nome, documento, endereco, telefone, email, ativo, created_at, updated_at").
			From("clientes").Where(sq.Eq{"empresa_id": empresaID}),
		filter, []string{"nome", "documento", "email"}, clienteSortable,
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

	clientes := make([]entities.Cliente, 0)
	for rows.Next() {
		var c entities.Cliente
		err := rows.Scan(&c.ID, &c.EmpresaID, &c.Nome, &c.Documento, &c.Endereco,
			&c.Telefone, &c.Email, &c.Ativo, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}
		clientes = append(clientes, c)
	}
	return clientes, total, rows.Err()
}

func (r *clienteRepository) Delete(ctx context.Context, empresaID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM clientes WHERE id = $1 AND empresa_id = $2`, id, empresaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNaoEncontrado
	}
	return nil
}
