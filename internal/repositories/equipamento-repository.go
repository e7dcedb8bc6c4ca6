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

var equipamentoSortable = map[string]string{
	"nome":       "nome",
	"cliente_id": "cliente_id",
	"ativo":      "ativo",
	"created_at": "created_at",
}

type EquipamentoRepository interface {
	Create(ctx context.Context, e *entities.Equipamento) error
	Update(ctx context.Context, e *entities.Equipamento) error
	FindByID(ctx context.Context, empresaID, id uuid.UUID) (*entities.Equipamento, error)
	List(ctx context.Context, empresaID uuid.UUID, filter types.Filter) ([]entities.Equipamento, uint64, error)
	Delete(ctx context.Context, empresaID, id uuid.UUID) error
}

type equipamentoRepository struct {
	pool *pgxpool.Pool
}

func NewEquipamentoRepository(pool *pgxpool.Pool) EquipamentoRepository {
	return &equipamentoRepository{pool: pool}
}

func (r *equipamentoRepository) Create(ctx context.Context, e *entities.Equipamento) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO equipamentos (id, empresa_id, cliente_id, nome, fabricante, modelo, numero_serie, localizacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ativo, created_at, updated_at`,
		e.ID, e.EmpresaID, e.ClienteID, e.Nome, e.Fabricante, e.Modelo, e.NumeroSerie, e.Localizacao,
	).Scan(&e.Ativo, &e.CreatedAt, &e.UpdatedAt)
}

func (r *equipamentoRepository) Update(ctx context.Context, e *entities.Equipamento) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE equipamentos SET nome = $1, fabricante = $2, modelo = $3,
			numero_serie = $4, localizacao = $5, ativo = $6, updated_at = now()
		WHERE id = $7 AND empresa_id = $8
		RETURNING updated_at`,
		e.Nome, e.Fabricante, e.Modelo, e.NumeroSerie, e.Localizacao, e.Ativo, e.ID, e.EmpresaID,
	).Scan(&e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNaoEncontrado
	}
	return err
}

func (r *equipamentoRepository) FindByID(ctx context.Context, empresaID, id uuid.UUID) (*entities.Equipamento, error) {
	var e entities.Equipamento
	err := r.pool.QueryRow(ctx, `
		SELECT id, empresa_id, cliente_id, nome, fabricante, modelo, numero_serie,
		       localizacao, ativo, created_at, updated_at
		FROM equipamentos WHERE id = $1 AND empresa_id = $2`,
		id, empresaID,
	).Scan(&e.ID, &e.EmpresaID, &e.ClienteID, &e.Nome, &e.Fabricante, &e.Modelo,
		&e.NumeroSerie, &e.Localizacao, &e.Ativo, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNaoEncontrado
		}
		return nil, err
	}
	return &e, nil
}

func (r *equipamentoRepository) List(ctx context.Context, empresaID uuid.UUID, filter types.Filter) ([]entities.Equipamento, uint64, error) {
	base := applyFilter(
		psql.Select().From("equipamentos").Where(sq.Eq{"empresa_id": empresaID}),
		types.Filter{Search: filter.Search, Filter: filter.Filter},
		[]string{"nome", "numero_serie", "localizacao"}, equipamentoSortable,
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
		psql.Select(`id, empresa_id, cliente_id, nome, fabricante, modelo, numero_serie,
			localizacao, ativo, created_at, updated_at`).
			From("equipamentos").Where(sq.Eq{"empresa_id": empresaID}),
		filter, []string{"nome", "numero_serie", "localizacao"}, equipamentoSortable,
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

	equipamentos := make([]entities.Equipamento, 0)
	for rows.Next() {
		var e entities.Equipamento
		err := rows.Scan(&e.ID, &e.EmpresaID, &e.ClienteID, &e.Nome, &e.Fabricante,
			&e.Modelo, &e.NumeroSerie, &e.Localizacao, &e.Ativo, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}
		equipamentos = append(equipamentos, e)
	}
	return equipamentos, total, rows.Err()
}

func (r *equipamentoRepository) Delete(ctx context.Context, empresaID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM equipamentos WHERE id = $1 AND empresa_id = $2`, id, empresaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNaoEncontrado
	}
	return nil
}
