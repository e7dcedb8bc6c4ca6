package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"os-system/internal/dto"
	"os-system/internal/entities"
	apperrors "os-system/pkg/errors"
)

const osColumns = `id, empresa_id, cliente_id, equipamento_id, tecnico_id, tipo, prioridade,
	status, numero_os, origem, data_abertura, data_programada, data_inicio, data_fim,
	observacoes, quem_solicitou, estado_equipamento, nome_cliente_assinatura,
	assinatura_cliente, email_cliente_assinatura, created_at, updated_at`

const osColumnsQualified = `os.id, os.empresa_id, os.cliente_id, os.equipamento_id, os.tecnico_id,
	os.tipo, os.prioridade, os.status, os.numero_os, os.origem, os.data_abertura,
	os.data_programada, os.data_inicio, os.data_fim, os.observacoes, os.quem_solicitou,
	os.estado_equipamento, os.nome_cliente_assinatura, os.assinatura_cliente,
	os.email_cliente_assinatura, os.created_at, os.updated_at`

type OSRepository interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, os *entities.OrdemServico) error
	UpdateInTx(ctx context.Context, tx pgx.Tx, os *entities.OrdemServico) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.OrdemServico, error)
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.OrdemServico, error)
	List(ctx context.Context, empresaID uuid.UUID, filter dto.ListOSFilter) ([]entities.OrdemServico, uint64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	TravarNumeracao(ctx context.Context, tx pgx.Tx, empresaID uuid.UUID, ano int) error
	UltimoNumeroDoAno(ctx context.Context, tx pgx.Tx, empresaID uuid.UUID, ano int) (string, error)
	TecnicoEmAtendimento(ctx context.Context, empresaID, tecnicoID uuid.UUID, excetoOS *uuid.UUID) (bool, error)
	TecnicoEmAtendimentoInTx(ctx context.Context, tx pgx.Tx, empresaID, tecnicoID uuid.UUID, excetoOS *uuid.UUID) (bool, error)
}

type osRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewOSRepository(pool *pgxpool.Pool, logger *zap.Logger) OSRepository {
	return &osRepository{pool: pool, logger: logger}
}

func scanOS(row pgx.Row) (*entities.OrdemServico, error) {
	var os entities.OrdemServico
	err := row.Scan(
		&os.ID, &os.EmpresaID, &os.ClienteID, &os.EquipamentoID, &os.TecnicoID,
		&os.Tipo, &os.Prioridade, &os.Status, &os.NumeroOS, &os.Origem,
		&os.DataAbertura, &os.DataProgramada, &os.DataInicio, &os.DataFim,
		&os.Observacoes, &os.QuemSolicitou, &os.EstadoEquipamento,
		&os.NomeClienteAssinatura, &os.AssinaturaCliente, &os.EmailClienteAssinatura,
		&os.CreatedAt, &os.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &os, nil
}

// translateOSError converte violações de constraint conhecidas em erros de
// domínio com mensagens legíveis.
func translateOSError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.ConstraintName {
	case "ordens_servico_datas_logicas":
		return apperrors.NewValidationError("datas inconsistentes: verifique data_programada, data_inicio e data_fim")
	case "ordens_servico_status_check":
		return apperrors.NewValidationError("status inválido ou campo obrigatório do status ausente")
	case "ordens_servico_empresa_numero_unico":
		return apperrors.ErrConflito
	}
	return err
}

func (r *osRepository) CreateInTx(ctx context.Context, tx pgx.Tx, os *entities.OrdemServico) error {
	query := `
		INSERT INTO ordens_servico (
			id, empresa_id, cliente_id, equipamento_id, tecnico_id, tipo, prioridade,
			status, numero_os, origem, data_abertura, data_programada, data_inicio,
			data_fim, observacoes, quem_solicitou, estado_equipamento
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at, updated_at`

	err := tx.QueryRow(ctx, query,
		os.ID, os.EmpresaID, os.ClienteID, os.EquipamentoID, os.TecnicoID,
		os.Tipo, os.Prioridade, os.Status, os.NumeroOS, os.Origem,
		os.DataAbertura, os.DataProgramada, os.DataInicio, os.DataFim,
		os.Observacoes, os.QuemSolicitou, os.EstadoEquipamento,
	).Scan(&os.CreatedAt, &os.UpdatedAt)
	if err != nil {
		return translateOSError(err)
	}
	return nil
}

func (r *osRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, os *entities.OrdemServico) error {
	query := `
		UPDATE ordens_servico SET
			cliente_id = $1, equipamento_id = $2, tecnico_id = $3, tipo = $4,
			prioridade = $5, status = $6, data_programada = $7, data_inicio = $8,
			data_fim = $9, observacoes = $10, quem_solicitou = $11,
			estado_equipamento = $12, nome_cliente_assinatura = $13,
			assinatura_cliente = $14, email_cliente_assinatura = $15,
			updated_at = now()
		WHERE id = $16 AND empresa_id = $17
		RETURNING updated_at`

	err := tx.QueryRow(ctx, query,
		os.ClienteID, os.EquipamentoID, os.TecnicoID, os.Tipo,
		os.Prioridade, os.Status, os.DataProgramada, os.DataInicio,
		os.DataFim, os.Observacoes, os.QuemSolicitou,
		os.EstadoEquipamento, os.NomeClienteAssinatura,
		os.AssinaturaCliente, os.EmailClienteAssinatura,
		os.ID, os.EmpresaID,
	).Scan(&os.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNaoEncontrado
		}
		return translateOSError(err)
	}
	return nil
}

// findByID busca pelo id sem filtrar empresa; a camada de serviço compara a
// empresa da linha com a do ator para responder Forbidden em vez de NotFound
// quando a OS pertence a outra empresa.
func (r *osRepository) findByID(ctx context.Context, q querier, id uuid.UUID, forUpdate bool) (*entities.OrdemServico, error) {
	query := fmt.Sprintf(`SELECT %s FROM ordens_servico WHERE id = $1`, osColumns)
	if forUpdate {
		query += " FOR UPDATE"
	}
	os, err := scanOS(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNaoEncontrado
		}
		return nil, err
	}
	return os, nil
}

func (r *osRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.OrdemServico, error) {
	return r.findByID(ctx, r.pool, id, false)
}

// FindByIDForUpdate trava a linha pela duração da transação; toda transição
// de status lê por aqui antes de decidir.
func (r *osRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.OrdemServico, error) {
	return r.findByID(ctx, tx, id, true)
}

func (r *osRepository) List(ctx context.Context, empresaID uuid.UUID, filter dto.ListOSFilter) ([]entities.OrdemServico, uint64, error) {
	base := psql.Select().
		From("ordens_servico os").
		Where(sq.Eq{"os.empresa_id": empresaID})

	if filter.TecnicoID != nil {
		base = base.Where(sq.Eq{"os.tecnico_id": *filter.TecnicoID})
	}
	if filter.Status != "" {
		base = base.Where(sq.Eq{"os.status": filter.Status})
	}
	if filter.Prioridade != "" {
		base = base.Where(sq.Eq{"os.prioridade": filter.Prioridade})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.
			LeftJoin("clientes c ON c.id = os.cliente_id").
			Where(sq.Or{
				sq.ILike{"os.numero_os": pattern},
				sq.ILike{"os.tipo": pattern},
				sq.ILike{"os.status": pattern},
				sq.ILike{"os.observacoes": pattern},
				sq.ILike{"c.nome": pattern},
			})
	}

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sel := base.Column(osColumnsQualified)
	switch filter.OrderBy {
	case "prioridade":
		sel = sel.OrderBy(`CASE os.prioridade
			WHEN 'urgente' THEN 1 WHEN 'alta' THEN 2
			WHEN 'media' THEN 3 ELSE 4 END`, "os.created_at DESC")
	case "status":
		sel = sel.OrderBy(`CASE os.status
			WHEN 'novo' THEN 1 WHEN 'agendado' THEN 2 WHEN 'em_deslocamento' THEN 3
			WHEN 'checkin' THEN 4 WHEN 'em_andamento' THEN 5
			WHEN 'aguardando_assinatura' THEN 6 WHEN 'parado' THEN 7
			WHEN 'reaberta' THEN 8 WHEN 'concluido' THEN 9 ELSE 10 END`, "os.created_at DESC")
	default:
		sel = sel.OrderBy("os.created_at DESC")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 {
		size = 20
	}
	sel = sel.Limit(uint64(size)).Offset(uint64((page - 1) * size))

	listSQL, listArgs, err := sel.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	ordens := make([]entities.OrdemServico, 0)
	for rows.Next() {
		var os entities.OrdemServico
		err := rows.Scan(
			&os.ID, &os.EmpresaID, &os.ClienteID, &os.EquipamentoID, &os.TecnicoID,
			&os.Tipo, &os.Prioridade, &os.Status, &os.NumeroOS, &os.Origem,
			&os.DataAbertura, &os.DataProgramada, &os.DataInicio, &os.DataFim,
			&os.Observacoes, &os.QuemSolicitou, &os.EstadoEquipamento,
			&os.NomeClienteAssinatura, &os.AssinaturaCliente, &os.EmailClienteAssinatura,
			&os.CreatedAt, &os.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		ordens = append(ordens, os)
	}
	return ordens, total, rows.Err()
}

func (r *osRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM ordens_servico WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNaoEncontrado
	}
	return nil
}

// TravarNumeracao serializa a geração de numero_os por (empresa, ano) com um
// advisory lock transacional. O lock cai junto com o commit/rollback.
func (r *osRepository) TravarNumeracao(ctx context.Context, tx pgx.Tx, empresaID uuid.UUID, ano int) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1), $2)`, empresaID.String(), ano)
	return err
}

// UltimoNumeroDoAno devolve o numero_os da OS criada mais recentemente no
// ano ("" quando não há nenhuma). Com a numeração serializada pelo advisory
// lock, a mais recente carrega também a maior sequência.
func (r *osRepository) UltimoNumeroDoAno(ctx context.Context, tx pgx.Tx, empresaID uuid.UUID, ano int) (string, error) {
	var numero string
	err := tx.QueryRow(ctx, `
		SELECT numero_os FROM ordens_servico
		WHERE empresa_id = $1 AND numero_os LIKE $2
		ORDER BY created_at DESC
		LIMIT 1`,
		empresaID, fmt.Sprintf("OS-%%-%d", ano),
	).Scan(&numero)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return numero, nil
}

func (r *osRepository) tecnicoEmAtendimento(ctx context.Context, q querier, empresaID, tecnicoID uuid.UUID, excetoOS *uuid.UUID) (bool, error) {
	b := psql.Select("COUNT(*)").
		From("ordens_servico").
		Where(sq.Eq{"empresa_id": empresaID, "tecnico_id": tecnicoID}).
		Where(sq.Eq{"status": []string{"em_deslocamento", "checkin"}})
	if excetoOS != nil {
		b = b.Where(sq.NotEq{"id": *excetoOS})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return false, err
	}
	var count int
	if err := q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *osRepository) TecnicoEmAtendimento(ctx context.Context, empresaID, tecnicoID uuid.UUID, excetoOS *uuid.UUID) (bool, error) {
	return r.tecnicoEmAtendimento(ctx, r.pool, empresaID, tecnicoID, excetoOS)
}

func (r *osRepository) TecnicoEmAtendimentoInTx(ctx context.Context, tx pgx.Tx, empresaID, tecnicoID uuid.UUID, excetoOS *uuid.UUID) (bool, error) {
	return r.tecnicoEmAtendimento(ctx, tx, empresaID, tecnicoID, excetoOS)
}
