package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"os-system/internal/dto"
	"os-system/internal/entities"
	"os-system/pkg/constants"
	apperrors "os-system/pkg/errors"
)

// transicoesDiretas é o grafo de mudanças de status aceitas na edição geral
// (admin/supervisor). Reabertura de status terminal é tratada à parte.
var transicoesDiretas = map[string][]string{
	constants.StatusNovo:                 {constants.StatusAgendado, constants.StatusEmDeslocamento, constants.StatusCancelado, constants.StatusParado},
	constants.StatusAgendado:             {constants.StatusNovo, constants.StatusEmDeslocamento, constants.StatusCancelado, constants.StatusParado},
	constants.StatusEmDeslocamento:       {constants.StatusCheckin, constants.StatusAgendado, constants.StatusNovo, constants.StatusCancelado},
	constants.StatusCheckin:              {constants.StatusEmAndamento, constants.StatusAguardandoAssinatura, constants.StatusConcluido, constants.StatusParado, constants.StatusCancelado},
	constants.StatusEmAndamento:          {constants.StatusAguardandoAssinatura, constants.StatusConcluido, constants.StatusParado, constants.StatusCancelado},
	constants.StatusAguardandoAssinatura: {constants.StatusConcluido, constants.StatusEmAndamento, constants.StatusCancelado},
	constants.StatusParado:               {constants.StatusNovo, constants.StatusAgendado, constants.StatusEmDeslocamento, constants.StatusEmAndamento, constants.StatusCancelado},
	constants.StatusReaberta:             {constants.StatusAgendado, constants.StatusEmDeslocamento, constants.StatusCancelado, constants.StatusParado},
}

func transicaoPermitida(de, para string) bool {
	for _, s := range transicoesDiretas[de] {
		if s == para {
			return true
		}
	}
	return false
}

// aplicarEfeitosDeStatus preenche as datas implicadas pelo status, no mesmo
// espírito das CHECK constraints do banco.
func aplicarEfeitosDeStatus(os *entities.OrdemServico) {
	switch os.Status {
	case constants.StatusEmDeslocamento, constants.StatusCheckin,
		constants.StatusEmAndamento, constants.StatusAguardandoAssinatura:
		if !os.DataInicio.Valid {
			os.DataInicio = null.TimeFrom(time.Now())
		}
	case constants.StatusConcluido:
		if !os.DataFim.Valid {
			os.DataFim = null.TimeFrom(time.Now())
		}
	}
}

// Aceitar é a operação do técnico: assume a OS e já parte em deslocamento.
func (s *osService) Aceitar(ctx context.Context, actor *dto.Actor, osID uuid.UUID) (*entities.OrdemServico, error) {
	if actor.TecnicoID == nil {
		return nil, apperrors.ErrAcessoNegado
	}

	var updated *entities.OrdemServico
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		os, err := s.buscarOSForUpdate(ctx, tx, actor, osID)
		if err != nil {
			return err
		}
		if os.Status != constants.StatusNovo && os.Status != constants.StatusReaberta {
			return apperrors.NewValidationError("OS em %s não pode ser aceita", os.Status)
		}
		if os.TecnicoID != nil && *os.TecnicoID != *actor.TecnicoID {
			return apperrors.ErrAcessoNegado
		}

		ocupado, err := s.osRepo.TecnicoEmAtendimentoInTx(ctx, tx, actor.EmpresaID, *actor.TecnicoID, &os.ID)
		if err != nil {
			return err
		}
		if ocupado {
			return apperrors.ErrTecnicoOcupado
		}

		anterior := os.Status
		os.TecnicoID = actor.TecnicoID
		os.Status = constants.StatusEmDeslocamento
		aplicarEfeitosDeStatus(os)

		if err := s.osRepo.UpdateInTx(ctx, tx, os); err != nil {
			return err
		}
		if err := s.appendHistory(ctx, tx, os.ID, null.StringFrom(anterior), os.Status, actor, constants.ActionAccept, nil); err != nil {
			return err
		}
		updated = os
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Recusar devolve a OS para a fila: limpa o técnico e mantém novo.
func (s *osService) Recusar(ctx context.Context, actor *dto.Actor, osID uuid.UUID, req *dto.RecusarOSDTO) (*entities.OrdemServico, error) {
	if actor.TecnicoID == nil {
		return nil, apperrors.ErrAcessoNegado
	}

	var updated *entities.OrdemServico
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		os, err := s.buscarOSForUpdate(ctx, tx, actor, osID)
		if err != nil {
			return err
		}
		if os.Status != constants.StatusNovo {
			return apperrors.NewValidationError("OS em %s não pode ser recusada", os.Status)
		}
		if os.TecnicoID == nil || *os.TecnicoID != *actor.TecnicoID {
			return apperrors.ErrAcessoNegado
		}

		os.TecnicoID = nil
		if err := s.osRepo.UpdateInTx(ctx, tx, os); err != nil {
			return err
		}
		var reason *string
		if req != nil {
			reason = req.Reason
		}
		if err := s.appendHistory(ctx, tx, os.ID, null.StringFrom(os.Status), os.Status, actor, constants.ActionDecline, reason); err != nil {
			return err
		}
		updated = os
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// IniciarDeslocamento move uma OS já atribuída para em_deslocamento.
func (s *osService) IniciarDeslocamento(ctx context.Context, actor *dto.Actor, osID uuid.UUID) (*entities.OrdemServico, error) {
	var updated *entities.OrdemServico
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		os, err := s.buscarOSForUpdate(ctx, tx, actor, osID)
		if err != nil {
			return err
		}
		switch os.Status {
		case constants.StatusNovo, constants.StatusAgendado, constants.StatusReaberta:
		default:
			return apperrors.NewValidationError("OS em %s não pode iniciar deslocamento", os.Status)
		}
		if os.TecnicoID == nil {
			return apperrors.ErrTecnicoNaoAtribuido
		}
		if actor.IsTecnico() && !tecnicoDaOS(actor, os) {
			return apperrors.ErrAcessoNegado
		}

		ocupado, err := s.osRepo.TecnicoEmAtendimentoInTx(ctx, tx, actor.EmpresaID, *os.TecnicoID, &os.ID)
		if err != nil {
			return err
		}
		if ocupado {
			return apperrors.ErrTecnicoOcupado
		}

		anterior := os.Status
		os.Status = constants.StatusEmDeslocamento
		aplicarEfeitosDeStatus(os)

		if err := s.osRepo.UpdateInTx(ctx, tx, os); err != nil {
			return err
		}
		if err := s.appendHistory(ctx, tx, os.ID, null.StringFrom(anterior), os.Status, actor, constants.ActionStartTravel, nil); err != nil {
			return err
		}
		updated = os
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Checkin marca a chegada no local.
func (s *osService) Checkin(ctx context.Context, actor *dto.Actor, osID uuid.UUID) (*entities.OrdemServico, error) {
	var updated *entities.OrdemServico
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		os, err := s.buscarOSForUpdate(ctx, tx, actor, osID)
		if err != nil {
			return err
		}
		if os.Status != constants.StatusEmDeslocamento {
			return apperrors.NewValidationError("checkin exige OS em deslocamento, atual %s", os.Status)
		}
		if actor.IsTecnico() && !tecnicoDaOS(actor, os) {
			return apperrors.ErrAcessoNegado
		}

		anterior := os.Status
		os.Status = constants.StatusCheckin
		aplicarEfeitosDeStatus(os)

		if err := s.osRepo.UpdateInTx(ctx, tx, os); err != nil {
			return err
		}
		if err := s.appendHistory(ctx, tx, os.ID, null.StringFrom(anterior), os.Status, actor, constants.ActionCheckIn, nil); err != nil {
			return err
		}
		updated = os
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Finalizar fecha a OS e, conforme o estado do equipamento, abre a corretiva
// de desdobramento na mesma transação.
func (s *osService) Finalizar(ctx context.Context, actor *dto.Actor, osID uuid.UUID, req *dto.FinalizarOSDTO) (*entities.OrdemServico, error) {
	if !req.SemResponsavel && (req.NomeClienteAssinatura == "" || req.AssinaturaCliente == "") {
		return nil, apperrors.NewValidationError("assinatura do responsável é obrigatória (ou marque sem_responsavel)")
	}

	var updated *entities.OrdemServico
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		os, err := s.buscarOSForUpdate(ctx, tx, actor, osID)
		if err != nil {
			return err
		}
		switch os.Status {
		case constants.StatusCheckin, constants.StatusEmAndamento, constants.StatusAguardandoAssinatura:
		default:
			return apperrors.NewValidationError("OS em %s não pode ser finalizada", os.Status)
		}
		// Finalização exige técnico atribuído; nem o admin pula essa etapa.
		if os.TecnicoID == nil {
			return apperrors.ErrTecnicoNaoAtribuido
		}
		if !actor.IsAdmin() && !tecnicoDaOS(actor, os) {
			return apperrors.ErrAcessoNegado
		}

		anterior := os.Status
		os.Status = constants.StatusConcluido
		os.EstadoEquipamento = null.StringFrom(req.EstadoEquipamento)
		if !req.SemResponsavel {
			os.NomeClienteAssinatura = null.StringFrom(req.NomeClienteAssinatura)
			os.AssinaturaCliente = null.StringFrom(req.AssinaturaCliente)
			os.EmailClienteAssinatura = null.StringFromPtr(req.EmailClienteAssinatura)
		}
		aplicarEfeitosDeStatus(os)

		if err := s.osRepo.UpdateInTx(ctx, tx, os); err != nil {
			return err
		}
		if err := s.appendHistory(ctx, tx, os.ID, null.StringFrom(anterior), os.Status, actor, constants.ActionCheckout, nil); err != nil {
			return err
		}

		if pendentes, err := s.checklistRepo.CountPendentes(ctx, os.ID); err == nil && pendentes > 0 {
			s.logger.Warn("OS finalizada com itens de checklist sem avaliação",
				zap.String("os_id", os.ID.String()),
				zap.Int("pendentes", pendentes))
		}

		if req.EstadoEquipamento != constants.EstadoFuncionando {
			if err := s.criarDesdobramento(ctx, tx, actor, os, req.EstadoEquipamento); err != nil {
				return err
			}
		}

		updated = os
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("OS finalizada",
		zap.String("os_id", osID.String()),
		zap.String("estado_equipamento", req.EstadoEquipamento))
	return updated, nil
}

// criarDesdobramento abre a OS corretiva derivada do fechamento. Equipamento
// dependendo de corretiva gera prioridade media; equipamento parado gera
// urgente e a nova OS já nasce em parado.
func (s *osService) criarDesdobramento(ctx context.Context, tx pgx.Tx, actor *dto.Actor, origem *entities.OrdemServico, estado string) error {
	prioridade := constants.PrioridadeMedia
	status := constants.StatusNovo
	if estado == constants.EstadoParado {
		prioridade = constants.PrioridadeUrgente
		status = constants.StatusParado
	}

	agora := time.Now()
	numero, err := s.numerador.NextNumero(ctx, tx, origem.EmpresaID, agora.Year())
	if err != nil {
		return err
	}

	nova := &entities.OrdemServico{
		ID:                uuid.New(),
		EmpresaID:         origem.EmpresaID,
		ClienteID:         origem.ClienteID,
		EquipamentoID:     origem.EquipamentoID,
		Tipo:              constants.TipoCorretiva,
		Prioridade:        prioridade,
		Status:            status,
		NumeroOS:          numero,
		Origem:            constants.OrigemPainel,
		DataAbertura:      agora,
		EstadoEquipamento: null.StringFrom(estado),
		Observacoes:       null.StringFrom(fmt.Sprintf("Corretiva aberta no fechamento da %s", origem.NumeroOS)),
	}
	if err := s.osRepo.CreateInTx(ctx, tx, nova); err != nil {
		return err
	}
	return s.appendHistory(ctx, tx, nova.ID, null.String{}, nova.Status, actor, constants.ActionFollowUp, nil)
}
