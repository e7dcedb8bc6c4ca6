package services

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"os-system/internal/dto"
	"os-system/internal/entities"
	"os-system/internal/repositories"
	"os-system/pkg/constants"
	apperrors "os-system/pkg/errors"
)

type OSService interface {
	Create(ctx context.Context, actor *dto.Actor, req *dto.CreateOSDTO) (*entities.OrdemServico, error)
	Update(ctx context.Context, actor *dto.Actor, osID uuid.UUID, req *dto.UpdateOSDTO) (*entities.OrdemServico, error)
	FindByID(ctx context.Context, actor *dto.Actor, osID uuid.UUID) (*entities.OrdemServico, error)
	List(ctx context.Context, actor *dto.Actor, filter dto.ListOSFilter) ([]entities.OrdemServico, uint64, error)
	Delete(ctx context.Context, actor *dto.Actor, osID uuid.UUID) error

	Aceitar(ctx context.Context, actor *dto.Actor, osID uuid.UUID) (*entities.OrdemServico, error)
	Recusar(ctx context.Context, actor *dto.Actor, osID uuid.UUID, req *dto.RecusarOSDTO) (*entities.OrdemServico, error)
	IniciarDeslocamento(ctx context.Context, actor *dto.Actor, osID uuid.UUID) (*entities.OrdemServico, error)
	Checkin(ctx context.Context, actor *dto.Actor, osID uuid.UUID) (*entities.OrdemServico, error)
	Finalizar(ctx context.Context, actor *dto.Actor, osID uuid.UUID, req *dto.FinalizarOSDTO) (*entities.OrdemServico, error)

	History(ctx context.Context, actor *dto.Actor, osID uuid.UUID) ([]entities.OSStatusHistory, error)
	AddEvidencia(ctx context.Context, actor *dto.Actor, osID uuid.UUID, req *dto.CreateEvidenciaDTO) (*entities.Evidencia, error)
	ListEvidencias(ctx context.Context, actor *dto.Actor, osID uuid.UUID) ([]entities.Evidencia, error)
}

type osService struct {
	osRepo        repositories.OSRepository
	historyRepo   repositories.OSHistoryRepository
	checklistRepo repositories.ChecklistRepository
	evidenciaRepo repositories.EvidenciaRepository
	txManager     repositories.TxManager
	numerador     *NumeroOSGenerator
	logger        *zap.Logger
}

func NewOSService(
	osRepo repositories.OSRepository,
	historyRepo repositories.OSHistoryRepository,
	checklistRepo repositories.ChecklistRepository,
	evidenciaRepo repositories.EvidenciaRepository,
	txManager repositories.TxManager,
	numerador *NumeroOSGenerator,
	logger *zap.Logger,
) OSService {
	return &osService{
		osRepo:        osRepo,
		historyRepo:   historyRepo,
		checklistRepo: checklistRepo,
		evidenciaRepo: evidenciaRepo,
		txManager:     txManager,
		numerador:     numerador,
		logger:        logger,
	}
}

// escopoDaEmpresa compara a empresa da OS com a efetiva do ator. OS de outra
// empresa existe mas não é acessível: responde 403, não 404.
func escopoDaEmpresa(actor *dto.Actor, os *entities.OrdemServico) error {
	if os.EmpresaID != actor.EmpresaID {
		return apperrors.ErrAcessoNegado
	}
	return nil
}

func (s *osService) buscarOS(ctx context.Context, actor *dto.Actor, osID uuid.UUID) (*entities.OrdemServico, error) {
	os, err := s.osRepo.FindByID(ctx, osID)
	if err != nil {
		return nil, err
	}
	if err := escopoDaEmpresa(actor, os); err != nil {
		return nil, err
	}
	return os, nil
}

func (s *osService) buscarOSForUpdate(ctx context.Context, tx pgx.Tx, actor *dto.Actor, osID uuid.UUID) (*entities.OrdemServico, error) {
	os, err := s.osRepo.FindByIDForUpdate(ctx, tx, osID)
	if err != nil {
		return nil, err
	}
	if err := escopoDaEmpresa(actor, os); err != nil {
		return nil, err
	}
	return os, nil
}

func (s *osService) appendHistory(ctx context.Context, tx pgx.Tx, osID uuid.UUID, anterior null.String, novo string, actor *dto.Actor, action string, reason *string) error {
	return s.historyRepo.CreateInTx(ctx, tx, &entities.OSStatusHistory{
		ID:             uuid.New(),
		OSID:           osID,
		StatusAnterior: anterior,
		StatusNovo:     novo,
		ChangedBy:      &actor.UserID,
		ActionType:     null.StringFrom(action),
		Reason:         null.StringFromPtr(reason),
	})
}

// Create abre uma OS. Só admins criam; o numero_os é gerado dentro da
// transação e nunca vem do cliente.
func (s *osService) Create(ctx context.Context, actor *dto.Actor, req *dto.CreateOSDTO) (*entities.OrdemServico, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrAcessoNegado
	}

	status := req.Status
	if status == "" {
		status = constants.StatusNovo
	}
	if status != constants.StatusNovo && status != constants.StatusAgendado {
		return nil, apperrors.NewValidationError("OS só pode ser criada como novo ou agendado")
	}

	prioridade := req.Prioridade
	if prioridade == "" {
		prioridade = constants.PrioridadeMedia
	}
	origem := req.Origem
	if origem == "" {
		origem = constants.OrigemPainel
	}

	if status == constants.StatusAgendado && req.DataProgramada == nil {
		return nil, apperrors.NewValidationError("status agendado requer data_programada")
	}

	dataAbertura := time.Now()
	if req.DataAbertura != nil {
		dataAbertura = *req.DataAbertura
	}

	os := &entities.OrdemServico{
		ID:             uuid.New(),
		EmpresaID:      actor.EmpresaID,
		ClienteID:      req.ClienteID,
		EquipamentoID:  req.EquipamentoID,
		TecnicoID:      req.TecnicoID,
		Tipo:           req.Tipo,
		Prioridade:     prioridade,
		Status:         status,
		Origem:         origem,
		DataAbertura:   dataAbertura,
		DataProgramada: null.TimeFromPtr(req.DataProgramada),
		DataInicio:     null.TimeFromPtr(req.DataInicio),
		DataFim:        null.TimeFromPtr(req.DataFim),
		Observacoes:    null.StringFromPtr(req.Observacoes),
		QuemSolicitou:  null.StringFromPtr(req.QuemSolicitou),
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if os.TecnicoID != nil {
			ocupado, err := s.osRepo.TecnicoEmAtendimentoInTx(ctx, tx, actor.EmpresaID, *os.TecnicoID, nil)
			if err != nil {
				return err
			}
			if ocupado {
				if !req.CriarSemTecnico {
					return apperrors.ErrTecnicoOcupado
				}
				os.TecnicoID = nil
			}
		}

		numero, err := s.numerador.NextNumero(ctx, tx, actor.EmpresaID, dataAbertura.Year())
		if err != nil {
			return err
		}
		os.NumeroOS = numero

		if err := s.osRepo.CreateInTx(ctx, tx, os); err != nil {
			return err
		}
		if len(req.ChecklistItens) > 0 {
			if err := s.checklistRepo.SeedInTx(ctx, tx, os.ID, req.ChecklistItens); err != nil {
				return err
			}
		}
		return s.appendHistory(ctx, tx, os.ID, null.String{}, os.Status, actor, constants.ActionCreate, nil)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("OS criada",
		zap.String("os_id", os.ID.String()),
		zap.String("numero_os", os.NumeroOS),
		zap.String("empresa_id", os.EmpresaID.String()))
	return os, nil
}

// Update é a edição geral de admin/supervisor. empresa_id e numero_os nunca
// mudam; OS em status terminal só aceita reabertura.
func (s *osService) Update(ctx context.Context, actor *dto.Actor, osID uuid.UUID, req *dto.UpdateOSDTO) (*entities.OrdemServico, error) {
	if !actor.PodeGerirOS() {
		return nil, apperrors.ErrAcessoNegado
	}

	var updated *entities.OrdemServico
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		os, err := s.buscarOSForUpdate(ctx, tx, actor, osID)
		if err != nil {
			return err
		}

		if constants.IsFinalStatus(os.Status) {
			if req.Status == nil || *req.Status != constants.StatusReaberta {
				return apperrors.ErrOSImutavel
			}
			anterior := os.Status
			os.Status = constants.StatusReaberta
			if err := s.osRepo.UpdateInTx(ctx, tx, os); err != nil {
				return err
			}
			if err := s.appendHistory(ctx, tx, os.ID, null.StringFrom(anterior), os.Status, actor, constants.ActionStatusChange, req.Reason); err != nil {
				return err
			}
			updated = os
			return nil
		}

		tecnicoAnterior := os.TecnicoID

		if req.ClienteID != nil {
			os.ClienteID = *req.ClienteID
		}
		if req.EquipamentoID != nil {
			os.EquipamentoID = req.EquipamentoID
		}
		if req.RemoverTecnico {
			os.TecnicoID = nil
		} else if req.TecnicoID != nil {
			os.TecnicoID = req.TecnicoID
		}
		if req.Tipo != nil {
			os.Tipo = *req.Tipo
		}
		if req.Prioridade != nil {
			os.Prioridade = *req.Prioridade
		}
		if req.DataProgramada != nil {
			os.DataProgramada = null.TimeFromPtr(req.DataProgramada)
		}
		if req.DataInicio != nil {
			os.DataInicio = null.TimeFromPtr(req.DataInicio)
		}
		if req.DataFim != nil {
			os.DataFim = null.TimeFromPtr(req.DataFim)
		}
		if req.Observacoes != nil {
			os.Observacoes = null.StringFromPtr(req.Observacoes)
		}
		if req.QuemSolicitou != nil {
			os.QuemSolicitou = null.StringFromPtr(req.QuemSolicitou)
		}

		anterior := os.Status
		statusMudou := false
		if req.Status != nil && *req.Status != os.Status {
			if !transicaoPermitida(os.Status, *req.Status) {
				return apperrors.NewValidationError("transição de %s para %s não é permitida", os.Status, *req.Status)
			}
			os.Status = *req.Status
			statusMudou = true
		}

		if os.Status == constants.StatusAgendado && !os.DataProgramada.Valid {
			return apperrors.NewValidationError("status agendado requer data_programada")
		}

		// A regra de ocupação vale para qualquer troca de atribuição, não só
		// quando a OS entra em atendimento.
		tecnicoMudou := os.TecnicoID != nil &&
			(tecnicoAnterior == nil || *tecnicoAnterior != *os.TecnicoID)
		if os.TecnicoID != nil && (tecnicoMudou || constants.IsEmAtendimento(os.Status)) {
			ocupado, err := s.osRepo.TecnicoEmAtendimentoInTx(ctx, tx, actor.EmpresaID, *os.TecnicoID, &os.ID)
			if err != nil {
				return err
			}
			if ocupado {
				if !req.CriarSemTecnico {
					return apperrors.ErrTecnicoOcupado
				}
				os.TecnicoID = nil
			}
		}

		// Deslocamento e checkin exigem técnico atribuído também na edição
		// direta, como nas operações estreitas.
		if constants.IsEmAtendimento(os.Status) && os.TecnicoID == nil {
			return apperrors.ErrTecnicoNaoAtribuido
		}

		aplicarEfeitosDeStatus(os)

		if err := s.osRepo.UpdateInTx(ctx, tx, os); err != nil {
			return err
		}
		if statusMudou {
			if err := s.appendHistory(ctx, tx, os.ID, null.StringFrom(anterior), os.Status, actor, constants.ActionStatusChange, req.Reason); err != nil {
				return err
			}
		}
		updated = os
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *osService) FindByID(ctx context.Context, actor *dto.Actor, osID uuid.UUID) (*entities.OrdemServico, error) {
	return s.buscarOS(ctx, actor, osID)
}

// List sempre filtra pela empresa efetiva do ator; técnicos só enxergam as
// próprias OS.
func (s *osService) List(ctx context.Context, actor *dto.Actor, filter dto.ListOSFilter) ([]entities.OrdemServico, uint64, error) {
	if actor.IsTecnico() {
		if actor.TecnicoID == nil {
			return []entities.OrdemServico{}, 0, nil
		}
		filter.TecnicoID = actor.TecnicoID
	}
	return s.osRepo.List(ctx, actor.EmpresaID, filter)
}

func (s *osService) Delete(ctx context.Context, actor *dto.Actor, osID uuid.UUID) error {
	if !actor.IsAdmin() {
		return apperrors.ErrAcessoNegado
	}
	if _, err := s.buscarOS(ctx, actor, osID); err != nil {
		return err
	}
	return s.osRepo.Delete(ctx, osID)
}

func (s *osService) History(ctx context.Context, actor *dto.Actor, osID uuid.UUID) ([]entities.OSStatusHistory, error) {
	if _, err := s.buscarOS(ctx, actor, osID); err != nil {
		return nil, err
	}
	return s.historyRepo.FindByOSID(ctx, actor.EmpresaID, osID)
}

// Evidências podem ser anexadas mesmo depois do fechamento; a OS terminal
// congela os próprios campos, não os anexos.
func (s *osService) AddEvidencia(ctx context.Context, actor *dto.Actor, osID uuid.UUID, req *dto.CreateEvidenciaDTO) (*entities.Evidencia, error) {
	os, err := s.buscarOS(ctx, actor, osID)
	if err != nil {
		return nil, err
	}
	if actor.IsTecnico() && !tecnicoDaOS(actor, os) {
		return nil, apperrors.ErrAcessoNegado
	}

	e := &entities.Evidencia{
		ID:         uuid.New(),
		OSID:       osID,
		Tipo:       req.Tipo,
		Referencia: null.StringFromPtr(req.Referencia),
		Texto:      null.StringFromPtr(req.Texto),
	}
	if err := s.evidenciaRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *osService) ListEvidencias(ctx context.Context, actor *dto.Actor, osID uuid.UUID) ([]entities.Evidencia, error) {
	if _, err := s.buscarOS(ctx, actor, osID); err != nil {
		return nil, err
	}
	return s.evidenciaRepo.FindByOSID(ctx, actor.EmpresaID, osID)
}

func tecnicoDaOS(actor *dto.Actor, os *entities.OrdemServico) bool {
	return actor.TecnicoID != nil && os.TecnicoID != nil && *actor.TecnicoID == *os.TecnicoID
}
