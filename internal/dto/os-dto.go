package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateOSDTO struct {
	ClienteID      uuid.UUID  `json:"cliente_id" validate:"required"`
	EquipamentoID  *uuid.UUID `json:"equipamento_id"`
	TecnicoID      *uuid.UUID `json:"tecnico_id"`
	Tipo           string     `json:"tipo" validate:"required,oneof=chamado preventiva corretiva instalacao"`
	Prioridade     string     `json:"prioridade" validate:"omitempty,oneof=baixa media alta urgente"`
	Status         string     `json:"status" validate:"omitempty,oneof=novo agendado em_deslocamento checkin em_andamento aguardando_assinatura concluido cancelado parado reaberta"`
	DataAbertura   *time.Time `json:"data_abertura"`
	DataProgramada *time.Time `json:"data_programada"`
	DataInicio     *time.Time `json:"data_inicio"`
	DataFim        *time.Time `json:"data_fim"`
	Observacoes    *string    `json:"observacoes"`
	QuemSolicitou  *string    `json:"quem_solicitou"`
	Origem         string     `json:"origem" validate:"omitempty,oneof=painel whatsapp telefone email"`

	// NumeroOS enviado pelo cliente é descartado; o servidor sempre gera.
	NumeroOS string `json:"numero_os"`

	// Itens de checklist semeados junto com a OS (template já resolvido
	// pelo chamador).
	ChecklistItens []string `json:"checklist_itens"`

	// Se o técnico indicado estiver ocupado, cria a OS sem técnico em vez
	// de rejeitar.
	CriarSemTecnico bool `json:"criar_sem_tecnico"`
}

// UpdateOSDTO é o conjunto fechado de campos editáveis pela atualização
// geral (admin/supervisor). empresa_id e numero_os nunca mudam.
type UpdateOSDTO struct {
	ClienteID      *uuid.UUID `json:"cliente_id"`
	EquipamentoID  *uuid.UUID `json:"equipamento_id"`
	TecnicoID      *uuid.UUID `json:"tecnico_id"`
	RemoverTecnico bool       `json:"remover_tecnico"`
	Tipo           *string    `json:"tipo" validate:"omitempty,oneof=chamado preventiva corretiva instalacao"`
	Prioridade     *string    `json:"prioridade" validate:"omitempty,oneof=baixa media alta urgente"`
	Status         *string    `json:"status" validate:"omitempty,oneof=novo agendado em_deslocamento checkin em_andamento aguardando_assinatura concluido cancelado parado reaberta"`
	DataProgramada *time.Time `json:"data_programada"`
	DataInicio     *time.Time `json:"data_inicio"`
	DataFim        *time.Time `json:"data_fim"`
	Observacoes    *string    `json:"observacoes"`
	QuemSolicitou  *string    `json:"quem_solicitou"`
	Reason         *string    `json:"reason"`

	// Mesma válvula de escape da criação para o conflito de ocupação.
	CriarSemTecnico bool `json:"criar_sem_tecnico"`
}

type ListOSFilter struct {
	TecnicoID  *uuid.UUID
	Status     string
	Prioridade string
	Search     string
	OrderBy    string
	Page       int
	PageSize   int
}

type FinalizarOSDTO struct {
	NomeClienteAssinatura  string  `json:"nome_cliente_assinatura"`
	AssinaturaCliente      string  `json:"assinatura_cliente"`
	EmailClienteAssinatura *string `json:"email_cliente_assinatura"`
	EstadoEquipamento      string  `json:"estado_equipamento" validate:"required,oneof=funcionando dependendo_de_corretiva parado"`

	// Checkout sem responsável presente no local: dispensa assinatura.
	SemResponsavel bool `json:"sem_responsavel"`
}

type RecusarOSDTO struct {
	Reason *string `json:"reason"`
}

type CheckinOSDTO struct {
	Location *string `json:"location"`
}
