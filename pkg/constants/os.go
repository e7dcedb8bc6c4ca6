package constants

// Vocabulários fechados da ordem de serviço. Os valores são gravados como
// texto no banco e validados também por CHECK constraint.

const (
	StatusNovo                 = "novo"
	StatusAgendado             = "agendado"
	StatusEmDeslocamento       = "em_deslocamento"
	StatusCheckin              = "checkin"
	StatusEmAndamento          = "em_andamento"
	StatusAguardandoAssinatura = "aguardando_assinatura"
	StatusConcluido            = "concluido"
	StatusCancelado            = "cancelado"
	StatusParado               = "parado"
	StatusReaberta             = "reaberta"
)

const (
	TipoChamado    = "chamado"
	TipoPreventiva = "preventiva"
	TipoCorretiva  = "corretiva"
	TipoInstalacao = "instalacao"
)

const (
	PrioridadeBaixa   = "baixa"
	PrioridadeMedia   = "media"
	PrioridadeAlta    = "alta"
	PrioridadeUrgente = "urgente"
)

const (
	OrigemPainel   = "painel"
	OrigemWhatsapp = "whatsapp"
	OrigemTelefone = "telefone"
	OrigemEmail    = "email"
)

const (
	EstadoFuncionando         = "funcionando"
	EstadoDependendoCorretiva = "dependendo_de_corretiva"
	EstadoParado              = "parado"
)

const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleTecnico    = "tecnico"
)

const (
	ChecklistConforme    = "conforme"
	ChecklistNaoConforme = "nao_conforme"
	ChecklistNA          = "na"
)

// action_type do histórico
const (
	ActionCreate       = "create"
	ActionAccept       = "accept"
	ActionDecline      = "decline"
	ActionStartTravel  = "start_travel"
	ActionCheckIn      = "check_in"
	ActionCheckout     = "checkout"
	ActionStatusChange = "status_change"
	ActionFollowUp     = "follow_up"
)

var ValidStatuses = []string{
	StatusNovo, StatusAgendado, StatusEmDeslocamento, StatusCheckin,
	StatusEmAndamento, StatusAguardandoAssinatura, StatusConcluido,
	StatusCancelado, StatusParado, StatusReaberta,
}

// Status terminais: a OS congela, restando apenas reabertura explícita.
var FinalStatuses = []string{StatusConcluido, StatusCancelado}

// Status que contam como "em atendimento" para a regra de ocupação do
// técnico.
var EmAtendimentoStatuses = []string{StatusEmDeslocamento, StatusCheckin}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidStatus(s string) bool { return contains(ValidStatuses, s) }

func IsFinalStatus(s string) bool { return contains(FinalStatuses, s) }

func IsEmAtendimento(s string) bool { return contains(EmAtendimentoStatuses, s) }

func IsValidChecklistStatus(s string) bool {
	return s == ChecklistConforme || s == ChecklistNaoConforme || s == ChecklistNA
}
