package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// OrdemServico é a linha de ordens_servico. empresa_id é imutável após a
// criação e sempre igual à empresa efetiva de quem criou.
type OrdemServico struct {
	ID                     uuid.UUID   `json:"id" db:"id"`
	EmpresaID              uuid.UUID   `json:"empresa_id" db:"empresa_id"`
	ClienteID              uuid.UUID   `json:"cliente_id" db:"cliente_id"`
	EquipamentoID          *uuid.UUID  `json:"equipamento_id" db:"equipamento_id"`
	TecnicoID              *uuid.UUID  `json:"tecnico_id" db:"tecnico_id"`
	Tipo                   string      `json:"tipo" db:"tipo"`
	Prioridade             string      `json:"prioridade" db:"prioridade"`
	Status                 string      `json:"status" db:"status"`
	NumeroOS               string      `json:"numero_os" db:"numero_os"`
	DataAbertura           time.Time   `json:"data_abertura" db:"data_abertura"`
	DataProgramada         null.Time   `json:"data_programada" db:"data_programada"`
	DataInicio             null.Time   `json:"data_inicio" db:"data_inicio"`
	DataFim                null.Time   `json:"data_fim" db:"data_fim"`
	Observacoes            null.String `json:"observacoes" db:"observacoes"`
	QuemSolicitou          null.String `json:"quem_solicitou" db:"quem_solicitou"`
	Origem                 string      `json:"origem" db:"origem"`
	EstadoEquipamento      null.String `json:"estado_equipamento" db:"estado_equipamento"`
	NomeClienteAssinatura  null.String `json:"nome_cliente_assinatura" db:"nome_cliente_assinatura"`
	AssinaturaCliente      null.String `json:"assinatura_cliente" db:"assinatura_cliente"`
	EmailClienteAssinatura null.String `json:"email_cliente_assinatura" db:"email_cliente_assinatura"`
	CreatedAt              time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time   `json:"updated_at" db:"updated_at"`
}
