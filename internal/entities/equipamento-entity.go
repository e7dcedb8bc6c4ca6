package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type Equipamento struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	EmpresaID   uuid.UUID   `json:"empresa_id" db:"empresa_id"`
	ClienteID   uuid.UUID   `json:"cliente_id" db:"cliente_id"`
	Nome        string      `json:"nome" db:"nome"`
	Fabricante  null.String `json:"fabricante" db:"fabricante"`
	Modelo      null.String `json:"modelo" db:"modelo"`
	NumeroSerie null.String `json:"numero_serie" db:"numero_serie"`
	Localizacao null.String `json:"localizacao" db:"localizacao"`
	Ativo       bool        `json:"ativo" db:"ativo"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}
