package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// Colaborador é o técnico de campo da empresa.
type Colaborador struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	EmpresaID uuid.UUID   `json:"empresa_id" db:"empresa_id"`
	Nome      string      `json:"nome" db:"nome"`
	Funcao    null.String `json:"funcao" db:"funcao"`
	Telefone  null.String `json:"telefone" db:"telefone"`
	Email     null.String `json:"email" db:"email"`
	Ativo     bool        `json:"ativo" db:"ativo"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}
