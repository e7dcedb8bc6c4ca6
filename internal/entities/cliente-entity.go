package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type Cliente struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	EmpresaID uuid.UUID   `json:"empresa_id" db:"empresa_id"`
	Nome      string      `json:"nome" db:"nome"`
	Documento null.String `json:"documento" db:"documento"`
	Endereco  null.String `json:"endereco" db:"endereco"`
	Telefone  null.String `json:"telefone" db:"telefone"`
	Email     null.String `json:"email" db:"email"`
	Ativo     bool        `json:"ativo" db:"ativo"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}
