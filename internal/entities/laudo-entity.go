package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// Laudo é o relatório técnico da OS. No máximo um por ordem (upsert).
type Laudo struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	OSID          uuid.UUID   `json:"os_id" db:"os_id"`
	EmpresaID     uuid.UUID   `json:"empresa_id" db:"empresa_id"`
	OQueFoiFeito  null.String `json:"o_que_foi_feito" db:"o_que_foi_feito"`
	Observacao    null.String `json:"observacao" db:"observacao"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}
