package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// ChecklistItem é um item de inspeção da OS. Semeado na criação da ordem;
// depois disso só o status de conformidade muda.
type ChecklistItem struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	OSID      uuid.UUID   `json:"os_id" db:"os_id"`
	Descricao string      `json:"descricao" db:"descricao"`
	Ordem     int         `json:"ordem" db:"ordem"`
	Status    null.String `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}
