package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// OSStatusHistory é o livro-razão de transições. Nunca editado nem apagado.
type OSStatusHistory struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	OSID           uuid.UUID   `json:"os_id" db:"os_id"`
	StatusAnterior null.String `json:"status_anterior" db:"status_anterior"`
	StatusNovo     string      `json:"status_novo" db:"status_novo"`
	ChangedBy      *uuid.UUID  `json:"changed_by" db:"changed_by"`
	ChangedAt      time.Time   `json:"changed_at" db:"changed_at"`
	ActionType     null.String `json:"action_type" db:"action_type"`
	Reason         null.String `json:"reason" db:"reason"`
}
