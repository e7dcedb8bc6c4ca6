package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type Empresa struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Nome      string      `json:"nome" db:"nome"`
	Documento null.String `json:"documento" db:"documento"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}
