package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// Evidencia guarda apenas a referência (URL/identificador do storage externo)
// ou o texto da nota; o binário em si fica fora do sistema.
type Evidencia struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	OSID       uuid.UUID   `json:"os_id" db:"os_id"`
	Tipo       string      `json:"tipo" db:"tipo"`
	Referencia null.String `json:"referencia" db:"referencia"`
	Texto      null.String `json:"texto" db:"texto"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}
