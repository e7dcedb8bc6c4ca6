package entities

import (
	"time"

	"github.com/google/uuid"
)

// Profile liga o usuário do provedor de identidade ao papel e à empresa.
// ImpersonatingEmpresaID só é honrado quando IsPlatformAdmin é verdadeiro.
type Profile struct {
	UserID                 uuid.UUID  `json:"user_id" db:"user_id"`
	Role                   string     `json:"role" db:"role"`
	EmpresaID              uuid.UUID  `json:"empresa_id" db:"empresa_id"`
	ImpersonatingEmpresaID *uuid.UUID `json:"impersonating_empresa_id" db:"impersonating_empresa_id"`
	TecnicoID              *uuid.UUID `json:"tecnico_id" db:"tecnico_id"`
	IsPlatformAdmin        bool       `json:"is_platform_admin" db:"is_platform_admin"`
	CreatedAt              time.Time  `json:"created_at" db:"created_at"`
}
