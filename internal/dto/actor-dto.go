package dto

import (
	"github.com/google/uuid"

	"os-system/pkg/constants"
)

// Actor é a identidade resolvida que circula por todas as regras de negócio.
// EmpresaID já é a empresa efetiva (impersonation aplicada); nenhum serviço
// volta a olhar token ou contexto de requisição.
type Actor struct {
	UserID    uuid.UUID  `json:"user_id"`
	Role      string     `json:"role"`
	EmpresaID uuid.UUID  `json:"empresa_id"`
	TecnicoID *uuid.UUID `json:"tecnico_id"`
}

func (a *Actor) IsAdmin() bool { return a.Role == constants.RoleAdmin }

func (a *Actor) IsSupervisor() bool { return a.Role == constants.RoleSupervisor }

func (a *Actor) IsTecnico() bool { return a.Role == constants.RoleTecnico }

// PodeGerirOS indica quem pode editar status diretamente e cancelar.
func (a *Actor) PodeGerirOS() bool { return a.IsAdmin() || a.IsSupervisor() }
