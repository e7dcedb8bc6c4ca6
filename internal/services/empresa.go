package services

import (
	"context"

	"github.com/google/uuid"

	"os-system/internal/dto"
	"os-system/internal/entities"
	"os-system/internal/repositories"
)

// EmpresaService é leitura apenas: a própria empresa para qualquer usuário e
// a lista completa para o fluxo de impersonação (a checagem de admin de
// plataforma fica no IdentityService.Impersonate).
type EmpresaService interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Empresa, error)
	Atual(ctx context.Context, actor *dto.Actor) (*entities.Empresa, error)
	List(ctx context.Context) ([]entities.Empresa, error)
}

type empresaService struct {
	repo repositories.EmpresaRepository
}

func NewEmpresaService(repo repositories.EmpresaRepository) EmpresaService {
	return &empresaService{repo: repo}
}

func (s *empresaService) FindByID(ctx context.Context, id uuid.UUID) (*entities.Empresa, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *empresaService) Atual(ctx context.Context, actor *dto.Actor) (*entities.Empresa, error) {
	return s.repo.FindByID(ctx, actor.EmpresaID)
}

func (s *empresaService) List(ctx context.Context) ([]entities.Empresa, error) {
	return s.repo.List(ctx)
}
