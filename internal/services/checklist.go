package services

import (
	"context"

	"github.com/google/uuid"

	"os-system/internal/dto"
	"os-system/internal/entities"
	"os-system/internal/repositories"
	apperrors "os-system/pkg/errors"
)

// ChecklistService expõe os itens semeados na criação da OS. Só a conformidade
// muda depois; descrição e ordem são imutáveis.
type ChecklistService interface {
	List(ctx context.Context, actor *dto.Actor, osID uuid.UUID) ([]entities.ChecklistItem, error)
	UpdateStatus(ctx context.Context, actor *dto.Actor, osID, itemID uuid.UUID, req *dto.UpdateChecklistItemDTO) (*entities.ChecklistItem, error)
}

type checklistService struct {
	checklistRepo repositories.ChecklistRepository
	osRepo        repositories.OSRepository
}

func NewChecklistService(checklistRepo repositories.ChecklistRepository, osRepo repositories.OSRepository) ChecklistService {
	return &checklistService{checklistRepo: checklistRepo, osRepo: osRepo}
}

func (s *checklistService) List(ctx context.Context, actor *dto.Actor, osID uuid.UUID) ([]entities.ChecklistItem, error) {
	os, err := s.osRepo.FindByID(ctx, osID)
	if err != nil {
		return nil, err
	}
	if err := escopoDaEmpresa(actor, os); err != nil {
		return nil, err
	}
	return s.checklistRepo.FindByOSID(ctx, actor.EmpresaID, osID)
}

func (s *checklistService) UpdateStatus(ctx context.Context, actor *dto.Actor, osID, itemID uuid.UUID, req *dto.UpdateChecklistItemDTO) (*entities.ChecklistItem, error) {
	os, err := s.osRepo.FindByID(ctx, osID)
	if err != nil {
		return nil, err
	}
	if err := escopoDaEmpresa(actor, os); err != nil {
		return nil, err
	}
	if actor.IsTecnico() && !tecnicoDaOS(actor, os) {
		return nil, apperrors.ErrAcessoNegado
	}
	return s.checklistRepo.UpdateStatus(ctx, actor.EmpresaID, osID, itemID, req.Status)
}
