package services

import (
	"context"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"os-system/internal/dto"
	"os-system/internal/entities"
	"os-system/internal/repositories"
	apperrors "os-system/pkg/errors"
)

// LaudoService mantém o laudo técnico da OS: no máximo um por ordem, com
// semântica de upsert.
type LaudoService interface {
	Find(ctx context.Context, actor *dto.Actor, osID uuid.UUID) (*entities.Laudo, error)
	Upsert(ctx context.Context, actor *dto.Actor, osID uuid.UUID, req *dto.UpsertLaudoDTO) (*entities.Laudo, error)
}

type laudoService struct {
	laudoRepo repositories.LaudoRepository
	osRepo    repositories.OSRepository
}

func NewLaudoService(laudoRepo repositories.LaudoRepository, osRepo repositories.OSRepository) LaudoService {
	return &laudoService{laudoRepo: laudoRepo, osRepo: osRepo}
}

func (s *laudoService) Find(ctx context.Context, actor *dto.Actor, osID uuid.UUID) (*entities.Laudo, error) {
	os, err := s.osRepo.FindByID(ctx, osID)
	if err != nil {
		return nil, err
	}
	if err := escopoDaEmpresa(actor, os); err != nil {
		return nil, err
	}
	return s.laudoRepo.FindByOSID(ctx, actor.EmpresaID, osID)
}

func (s *laudoService) Upsert(ctx context.Context, actor *dto.Actor, osID uuid.UUID, req *dto.UpsertLaudoDTO) (*entities.Laudo, error) {
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

	l := &entities.Laudo{
		ID:           uuid.New(),
		OSID:         osID,
		EmpresaID:    actor.EmpresaID,
		OQueFoiFeito: null.StringFromPtr(req.OQueFoiFeito),
		Observacao:   null.StringFromPtr(req.Observacao),
	}
	if err := s.laudoRepo.Upsert(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}
