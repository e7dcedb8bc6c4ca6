package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"os-system/internal/dto"
	"os-system/internal/repositories"
	apperrors "os-system/pkg/errors"
	"os-system/pkg/utils"
)

// IdentityService resolve o usuário autenticado em um Actor com empresa
// efetiva já calculada. Todo serviço de negócio recebe o Actor pronto.
type IdentityService interface {
	Resolve(ctx context.Context) (*dto.Actor, error)
	Impersonate(ctx context.Context, empresaID *uuid.UUID) error
}

type identityService struct {
	profileRepo repositories.ProfileRepository
	cache       repositories.ProfileCache
	logger      *zap.Logger
}

func NewIdentityService(profileRepo repositories.ProfileRepository, cache repositories.ProfileCache, logger *zap.Logger) IdentityService {
	return &identityService{profileRepo: profileRepo, cache: cache, logger: logger}
}

func (s *identityService) Resolve(ctx context.Context) (*dto.Actor, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	profile, ok := s.cache.Get(ctx, userID)
	if !ok {
		profile, err = s.profileRepo.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, profile)
	}

	// impersonating_empresa_id só vale para admins de plataforma; para os
	// demais o campo é ignorado mesmo que esteja preenchido.
	empresaID := profile.EmpresaID
	if profile.IsPlatformAdmin && profile.ImpersonatingEmpresaID != nil {
		empresaID = *profile.ImpersonatingEmpresaID
	}

	return &dto.Actor{
		UserID:    profile.UserID,
		Role:      profile.Role,
		EmpresaID: empresaID,
		TecnicoID: profile.TecnicoID,
	}, nil
}

// Impersonate troca a empresa efetiva do admin de plataforma (nil volta para
// a própria). O cache é invalidado para a troca valer na próxima requisição.
func (s *identityService) Impersonate(ctx context.Context, empresaID *uuid.UUID) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !profile.IsPlatformAdmin {
		return apperrors.ErrAcessoNegado
	}

	if err := s.profileRepo.SetImpersonation(ctx, userID, empresaID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, userID)

	s.logger.Info("impersonação de empresa alterada",
		zap.String("user_id", userID.String()),
		zap.Any("empresa_id", empresaID))
	return nil
}
