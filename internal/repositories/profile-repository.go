package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"os-system/internal/entities"
	apperrors "os-system/pkg/errors"
)

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
	SetImpersonation(ctx context.Context, userID uuid.UUID, empresaID *uuid.UUID) error
}

type profileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	var p entities.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, role, empresa_id, impersonating_empresa_id, tecnico_id,
		       is_platform_admin, created_at
		FROM profiles
		WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.Role, &p.EmpresaID, &p.ImpersonatingEmpresaID,
		&p.TecnicoID, &p.IsPlatformAdmin, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPerfilNaoEncontrado
		}
		return nil, err
	}
	return &p, nil
}

// SetImpersonation troca (ou limpa, com nil) a empresa efetiva de um admin
// de plataforma.
func (r *profileRepository) SetImpersonation(ctx context.Context, userID uuid.UUID, empresaID *uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE profiles SET impersonating_empresa_id = $1
		WHERE user_id = $2 AND is_platform_admin = true`,
		empresaID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAcessoNegado
	}
	return nil
}
