package utils

import (
	"context"

	"github.com/google/uuid"

	"os-system/pkg/contextkeys"
	apperrors "os-system/pkg/errors"
)

// CtxWithUserID grava o user id autenticado no contexto da requisição.
func CtxWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, contextkeys.UserIDKey, userID)
}

// GetUserIDFromCtx devolve o user id gravado pelo middleware de autenticação.
func GetUserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, apperrors.ErrUserIDNaoEncontrado
	}
	return userID, nil
}
