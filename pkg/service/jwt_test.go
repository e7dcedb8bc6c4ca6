package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "os-system/pkg/errors"
)

func TestJWTService_GeraEValida(t *testing.T) {
	svc := NewJWTService("segredo-de-teste")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, time.Hour)
	require.NoError(t, err)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWTService_TokenExpirado(t *testing.T) {
	svc := NewJWTService("segredo-de-teste")

	token, err := svc.GenerateToken(uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ChaveErrada(t *testing.T) {
	emissor := NewJWTService("chave-a")
	validador := NewJWTService("chave-b")

	token, err := emissor.GenerateToken(uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = validador.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalido)
}

func TestJWTService_TokenAdulterado(t *testing.T) {
	svc := NewJWTService("segredo-de-teste")

	_, err := svc.ValidateToken("cabecalho.corpo.assinatura")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalido)
}
