package service

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "os-system/pkg/errors"
)

// JwtClaims são as claims emitidas pelo provedor de identidade externo.
// O backend só valida e extrai o user id (sub); nunca emite tokens em produção.
type JwtClaims struct {
	jwt.RegisteredClaims
}

type JWTService interface {
	ValidateToken(tokenString string) (uuid.UUID, error)
	GenerateToken(userID uuid.UUID, ttl time.Duration) (string, error)
}

type jwtService struct {
	secretKey string
}

func NewJWTService(secretKey string) JWTService {
	return &jwtService{secretKey: secretKey}
}

// ValidateToken confere a assinatura e a validade temporal e devolve o
// user id contido em sub.
func (s *jwtService) ValidateToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(s.secretKey), nil
		default:
			return nil, apperrors.ErrMetodoAssinaturaInvalido
		}
	})
	if err != nil {
		return uuid.Nil, apperrors.ErrTokenInvalido
	}

	claims, ok := token.Claims.(*JwtClaims)
	if !ok || !token.Valid {
		return uuid.Nil, apperrors.ErrTokenInvalido
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return uuid.Nil, apperrors.ErrTokenExpirado
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperrors.ErrTokenInvalido
	}

	return userID, nil
}

// GenerateToken existe para testes e ambientes locais sem o provedor externo.
func (s *jwtService) GenerateToken(userID uuid.UUID, ttl time.Duration) (string, error) {
	claims := &JwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(s.secretKey))
}
