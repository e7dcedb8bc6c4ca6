package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"os-system/internal/repositories"
)

var numeroOSPattern = regexp.MustCompile(`^OS-(\d{4})-(\d{4})$`)

// ProximoNumero calcula o próximo numero_os do ano a partir do último
// emitido. Último vazio ou fora do formato reinicia a sequência em 0001; o
// chamador loga esse caso.
func ProximoNumero(ultimo string, ano int) (numero string, reiniciou bool) {
	if ultimo == "" {
		return fmt.Sprintf("OS-0001-%d", ano), false
	}
	m := numeroOSPattern.FindStringSubmatch(ultimo)
	if m == nil {
		return fmt.Sprintf("OS-0001-%d", ano), true
	}
	seq, err := strconv.Atoi(m[1])
	if err != nil {
		return fmt.Sprintf("OS-0001-%d", ano), true
	}
	return fmt.Sprintf("OS-%04d-%d", seq+1, ano), false
}

// NumeroOSGenerator emite números de OS dentro da transação de criação. O
// advisory lock por (empresa, ano) serializa emissões concorrentes, então
// dois commits nunca saem com a mesma sequência.
type NumeroOSGenerator struct {
	osRepo repositories.OSRepository
	logger *zap.Logger
}

func NewNumeroOSGenerator(osRepo repositories.OSRepository, logger *zap.Logger) *NumeroOSGenerator {
	return &NumeroOSGenerator{osRepo: osRepo, logger: logger}
}

func (g *NumeroOSGenerator) NextNumero(ctx context.Context, tx pgx.Tx, empresaID uuid.UUID, ano int) (string, error) {
	if err := g.osRepo.TravarNumeracao(ctx, tx, empresaID, ano); err != nil {
		return "", fmt.Errorf("travar numeração: %w", err)
	}

	ultimo, err := g.osRepo.UltimoNumeroDoAno(ctx, tx, empresaID, ano)
	if err != nil {
		return "", fmt.Errorf("consultar último número: %w", err)
	}

	numero, reiniciou := ProximoNumero(ultimo, ano)
	if reiniciou {
		g.logger.Warn("numero_os fora do formato esperado, sequência reiniciada",
			zap.String("empresa_id", empresaID.String()),
			zap.Int("ano", ano),
			zap.String("ultimo", ultimo))
	}
	return numero, nil
}
