package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"os-system/internal/dto"
	"os-system/pkg/constants"
	apperrors "os-system/pkg/errors"
	"os-system/pkg/utils"
)

func TestLaudo_UpsertSobrescreve(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	os := criarOSBasica(t, f, admin)

	laudoRepo := newFakeLaudoRepo()
	svc := NewLaudoService(laudoRepo, f.osRepo)

	_, err := svc.Find(context.Background(), admin, os.ID)
	assert.ErrorIs(t, err, apperrors.ErrNaoEncontrado, "OS sem laudo responde 404")

	primeiro, err := svc.Upsert(context.Background(), admin, os.ID, &dto.UpsertLaudoDTO{
		OQueFoiFeito: utils.StringPtr("Troca do cabo de tração"),
	})
	require.NoError(t, err)

	segundo, err := svc.Upsert(context.Background(), admin, os.ID, &dto.UpsertLaudoDTO{
		OQueFoiFeito: utils.StringPtr("Troca do cabo de tração e regulagem do limitador"),
		Observacao:   utils.StringPtr("Recomendada preventiva em 90 dias"),
	})
	require.NoError(t, err)
	assert.Equal(t, primeiro.ID, segundo.ID, "segundo upsert edita o mesmo laudo")

	atual, err := svc.Find(context.Background(), admin, os.ID)
	require.NoError(t, err)
	assert.Equal(t, "Troca do cabo de tração e regulagem do limitador", atual.OQueFoiFeito.String)
	assert.Equal(t, "Recomendada preventiva em 90 dias", atual.Observacao.String)
}

func TestLaudo_TecnicoSoNaPropriaOS(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	dono := tecnicoActor(admin.EmpresaID)
	outro := tecnicoActor(admin.EmpresaID)
	os := criarOSComTecnico(t, f, admin, dono)

	svc := NewLaudoService(newFakeLaudoRepo(), f.osRepo)

	_, err := svc.Upsert(context.Background(), outro, os.ID, &dto.UpsertLaudoDTO{
		OQueFoiFeito: utils.StringPtr("não deveria"),
	})
	assert.ErrorIs(t, err, apperrors.ErrAcessoNegado)

	_, err = svc.Upsert(context.Background(), dono, os.ID, &dto.UpsertLaudoDTO{
		OQueFoiFeito: utils.StringPtr("lubrificação das guias"),
	})
	assert.NoError(t, err)
}

func TestChecklist_AtualizaConformidade(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())

	os, err := f.svc.Create(context.Background(), admin, &dto.CreateOSDTO{
		ClienteID:      uuid.New(),
		Tipo:           constants.TipoPreventiva,
		ChecklistItens: []string{"Freio de segurança", "Porta de pavimento"},
	})
	require.NoError(t, err)

	svc := NewChecklistService(f.checklist, f.osRepo)

	itens, err := svc.List(context.Background(), admin, os.ID)
	require.NoError(t, err)
	require.Len(t, itens, 2)

	item, err := svc.UpdateStatus(context.Background(), admin, os.ID, itens[0].ID, &dto.UpdateChecklistItemDTO{
		Status: constants.ChecklistConforme,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.ChecklistConforme, item.Status.String)

	pendentes, err := f.checklist.CountPendentes(context.Background(), os.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, pendentes)
}
