package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"os-system/internal/dto"
	"os-system/internal/entities"
	"os-system/pkg/constants"
	apperrors "os-system/pkg/errors"
	"os-system/pkg/utils"
)

type osServiceFixture struct {
	svc       OSService
	osRepo    *fakeOSRepo
	history   *fakeHistoryRepo
	checklist *fakeChecklistRepo
	evidencia *fakeEvidenciaRepo
}

func newOSServiceFixture() *osServiceFixture {
	osRepo := &fakeOSRepo{}
	history := &fakeHistoryRepo{}
	checklist := newFakeChecklistRepo()
	evidencia := &fakeEvidenciaRepo{}
	logger := zap.NewNop()
	svc := NewOSService(osRepo, history, checklist, evidencia, fakeTxManager{},
		NewNumeroOSGenerator(osRepo, logger), logger)
	return &osServiceFixture{svc: svc, osRepo: osRepo, history: history, checklist: checklist, evidencia: evidencia}
}

func adminActor(empresaID uuid.UUID) *dto.Actor {
	return &dto.Actor{UserID: uuid.New(), Role: constants.RoleAdmin, EmpresaID: empresaID}
}

func supervisorActor(empresaID uuid.UUID) *dto.Actor {
	return &dto.Actor{UserID: uuid.New(), Role: constants.RoleSupervisor, EmpresaID: empresaID}
}

func tecnicoActor(empresaID uuid.UUID) *dto.Actor {
	tecnicoID := uuid.New()
	return &dto.Actor{UserID: uuid.New(), Role: constants.RoleTecnico, EmpresaID: empresaID, TecnicoID: &tecnicoID}
}

func criarOSBasica(t *testing.T, f *osServiceFixture, actor *dto.Actor) *entities.OrdemServico {
	t.Helper()
	os, err := f.svc.Create(context.Background(), actor, &dto.CreateOSDTO{
		ClienteID: uuid.New(),
		Tipo:      constants.TipoChamado,
	})
	require.NoError(t, err)
	return os
}

func TestCreateOS_NumeracaoSequencialPorEmpresa(t *testing.T) {
	f := newOSServiceFixture()
	ano := time.Now().Year()
	empresaA := adminActor(uuid.New())
	empresaB := adminActor(uuid.New())

	primeira := criarOSBasica(t, f, empresaA)
	segunda := criarOSBasica(t, f, empresaA)
	deOutra := criarOSBasica(t, f, empresaB)

	assert.Equal(t, fmt.Sprintf("OS-0001-%d", ano), primeira.NumeroOS)
	assert.Equal(t, fmt.Sprintf("OS-0002-%d", ano), segunda.NumeroOS)
	assert.Equal(t, fmt.Sprintf("OS-0001-%d", ano), deOutra.NumeroOS, "cada empresa tem sequência própria")
}

func TestCreateOS_IgnoraNumeroEnviadoPeloCliente(t *testing.T) {
	f := newOSServiceFixture()
	actor := adminActor(uuid.New())

	os, err := f.svc.Create(context.Background(), actor, &dto.CreateOSDTO{
		ClienteID: uuid.New(),
		Tipo:      constants.TipoPreventiva,
		NumeroOS:  "OS-9999-1999",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("OS-0001-%d", time.Now().Year()), os.NumeroOS)
}

func TestCreateOS_SomenteAdmin(t *testing.T) {
	f := newOSServiceFixture()
	empresaID := uuid.New()

	for _, actor := range []*dto.Actor{supervisorActor(empresaID), tecnicoActor(empresaID)} {
		_, err := f.svc.Create(context.Background(), actor, &dto.CreateOSDTO{
			ClienteID: uuid.New(),
			Tipo:      constants.TipoChamado,
		})
		assert.ErrorIs(t, err, apperrors.ErrAcessoNegado)
	}
}

func TestCreateOS_DefaultsEHistorico(t *testing.T) {
	f := newOSServiceFixture()
	actor := adminActor(uuid.New())

	os := criarOSBasica(t, f, actor)

	assert.Equal(t, constants.StatusNovo, os.Status)
	assert.Equal(t, constants.PrioridadeMedia, os.Prioridade)
	assert.Equal(t, constants.OrigemPainel, os.Origem)
	assert.Equal(t, actor.EmpresaID, os.EmpresaID)

	eventos := f.history.doOS(os.ID)
	require.Len(t, eventos, 1)
	assert.Equal(t, constants.StatusNovo, eventos[0].StatusNovo)
	assert.False(t, eventos[0].StatusAnterior.Valid)
	assert.Equal(t, constants.ActionCreate, eventos[0].ActionType.String)
}

func TestCreateOS_SemeiaChecklist(t *testing.T) {
	f := newOSServiceFixture()
	actor := adminActor(uuid.New())

	os, err := f.svc.Create(context.Background(), actor, &dto.CreateOSDTO{
		ClienteID:      uuid.New(),
		Tipo:           constants.TipoPreventiva,
		ChecklistItens: []string{"Freio de segurança", "Nivelamento de cabine", "Iluminação de poço"},
	})
	require.NoError(t, err)

	itens, err := f.checklist.FindByOSID(context.Background(), actor.EmpresaID, os.ID)
	require.NoError(t, err)
	require.Len(t, itens, 3)
	assert.Equal(t, "Freio de segurança", itens[0].Descricao)
	assert.Equal(t, 1, itens[0].Ordem)
	assert.False(t, itens[0].Status.Valid, "item nasce sem avaliação")
}

func TestCreateOS_TecnicoOcupado(t *testing.T) {
	f := newOSServiceFixture()
	actor := adminActor(uuid.New())
	tecnicoID := uuid.New()

	// técnico já em deslocamento em outra OS
	ocupada, err := f.svc.Create(context.Background(), actor, &dto.CreateOSDTO{
		ClienteID: uuid.New(),
		Tipo:      constants.TipoChamado,
		TecnicoID: &tecnicoID,
	})
	require.NoError(t, err)
	status := constants.StatusEmDeslocamento
	_, err = f.svc.Update(context.Background(), actor, ocupada.ID, &dto.UpdateOSDTO{Status: &status})
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), actor, &dto.CreateOSDTO{
		ClienteID: uuid.New(),
		Tipo:      constants.TipoChamado,
		TecnicoID: &tecnicoID,
	})
	assert.ErrorIs(t, err, apperrors.ErrTecnicoOcupado)

	semTecnico, err := f.svc.Create(context.Background(), actor, &dto.CreateOSDTO{
		ClienteID:       uuid.New(),
		Tipo:            constants.TipoChamado,
		TecnicoID:       &tecnicoID,
		CriarSemTecnico: true,
	})
	require.NoError(t, err)
	assert.Nil(t, semTecnico.TecnicoID, "com criar_sem_tecnico a OS nasce sem técnico")
}

func TestCreateOS_StatusInicialRestrito(t *testing.T) {
	f := newOSServiceFixture()
	actor := adminActor(uuid.New())

	_, err := f.svc.Create(context.Background(), actor, &dto.CreateOSDTO{
		ClienteID: uuid.New(),
		Tipo:      constants.TipoChamado,
		Status:    constants.StatusConcluido,
	})
	var vErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestUpdateOS_SomenteAdminOuSupervisor(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	os := criarOSBasica(t, f, admin)

	obs := "tentativa"
	_, err := f.svc.Update(context.Background(), tecnicoActor(admin.EmpresaID), os.ID, &dto.UpdateOSDTO{Observacoes: &obs})
	assert.ErrorIs(t, err, apperrors.ErrAcessoNegado)

	_, err = f.svc.Update(context.Background(), supervisorActor(admin.EmpresaID), os.ID, &dto.UpdateOSDTO{Observacoes: &obs})
	assert.NoError(t, err)
}

func TestUpdateOS_EmpresaImutavel(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	os := criarOSBasica(t, f, admin)

	outraEmpresa := adminActor(uuid.New())
	obs := "não deveria enxergar"
	_, err := f.svc.Update(context.Background(), outraEmpresa, os.ID, &dto.UpdateOSDTO{Observacoes: &obs})
	assert.ErrorIs(t, err, apperrors.ErrAcessoNegado, "OS de outra empresa responde 403, não 404")

	_, err = f.svc.FindByID(context.Background(), outraEmpresa, os.ID)
	assert.ErrorIs(t, err, apperrors.ErrAcessoNegado)

	atualizada, err := f.svc.Update(context.Background(), admin, os.ID, &dto.UpdateOSDTO{Observacoes: &obs})
	require.NoError(t, err)
	assert.Equal(t, admin.EmpresaID, atualizada.EmpresaID)
	assert.Equal(t, os.NumeroOS, atualizada.NumeroOS)
}

func TestUpdateOS_DeslocamentoDiretoExigeTecnico(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	os := criarOSBasica(t, f, admin)

	emDeslocamento := constants.StatusEmDeslocamento
	_, err := f.svc.Update(context.Background(), admin, os.ID, &dto.UpdateOSDTO{Status: &emDeslocamento})
	assert.ErrorIs(t, err, apperrors.ErrTecnicoNaoAtribuido, "edição direta não pula a exigência de técnico")

	tecnico := tecnicoActor(admin.EmpresaID)
	atualizada, err := f.svc.Update(context.Background(), admin, os.ID, &dto.UpdateOSDTO{
		Status:    &emDeslocamento,
		TecnicoID: tecnico.TecnicoID,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusEmDeslocamento, atualizada.Status)
	assert.True(t, atualizada.DataInicio.Valid)
}

func TestUpdateOS_AtribuicaoConsultaOcupacao(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	tecnico := tecnicoActor(admin.EmpresaID)

	primeira := criarOSBasica(t, f, admin)
	_, err := f.svc.Aceitar(context.Background(), tecnico, primeira.ID)
	require.NoError(t, err)

	segunda := criarOSBasica(t, f, admin)
	_, err = f.svc.Update(context.Background(), admin, segunda.ID, &dto.UpdateOSDTO{TecnicoID: tecnico.TecnicoID})
	assert.ErrorIs(t, err, apperrors.ErrTecnicoOcupado, "atribuir técnico em atendimento conflita mesmo com a OS em novo")

	atualizada, err := f.svc.Update(context.Background(), admin, segunda.ID, &dto.UpdateOSDTO{
		TecnicoID:       tecnico.TecnicoID,
		CriarSemTecnico: true,
	})
	require.NoError(t, err)
	assert.Nil(t, atualizada.TecnicoID, "a válvula de escape mantém a OS sem técnico")
}

func TestOS_AgendadoExigeDataProgramada(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())

	var vErr *apperrors.ValidationError
	_, err := f.svc.Create(context.Background(), admin, &dto.CreateOSDTO{
		ClienteID: uuid.New(),
		Tipo:      constants.TipoPreventiva,
		Status:    constants.StatusAgendado,
	})
	assert.ErrorAs(t, err, &vErr)

	os := criarOSBasica(t, f, admin)
	agendado := constants.StatusAgendado
	_, err = f.svc.Update(context.Background(), admin, os.ID, &dto.UpdateOSDTO{Status: &agendado})
	assert.ErrorAs(t, err, &vErr)

	amanha := time.Now().Add(24 * time.Hour)
	atualizada, err := f.svc.Update(context.Background(), admin, os.ID, &dto.UpdateOSDTO{
		Status:         &agendado,
		DataProgramada: &amanha,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusAgendado, atualizada.Status)
}

func TestListOS_BuscaPorTexto(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())

	obs := "Ruído no motor de tração"
	_, err := f.svc.Create(context.Background(), admin, &dto.CreateOSDTO{
		ClienteID:   uuid.New(),
		Tipo:        constants.TipoChamado,
		Observacoes: &obs,
	})
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), admin, &dto.CreateOSDTO{
		ClienteID: uuid.New(),
		Tipo:      constants.TipoPreventiva,
	})
	require.NoError(t, err)

	porTipo, _, err := f.svc.List(context.Background(), admin, dto.ListOSFilter{Search: "PREVENT"})
	require.NoError(t, err)
	require.Len(t, porTipo, 1, "busca cobre o tipo, sem diferenciar maiúsculas")
	assert.Equal(t, constants.TipoPreventiva, porTipo[0].Tipo)

	porObservacao, _, err := f.svc.List(context.Background(), admin, dto.ListOSFilter{Search: "ruído no motor"})
	require.NoError(t, err)
	require.Len(t, porObservacao, 1)
	assert.Equal(t, constants.TipoChamado, porObservacao[0].Tipo)

	porNumero, _, err := f.svc.List(context.Background(), admin, dto.ListOSFilter{Search: "os-0002"})
	require.NoError(t, err)
	require.Len(t, porNumero, 1)
}

func TestUpdateOS_TransicaoInvalida(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	os := criarOSBasica(t, f, admin)

	status := constants.StatusConcluido
	_, err := f.svc.Update(context.Background(), admin, os.ID, &dto.UpdateOSDTO{Status: &status})
	var vErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &vErr, "novo não conclui direto")
}

func TestUpdateOS_TerminalSoReabre(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	os := criarOSBasica(t, f, admin)

	cancelado := constants.StatusCancelado
	_, err := f.svc.Update(context.Background(), admin, os.ID, &dto.UpdateOSDTO{Status: &cancelado})
	require.NoError(t, err)

	obs := "edição tardia"
	_, err = f.svc.Update(context.Background(), admin, os.ID, &dto.UpdateOSDTO{Observacoes: &obs})
	assert.ErrorIs(t, err, apperrors.ErrOSImutavel)

	reaberta := constants.StatusReaberta
	atualizada, err := f.svc.Update(context.Background(), admin, os.ID, &dto.UpdateOSDTO{Status: &reaberta})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusReaberta, atualizada.Status)
}

func TestListOS_EscopoPorEmpresaETecnico(t *testing.T) {
	f := newOSServiceFixture()
	adminA := adminActor(uuid.New())
	adminB := adminActor(uuid.New())

	criarOSBasica(t, f, adminA)
	criarOSBasica(t, f, adminA)
	criarOSBasica(t, f, adminB)

	ordens, total, err := f.svc.List(context.Background(), adminA, dto.ListOSFilter{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	for _, os := range ordens {
		assert.Equal(t, adminA.EmpresaID, os.EmpresaID)
	}

	// técnico sem OS atribuída não vê nada
	ordens, total, err = f.svc.List(context.Background(), tecnicoActor(adminA.EmpresaID), dto.ListOSFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, ordens)
}

func TestDeleteOS_SomenteAdmin(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	os := criarOSBasica(t, f, admin)

	err := f.svc.Delete(context.Background(), supervisorActor(admin.EmpresaID), os.ID)
	assert.ErrorIs(t, err, apperrors.ErrAcessoNegado)

	require.NoError(t, f.svc.Delete(context.Background(), admin, os.ID))
	_, err = f.svc.FindByID(context.Background(), admin, os.ID)
	assert.ErrorIs(t, err, apperrors.ErrNaoEncontrado)
}

func TestHistory_MaisRecentePrimeiro(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	os := criarOSBasica(t, f, admin)

	agendado := constants.StatusAgendado
	amanha := time.Now().Add(24 * time.Hour)
	_, err := f.svc.Update(context.Background(), admin, os.ID, &dto.UpdateOSDTO{Status: &agendado, DataProgramada: &amanha})
	require.NoError(t, err)

	eventos, err := f.svc.History(context.Background(), admin, os.ID)
	require.NoError(t, err)
	require.Len(t, eventos, 2)
	assert.Equal(t, constants.StatusAgendado, eventos[0].StatusNovo)
	assert.Equal(t, constants.StatusNovo, eventos[1].StatusNovo)
}

func TestEvidencias_AnexaELista(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	os := criarOSBasica(t, f, admin)

	ref := "s3://evidencias/foto-123.jpg"
	_, err := f.svc.AddEvidencia(context.Background(), admin, os.ID, &dto.CreateEvidenciaDTO{
		Tipo:       "photo",
		Referencia: &ref,
	})
	require.NoError(t, err)

	evidencias, err := f.svc.ListEvidencias(context.Background(), admin, os.ID)
	require.NoError(t, err)
	require.Len(t, evidencias, 1)
	assert.Equal(t, "photo", evidencias[0].Tipo)
}

func ctxComUsuario(userID uuid.UUID) context.Context {
	return utils.CtxWithUserID(context.Background(), userID)
}
