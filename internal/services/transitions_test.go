package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"os-system/internal/dto"
	"os-system/internal/entities"
	"os-system/pkg/constants"
	apperrors "os-system/pkg/errors"
)

func TestTransicaoPermitida(t *testing.T) {
	tests := []struct {
		de, para string
		ok       bool
	}{
		{constants.StatusNovo, constants.StatusAgendado, true},
		{constants.StatusNovo, constants.StatusCancelado, true},
		{constants.StatusNovo, constants.StatusConcluido, false},
		{constants.StatusAgendado, constants.StatusEmDeslocamento, true},
		{constants.StatusEmDeslocamento, constants.StatusCheckin, true},
		{constants.StatusCheckin, constants.StatusConcluido, true},
		{constants.StatusEmAndamento, constants.StatusParado, true},
		{constants.StatusAguardandoAssinatura, constants.StatusConcluido, true},
		{constants.StatusParado, constants.StatusEmAndamento, true},
		{constants.StatusConcluido, constants.StatusNovo, false},
		{constants.StatusCancelado, constants.StatusAgendado, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, transicaoPermitida(tt.de, tt.para), "%s -> %s", tt.de, tt.para)
	}
}

func criarOSComTecnico(t *testing.T, f *osServiceFixture, admin, tecnico *dto.Actor) *entities.OrdemServico {
	t.Helper()
	os, err := f.svc.Create(context.Background(), admin, &dto.CreateOSDTO{
		ClienteID: uuid.New(),
		Tipo:      constants.TipoChamado,
		TecnicoID: tecnico.TecnicoID,
	})
	require.NoError(t, err)
	return os
}

func TestAceitar(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	tecnico := tecnicoActor(admin.EmpresaID)
	os := criarOSBasica(t, f, admin)

	aceita, err := f.svc.Aceitar(context.Background(), tecnico, os.ID)
	require.NoError(t, err)

	assert.Equal(t, constants.StatusEmDeslocamento, aceita.Status)
	require.NotNil(t, aceita.TecnicoID)
	assert.Equal(t, *tecnico.TecnicoID, *aceita.TecnicoID)
	assert.True(t, aceita.DataInicio.Valid, "aceitar marca o início do deslocamento")

	eventos := f.history.doOS(os.ID)
	require.Len(t, eventos, 2)
	assert.Equal(t, constants.ActionAccept, eventos[1].ActionType.String)
}

func TestAceitar_OSAtribuidaAOutroTecnico(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	dono := tecnicoActor(admin.EmpresaID)
	intruso := tecnicoActor(admin.EmpresaID)
	os := criarOSComTecnico(t, f, admin, dono)

	_, err := f.svc.Aceitar(context.Background(), intruso, os.ID)
	assert.ErrorIs(t, err, apperrors.ErrAcessoNegado)
}

func TestAceitar_TecnicoJaOcupado(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	tecnico := tecnicoActor(admin.EmpresaID)

	primeira := criarOSBasica(t, f, admin)
	_, err := f.svc.Aceitar(context.Background(), tecnico, primeira.ID)
	require.NoError(t, err)

	segunda := criarOSBasica(t, f, admin)
	_, err = f.svc.Aceitar(context.Background(), tecnico, segunda.ID)
	assert.ErrorIs(t, err, apperrors.ErrTecnicoOcupado)
}

func TestAceitar_SemPerfilDeTecnico(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	os := criarOSBasica(t, f, admin)

	_, err := f.svc.Aceitar(context.Background(), admin, os.ID)
	assert.ErrorIs(t, err, apperrors.ErrAcessoNegado)
}

func TestRecusar(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	tecnico := tecnicoActor(admin.EmpresaID)
	os := criarOSComTecnico(t, f, admin, tecnico)

	motivo := "veículo quebrado"
	recusada, err := f.svc.Recusar(context.Background(), tecnico, os.ID, &dto.RecusarOSDTO{Reason: &motivo})
	require.NoError(t, err)

	assert.Equal(t, constants.StatusNovo, recusada.Status, "recusa devolve para a fila sem mudar status")
	assert.Nil(t, recusada.TecnicoID)

	eventos := f.history.doOS(os.ID)
	require.Len(t, eventos, 2)
	assert.Equal(t, constants.ActionDecline, eventos[1].ActionType.String)
	assert.Equal(t, motivo, eventos[1].Reason.String)
}

func TestRecusar_SoQuemEstaAtribuido(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	dono := tecnicoActor(admin.EmpresaID)
	outro := tecnicoActor(admin.EmpresaID)
	os := criarOSComTecnico(t, f, admin, dono)

	_, err := f.svc.Recusar(context.Background(), outro, os.ID, &dto.RecusarOSDTO{})
	assert.ErrorIs(t, err, apperrors.ErrAcessoNegado)
}

func TestIniciarDeslocamento_ExigeTecnicoAtribuido(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	os := criarOSBasica(t, f, admin)

	_, err := f.svc.IniciarDeslocamento(context.Background(), admin, os.ID)
	assert.ErrorIs(t, err, apperrors.ErrTecnicoNaoAtribuido)
}

func TestIniciarDeslocamento(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	tecnico := tecnicoActor(admin.EmpresaID)
	os := criarOSComTecnico(t, f, admin, tecnico)

	atual, err := f.svc.IniciarDeslocamento(context.Background(), tecnico, os.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusEmDeslocamento, atual.Status)
	assert.True(t, atual.DataInicio.Valid)
}

func TestCheckin(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	tecnico := tecnicoActor(admin.EmpresaID)
	os := criarOSBasica(t, f, admin)

	_, err := f.svc.Aceitar(context.Background(), tecnico, os.ID)
	require.NoError(t, err)

	atual, err := f.svc.Checkin(context.Background(), tecnico, os.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusCheckin, atual.Status)

	_, err = f.svc.Checkin(context.Background(), tecnico, os.ID)
	var vErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &vErr, "checkin duplo é rejeitado")
}

func finalizarReq(estado string) *dto.FinalizarOSDTO {
	return &dto.FinalizarOSDTO{
		NomeClienteAssinatura: "Síndico José",
		AssinaturaCliente:     "data:image/png;base64,assinado",
		EstadoEquipamento:     estado,
	}
}

func osProntaParaFinalizar(t *testing.T, f *osServiceFixture, admin, tecnico *dto.Actor) *entities.OrdemServico {
	t.Helper()
	os := criarOSBasica(t, f, admin)
	_, err := f.svc.Aceitar(context.Background(), tecnico, os.ID)
	require.NoError(t, err)
	_, err = f.svc.Checkin(context.Background(), tecnico, os.ID)
	require.NoError(t, err)
	return os
}

func TestFinalizar_EquipamentoFuncionando(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	tecnico := tecnicoActor(admin.EmpresaID)
	os := osProntaParaFinalizar(t, f, admin, tecnico)

	finalizada, err := f.svc.Finalizar(context.Background(), tecnico, os.ID, finalizarReq(constants.EstadoFuncionando))
	require.NoError(t, err)

	assert.Equal(t, constants.StatusConcluido, finalizada.Status)
	assert.True(t, finalizada.DataFim.Valid)
	assert.Equal(t, "Síndico José", finalizada.NomeClienteAssinatura.String)
	assert.Equal(t, constants.EstadoFuncionando, finalizada.EstadoEquipamento.String)
	assert.Len(t, f.osRepo.ordens, 1, "equipamento funcionando não abre desdobramento")
}

func TestFinalizar_SemTecnicoAtribuido(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	os := criarOSBasica(t, f, admin)

	agendado := constants.StatusAgendado
	amanha := time.Now().Add(24 * time.Hour)
	_, err := f.svc.Update(context.Background(), admin, os.ID, &dto.UpdateOSDTO{Status: &agendado, DataProgramada: &amanha})
	require.NoError(t, err)

	// força o caminho até checkin via edição direta não é possível sem
	// técnico, então a finalização nem chega a validar status
	_, err = f.svc.Finalizar(context.Background(), admin, os.ID, finalizarReq(constants.EstadoFuncionando))
	var vErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestFinalizar_PorTecnicoNaoAtribuido(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	dono := tecnicoActor(admin.EmpresaID)
	intruso := tecnicoActor(admin.EmpresaID)
	os := osProntaParaFinalizar(t, f, admin, dono)

	_, err := f.svc.Finalizar(context.Background(), intruso, os.ID, finalizarReq(constants.EstadoFuncionando))
	assert.ErrorIs(t, err, apperrors.ErrAcessoNegado)
}

func TestFinalizar_AdminNaoPulaTecnico(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	tecnico := tecnicoActor(admin.EmpresaID)
	os := osProntaParaFinalizar(t, f, admin, tecnico)

	// remove o técnico por edição direta e tenta finalizar como admin
	_, err := f.svc.Update(context.Background(), admin, os.ID, &dto.UpdateOSDTO{RemoverTecnico: true})
	require.NoError(t, err)

	_, err = f.svc.Finalizar(context.Background(), admin, os.ID, finalizarReq(constants.EstadoFuncionando))
	assert.ErrorIs(t, err, apperrors.ErrTecnicoNaoAtribuido)
}

func TestFinalizar_AssinaturaObrigatoria(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	tecnico := tecnicoActor(admin.EmpresaID)
	os := osProntaParaFinalizar(t, f, admin, tecnico)

	_, err := f.svc.Finalizar(context.Background(), tecnico, os.ID, &dto.FinalizarOSDTO{
		EstadoEquipamento: constants.EstadoFuncionando,
	})
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)

	finalizada, err := f.svc.Finalizar(context.Background(), tecnico, os.ID, &dto.FinalizarOSDTO{
		EstadoEquipamento: constants.EstadoFuncionando,
		SemResponsavel:    true,
	})
	require.NoError(t, err)
	assert.False(t, finalizada.NomeClienteAssinatura.Valid)
}

func TestFinalizar_DependendoDeCorretiva(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	tecnico := tecnicoActor(admin.EmpresaID)
	os := osProntaParaFinalizar(t, f, admin, tecnico)

	_, err := f.svc.Finalizar(context.Background(), tecnico, os.ID, finalizarReq(constants.EstadoDependendoCorretiva))
	require.NoError(t, err)

	require.Len(t, f.osRepo.ordens, 2)
	desdobramento := f.osRepo.ordens[1]
	assert.Equal(t, constants.TipoCorretiva, desdobramento.Tipo)
	assert.Equal(t, constants.PrioridadeMedia, desdobramento.Prioridade)
	assert.Equal(t, constants.StatusNovo, desdobramento.Status)
	assert.Equal(t, os.ClienteID, desdobramento.ClienteID)
	assert.Nil(t, desdobramento.TecnicoID, "desdobramento nasce sem técnico")
	assert.NotEqual(t, os.NumeroOS, desdobramento.NumeroOS)
}

func TestFinalizar_EquipamentoParado(t *testing.T) {
	f := newOSServiceFixture()
	admin := adminActor(uuid.New())
	tecnico := tecnicoActor(admin.EmpresaID)
	os := osProntaParaFinalizar(t, f, admin, tecnico)

	_, err := f.svc.Finalizar(context.Background(), tecnico, os.ID, finalizarReq(constants.EstadoParado))
	require.NoError(t, err)

	require.Len(t, f.osRepo.ordens, 2)
	desdobramento := f.osRepo.ordens[1]
	assert.Equal(t, constants.TipoCorretiva, desdobramento.Tipo)
	assert.Equal(t, constants.PrioridadeUrgente, desdobramento.Prioridade)
	assert.Equal(t, constants.StatusParado, desdobramento.Status)
	assert.Equal(t, os.EmpresaID, desdobramento.EmpresaID)

	eventos := f.history.doOS(desdobramento.ID)
	require.Len(t, eventos, 1)
	assert.Equal(t, constants.ActionFollowUp, eventos[0].ActionType.String)
}
