package services

import (
	"context"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"os-system/internal/dto"
	"os-system/internal/entities"
	"os-system/internal/repositories"
	apperrors "os-system/pkg/errors"
	"os-system/pkg/types"
)

// Serviços de cadastro: clientes, equipamentos e colaboradores. CRUD fino,
// sempre escopado pela empresa efetiva do ator; escrita exige
// admin/supervisor.

type ClienteService interface {
	Create(ctx context.Context, actor *dto.Actor, req *dto.CreateClienteDTO) (*entities.Cliente, error)
	Update(ctx context.Context, actor *dto.Actor, id uuid.UUID, req *dto.UpdateClienteDTO) (*entities.Cliente, error)
	FindByID(ctx context.Context, actor *dto.Actor, id uuid.UUID) (*entities.Cliente, error)
	List(ctx context.Context, actor *dto.Actor, filter types.Filter) ([]entities.Cliente, uint64, error)
	Delete(ctx context.Context, actor *dto.Actor, id uuid.UUID) error
}

type clienteService struct {
	repo repositories.ClienteRepository
}

func NewClienteService(repo repositories.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Create(ctx context.Context, actor *dto.Actor, req *dto.CreateClienteDTO) (*entities.Cliente, error) {
	if !actor.PodeGerirOS() {
		return nil, apperrors.ErrAcessoNegado
	}
	c := &entities.Cliente{
		ID:        uuid.New(),
		EmpresaID: actor.EmpresaID,
		Nome:      req.Nome,
		Documento: null.StringFromPtr(req.Documento),
		Endereco:  null.StringFromPtr(req.Endereco),
		Telefone:  null.StringFromPtr(req.Telefone),
		Email:     null.StringFromPtr(req.Email),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clienteService) Update(ctx context.Context, actor *dto.Actor, id uuid.UUID, req *dto.UpdateClienteDTO) (*entities.Cliente, error) {
	if !actor.PodeGerirOS() {
		return nil, apperrors.ErrAcessoNegado
	}
	c, err := s.repo.FindByID(ctx, actor.EmpresaID, id)
	if err != nil {
		return nil, err
	}
	if req.Nome != nil {
		c.Nome = *req.Nome
	}
	if req.Documento != nil {
		c.Documento = null.StringFromPtr(req.Documento)
	}
	if req.Endereco != nil {
		c.Endereco = null.StringFromPtr(req.Endereco)
	}
	if req.Telefone != nil {
		c.Telefone = null.StringFromPtr(req.Telefone)
	}
	if req.Email != nil {
		c.Email = null.StringFromPtr(req.Email)
	}
	if req.Ativo != nil {
		c.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clienteService) FindByID(ctx context.Context, actor *dto.Actor, id uuid.UUID) (*entities.Cliente, error) {
	return s.repo.FindByID(ctx, actor.EmpresaID, id)
}

func (s *clienteService) List(ctx context.Context, actor *dto.Actor, filter types.Filter) ([]entities.Cliente, uint64, error) {
	return s.repo.List(ctx, actor.EmpresaID, filter)
}

func (s *clienteService) Delete(ctx context.Context, actor *dto.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return apperrors.ErrAcessoNegado
	}
	return s.repo.Delete(ctx, actor.EmpresaID, id)
}

type EquipamentoService interface {
	Create(ctx context.Context, actor *dto.Actor, req *dto.CreateEquipamentoDTO) (*entities.Equipamento, error)
	Update(ctx context.Context, actor *dto.Actor, id uuid.UUID, req *dto.UpdateEquipamentoDTO) (*entities.Equipamento, error)
	FindByID(ctx context.Context, actor *dto.Actor, id uuid.UUID) (*entities.Equipamento, error)
	List(ctx context.Context, actor *dto.Actor, filter types.Filter) ([]entities.Equipamento, uint64, error)
	Delete(ctx context.Context, actor *dto.Actor, id uuid.UUID) error
}

type equipamentoService struct {
	repo repositories.EquipamentoRepository
}

func NewEquipamentoService(repo repositories.EquipamentoRepository) EquipamentoService {
	return &equipamentoService{repo: repo}
}

func (s *equipamentoService) Create(ctx context.Context, actor *dto.Actor, req *dto.CreateEquipamentoDTO) (*entities.Equipamento, error) {
	if !actor.PodeGerirOS() {
		return nil, apperrors.ErrAcessoNegado
	}
	e := &entities.Equipamento{
		ID:          uuid.New(),
		EmpresaID:   actor.EmpresaID,
		ClienteID:   req.ClienteID,
		Nome:        req.Nome,
		Fabricante:  null.StringFromPtr(req.Fabricante),
		Modelo:      null.StringFromPtr(req.Modelo),
		NumeroSerie: null.StringFromPtr(req.NumeroSerie),
		Localizacao: null.StringFromPtr(req.Localizacao),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *equipamentoService) Update(ctx context.Context, actor *dto.Actor, id uuid.UUID, req *dto.UpdateEquipamentoDTO) (*entities.Equipamento, error) {
	if !actor.PodeGerirOS() {
		return nil, apperrors.ErrAcessoNegado
	}
	e, err := s.repo.FindByID(ctx, actor.EmpresaID, id)
	if err != nil {
		return nil, err
	}
	if req.Nome != nil {
		e.Nome = *req.Nome
	}
	if req.Fabricante != nil {
		e.Fabricante = null.StringFromPtr(req.Fabricante)
	}
	if req.Modelo != nil {
		e.Modelo = null.StringFromPtr(req.Modelo)
	}
	if req.NumeroSerie != nil {
		e.NumeroSerie = null.StringFromPtr(req.NumeroSerie)
	}
	if req.Localizacao != nil {
		e.Localizacao = null.StringFromPtr(req.Localizacao)
	}
	if req.Ativo != nil {
		e.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *equipamentoService) FindByID(ctx context.Context, actor *dto.Actor, id uuid.UUID) (*entities.Equipamento, error) {
	return s.repo.FindByID(ctx, actor.EmpresaID, id)
}

func (s *equipamentoService) List(ctx context.Context, actor *dto.Actor, filter types.Filter) ([]entities.Equipamento, uint64, error) {
	return s.repo.List(ctx, actor.EmpresaID, filter)
}

func (s *equipamentoService) Delete(ctx context.Context, actor *dto.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return apperrors.ErrAcessoNegado
	}
	return s.repo.Delete(ctx, actor.EmpresaID, id)
}

type ColaboradorService interface {
	Create(ctx context.Context, actor *dto.Actor, req *dto.CreateColaboradorDTO) (*entities.Colaborador, error)
	Update(ctx context.Context, actor *dto.Actor, id uuid.UUID, req *dto.UpdateColaboradorDTO) (*entities.Colaborador, error)
	FindByID(ctx context.Context, actor *dto.Actor, id uuid.UUID) (*entities.Colaborador, error)
	List(ctx context.Context, actor *dto.Actor, filter types.Filter) ([]entities.Colaborador, uint64, error)
	Delete(ctx context.Context, actor *dto.Actor, id uuid.UUID) error
}

type colaboradorService struct {
	repo repositories.ColaboradorRepository
}

func NewColaboradorService(repo repositories.ColaboradorRepository) ColaboradorService {
	return &colaboradorService{repo: repo}
}

func (s *colaboradorService) Create(ctx context.Context, actor *dto.Actor, req *dto.CreateColaboradorDTO) (*entities.Colaborador, error) {
	if !actor.PodeGerirOS() {
		return nil, apperrors.ErrAcessoNegado
	}
	c := &entities.Colaborador{
		ID:        uuid.New(),
		EmpresaID: actor.EmpresaID,
		Nome:      req.Nome,
		Funcao:    null.StringFromPtr(req.Funcao),
		Telefone:  null.StringFromPtr(req.Telefone),
		Email:     null.StringFromPtr(req.Email),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *colaboradorService) Update(ctx context.Context, actor *dto.Actor, id uuid.UUID, req *dto.UpdateColaboradorDTO) (*entities.Colaborador, error) {
	if !actor.PodeGerirOS() {
		return nil, apperrors.ErrAcessoNegado
	}
	c, err := s.repo.FindByID(ctx, actor.EmpresaID, id)
	if err != nil {
		return nil, err
	}
	if req.Nome != nil {
		c.Nome = *req.Nome
	}
	if req.Funcao != nil {
		c.Funcao = null.StringFromPtr(req.Funcao)
	}
	if req.Telefone != nil {
		c.Telefone = null.StringFromPtr(req.Telefone)
	}
	if req.Email != nil {
		c.Email = null.StringFromPtr(req.Email)
	}
	if req.Ativo != nil {
		c.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *colaboradorService) FindByID(ctx context.Context, actor *dto.Actor, id uuid.UUID) (*entities.Colaborador, error) {
	return s.repo.FindByID(ctx, actor.EmpresaID, id)
}

func (s *colaboradorService) List(ctx context.Context, actor *dto.Actor, filter types.Filter) ([]entities.Colaborador, uint64, error) {
	return s.repo.List(ctx, actor.EmpresaID, filter)
}

func (s *colaboradorService) Delete(ctx context.Context, actor *dto.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return apperrors.ErrAcessoNegado
	}
	return s.repo.Delete(ctx, actor.EmpresaID, id)
}
