package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"os-system/internal/dto"
	"os-system/internal/services"
	apperrors "os-system/pkg/errors"
	"os-system/pkg/utils"
)

// Controllers dos cadastros de apoio (clientes, equipamentos, colaboradores).

type ClienteController struct {
	service         services.ClienteService
	identityService services.IdentityService
	logger          *zap.Logger
}

func NewClienteController(service services.ClienteService, identityService services.IdentityService, logger *zap.Logger) *ClienteController {
	return &ClienteController{service: service, identityService: identityService, logger: logger}
}

func (ctrl *ClienteController) Create(c echo.Context) error {
	var req dto.CreateClienteDTO
	if err := c.Bind(&req); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "corpo da requisição inválido", err), ctrl.logger)
	}
	if err := c.Validate(&req); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	cliente, err := ctrl.service.Create(c.Request().Context(), actor, &req)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, cliente, "cliente criado", http.StatusCreated)
}

func (ctrl *ClienteController) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var req dto.UpdateClienteDTO
	if err := c.Bind(&req); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "corpo da requisição inválido", err), ctrl.logger)
	}
	if err := c.Validate(&req); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	cliente, err := ctrl.service.Update(c.Request().Context(), actor, id, &req)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, cliente, "cliente atualizado", http.StatusOK)
}

func (ctrl *ClienteController) FindByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	cliente, err := ctrl.service.FindByID(c.Request().Context(), actor, id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, cliente, "cliente encontrado", http.StatusOK)
}

func (ctrl *ClienteController) List(c echo.Context) error {
	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())
	clientes, total, err := ctrl.service.List(c.Request().Context(), actor, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, clientes, "clientes listados", http.StatusOK, total)
}

func (ctrl *ClienteController) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.service.Delete(c.Request().Context(), actor, id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "cliente removido", http.StatusOK)
}

type EquipamentoController struct {
	service         services.EquipamentoService
	identityService services.IdentityService
	logger          *zap.Logger
}

func NewEquipamentoController(service services.EquipamentoService, identityService services.IdentityService, logger *zap.Logger) *EquipamentoController {
	return &EquipamentoController{service: service, identityService: identityService, logger: logger}
}

func (ctrl *EquipamentoController) Create(c echo.Context) error {
	var req dto.CreateEquipamentoDTO
	if err := c.Bind(&req); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "corpo da requisição inválido", err), ctrl.logger)
	}
	if err := c.Validate(&req); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	equipamento, err := ctrl.service.Create(c.Request().Context(), actor, &req)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, equipamento, "equipamento criado", http.StatusCreated)
}

func (ctrl *EquipamentoController) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var req dto.UpdateEquipamentoDTO
	if err := c.Bind(&req); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "corpo da requisição inválido", err), ctrl.logger)
	}
	if err := c.Validate(&req); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	equipamento, err := ctrl.service.Update(c.Request().Context(), actor, id, &req)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, equipamento, "equipamento atualizado", http.StatusOK)
}

func (ctrl *EquipamentoController) FindByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	equipamento, err := ctrl.service.FindByID(c.Request().Context(), actor, id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, equipamento, "equipamento encontrado", http.StatusOK)
}

func (ctrl *EquipamentoController) List(c echo.Context) error {
	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())
	equipamentos, total, err := ctrl.service.List(c.Request().Context(), actor, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, equipamentos, "equipamentos listados", http.StatusOK, total)
}

func (ctrl *EquipamentoController) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.service.Delete(c.Request().Context(), actor, id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "equipamento removido", http.StatusOK)
}

type ColaboradorController struct {
	service         services.ColaboradorService
	identityService services.IdentityService
	logger          *zap.Logger
}

func NewColaboradorController(service services.ColaboradorService, identityService services.IdentityService, logger *zap.Logger) *ColaboradorController {
	return &ColaboradorController{service: service, identityService: identityService, logger: logger}
}

func (ctrl *ColaboradorController) Create(c echo.Context) error {
	var req dto.CreateColaboradorDTO
	if err := c.Bind(&req); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "corpo da requisição inválido", err), ctrl.logger)
	}
	if err := c.Validate(&req); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	colaborador, err := ctrl.service.Create(c.Request().Context(), actor, &req)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, colaborador, "colaborador criado", http.StatusCreated)
}

func (ctrl *ColaboradorController) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var req dto.UpdateColaboradorDTO
	if err := c.Bind(&req); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "corpo da requisição inválido", err), ctrl.logger)
	}
	if err := c.Validate(&req); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	colaborador, err := ctrl.service.Update(c.Request().Context(), actor, id, &req)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, colaborador, "colaborador atualizado", http.StatusOK)
}

func (ctrl *ColaboradorController) FindByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	colaborador, err := ctrl.service.FindByID(c.Request().Context(), actor, id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, colaborador, "colaborador encontrado", http.StatusOK)
}

func (ctrl *ColaboradorController) List(c echo.Context) error {
	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())
	colaboradores, total, err := ctrl.service.List(c.Request().Context(), actor, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, colaboradores, "colaboradores listados", http.StatusOK, total)
}

func (ctrl *ColaboradorController) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.service.Delete(c.Request().Context(), actor, id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "colaborador removido", http.StatusOK)
}
