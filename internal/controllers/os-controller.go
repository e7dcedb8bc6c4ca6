package controllers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"os-system/internal/dto"
	"os-system/internal/services"
	apperrors "os-system/pkg/errors"
	"os-system/pkg/utils"
)

type OSController struct {
	osService       services.OSService
	identityService services.IdentityService
	logger          *zap.Logger
}

func NewOSController(osService services.OSService, identityService services.IdentityService, logger *zap.Logger) *OSController {
	return &OSController{osService: osService, identityService: identityService, logger: logger}
}

func (ctrl *OSController) actor(c echo.Context) (*dto.Actor, error) {
	return ctrl.identityService.Resolve(c.Request().Context())
}

func parseID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.NewHttpError(http.StatusBadRequest, "identificador inválido", err)
	}
	return id, nil
}

func (ctrl *OSController) Create(c echo.Context) error {
	var req dto.CreateOSDTO
	if err := c.Bind(&req); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "corpo da requisição inválido", err), ctrl.logger)
	}
	if err := c.Validate(&req); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := ctrl.actor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	os, err := ctrl.osService.Create(c.Request().Context(), actor, &req)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, os, "ordem de serviço criada", http.StatusCreated)
}

func (ctrl *OSController) Update(c echo.Context) error {
	osID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var req dto.UpdateOSDTO
	if err := c.Bind(&req); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "corpo da requisição inválido", err), ctrl.logger)
	}
	if err := c.Validate(&req); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := ctrl.actor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	os, err := ctrl.osService.Update(c.Request().Context(), actor, osID, &req)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, os, "ordem de serviço atualizada", http.StatusOK)
}

func (ctrl *OSController) FindByID(c echo.Context) error {
	osID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	actor, err := ctrl.actor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	os, err := ctrl.osService.FindByID(c.Request().Context(), actor, osID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, os, "ordem de serviço encontrada", http.StatusOK)
}

func (ctrl *OSController) List(c echo.Context) error {
	actor, err := ctrl.actor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	filter := dto.ListOSFilter{
		Status:     c.QueryParam("status"),
		Prioridade: c.QueryParam("prioridade"),
		Search:     c.QueryParam("search"),
		OrderBy:    c.QueryParam("order_by"),
		Page:       1,
		PageSize:   utils.DefaultLimit,
	}
	if raw := c.QueryParam("tecnico_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "tecnico_id inválido", err), ctrl.logger)
		}
		filter.TecnicoID = &id
	}
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		filter.Page = p
	}
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 {
		if l > utils.MaxLimit {
			l = utils.MaxLimit
		}
		filter.PageSize = l
	}

	ordens, total, err := ctrl.osService.List(c.Request().Context(), actor, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, ordens, "ordens de serviço listadas", http.StatusOK, total)
}

func (ctrl *OSController) Delete(c echo.Context) error {
	osID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	actor, err := ctrl.actor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.osService.Delete(c.Request().Context(), actor, osID); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "ordem de serviço removida", http.StatusOK)
}

func (ctrl *OSController) Aceitar(c echo.Context) error {
	osID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	actor, err := ctrl.actor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	os, err := ctrl.osService.Aceitar(c.Request().Context(), actor, osID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, os, "ordem de serviço aceita", http.StatusOK)
}

func (ctrl *OSController) Recusar(c echo.Context) error {
	osID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var req dto.RecusarOSDTO
	if err := c.Bind(&req); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "corpo da requisição inválido", err), ctrl.logger)
	}

	actor, err := ctrl.actor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	os, err := ctrl.osService.Recusar(c.Request().Context(), actor, osID, &req)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, os, "ordem de serviço recusada", http.StatusOK)
}

func (ctrl *OSController) IniciarDeslocamento(c echo.Context) error {
	osID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	actor, err := ctrl.actor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	os, err := ctrl.osService.IniciarDeslocamento(c.Request().Context(), actor, osID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, os, "deslocamento iniciado", http.StatusOK)
}

func (ctrl *OSController) Checkin(c echo.Context) error {
	osID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	actor, err := ctrl.actor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	os, err := ctrl.osService.Checkin(c.Request().Context(), actor, osID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, os, "checkin registrado", http.StatusOK)
}

func (ctrl *OSController) Finalizar(c echo.Context) error {
	osID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var req dto.FinalizarOSDTO
	if err := c.Bind(&req); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "corpo da requisição inválido", err), ctrl.logger)
	}
	if err := c.Validate(&req); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := ctrl.actor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	os, err := ctrl.osService.Finalizar(c.Request().Context(), actor, osID, &req)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, os, "ordem de serviço finalizada", http.StatusOK)
}

func (ctrl *OSController) History(c echo.Context) error {
	osID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	actor, err := ctrl.actor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	eventos, err := ctrl.osService.History(c.Request().Context(), actor, osID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, eventos, "histórico da ordem de serviço", http.StatusOK)
}

func (ctrl *OSController) AddEvidencia(c echo.Context) error {
	osID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var req dto.CreateEvidenciaDTO
	if err := c.Bind(&req); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "corpo da requisição inválido", err), ctrl.logger)
	}
	if err := c.Validate(&req); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := ctrl.actor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	e, err := ctrl.osService.AddEvidencia(c.Request().Context(), actor, osID, &req)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, e, "evidência anexada", http.StatusCreated)
}

func (ctrl *OSController) ListEvidencias(c echo.Context) error {
	osID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	actor, err := ctrl.actor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	evidencias, err := ctrl.osService.ListEvidencias(c.Request().Context(), actor, osID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, evidencias, "evidências da ordem de serviço", http.StatusOK)
}
