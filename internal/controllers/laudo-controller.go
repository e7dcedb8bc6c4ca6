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

type LaudoController struct {
	laudoService     services.LaudoService
	checklistService services.ChecklistService
	identityService  services.IdentityService
	logger           *zap.Logger
}

func NewLaudoController(laudoService services.LaudoService, checklistService services.ChecklistService, identityService services.IdentityService, logger *zap.Logger) *LaudoController {
	return &LaudoController{
		laudoService:     laudoService,
		checklistService: checklistService,
		identityService:  identityService,
		logger:           logger,
	}
}

func (ctrl *LaudoController) FindLaudo(c echo.Context) error {
	osID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	laudo, err := ctrl.laudoService.Find(c.Request().Context(), actor, osID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, laudo, "laudo encontrado", http.StatusOK)
}

func (ctrl *LaudoController) UpsertLaudo(c echo.Context) error {
	osID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var req dto.UpsertLaudoDTO
	if err := c.Bind(&req); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "corpo da requisição inválido", err), ctrl.logger)
	}

	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	laudo, err := ctrl.laudoService.Upsert(c.Request().Context(), actor, osID, &req)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, laudo, "laudo salvo", http.StatusOK)
}

func (ctrl *LaudoController) ListChecklist(c echo.Context) error {
	osID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	itens, err := ctrl.checklistService.List(c.Request().Context(), actor, osID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, itens, "checklist da ordem de serviço", http.StatusOK)
}

func (ctrl *LaudoController) UpdateChecklistItem(c echo.Context) error {
	osID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	itemID, err := parseID(c, "itemId")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var req dto.UpdateChecklistItemDTO
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

	item, err := ctrl.checklistService.UpdateStatus(c.Request().Context(), actor, osID, itemID, &req)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, item, "item do checklist atualizado", http.StatusOK)
}
