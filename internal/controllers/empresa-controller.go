package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"os-system/internal/services"
	apperrors "os-system/pkg/errors"
	"os-system/pkg/utils"
)

type EmpresaController struct {
	empresaService  services.EmpresaService
	identityService services.IdentityService
	logger          *zap.Logger
}

func NewEmpresaController(empresaService services.EmpresaService, identityService services.IdentityService, logger *zap.Logger) *EmpresaController {
	return &EmpresaController{empresaService: empresaService, identityService: identityService, logger: logger}
}

// Atual devolve a empresa efetiva do usuário (a impersonada, quando houver).
func (ctrl *EmpresaController) Atual(c echo.Context) error {
	actor, err := ctrl.identityService.Resolve(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	empresa, err := ctrl.empresaService.Atual(c.Request().Context(), actor)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, empresa, "empresa atual", http.StatusOK)
}

func (ctrl *EmpresaController) List(c echo.Context) error {
	empresas, err := ctrl.empresaService.List(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, empresas, "empresas listadas", http.StatusOK)
}

type impersonateRequest struct {
	EmpresaID *uuid.UUID `json:"empresa_id"`
}

// Impersonate troca a empresa efetiva de um admin de plataforma; corpo com
// empresa_id nulo encerra a impersonação.
func (ctrl *EmpresaController) Impersonate(c echo.Context) error {
	var req impersonateRequest
	if err := c.Bind(&req); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "corpo da requisição inválido", err), ctrl.logger)
	}

	if err := ctrl.identityService.Impersonate(c.Request().Context(), req.EmpresaID); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "impersonação atualizada", http.StatusOK)
}
