package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "os-system/pkg/errors"
	"os-system/pkg/types"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParseFilterFromQuery interpreta search/sort[x]/filter[x]/limit/page/offset
// dos query params dos CRUDs simples.
func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:           make(map[string]string),
		Filter:         make(map[string]interface{}),
		Limit:          DefaultLimit,
		Page:           1,
		WithPagination: true,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				filterReq.Limit = MaxLimit
			} else {
				filterReq.Limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = p
		}
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filterReq.Offset = o
		}
	} else {
		filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit
	}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}

		if key == "search" {
			filterReq.Search = vals[0]
			continue
		}

		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			field := key[5 : len(key)-1]
			direction := strings.ToLower(vals[0])
			if direction == "asc" || direction == "desc" {
				filterReq.Sort[field] = direction
			}
			continue
		}

		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field := key[7 : len(key)-1]
			filterReq.Filter[field] = vals[0]
		}
	}

	return filterReq
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{Status: true, Message: message}

	if len(total) > 0 {
		filter := ParseFilterFromQuery(ctx.Request().URL.Query())
		totalPages := 0
		if filter.Limit > 0 {
			totalPages = (int(total[0]) + filter.Limit - 1) / filter.Limit
		}
		response.Body = map[string]interface{}{
			"list": body,
			"pagination": types.Pagination{
				TotalCount: total[0],
				Page:       filter.Page,
				Limit:      filter.Limit,
				TotalPages: totalPages,
			},
		}
	} else {
		response.Body = body
	}

	return ctx.JSON(code, response)
}

// statusFor mapeia a taxonomia de erros para códigos HTTP. Erros fora da
// taxonomia viram 500 genérico sem vazar detalhe interno.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, apperrors.ErrCabecalhoAuthVazio),
		errors.Is(err, apperrors.ErrCabecalhoAuthInvalido),
		errors.Is(err, apperrors.ErrTokenInvalido),
		errors.Is(err, apperrors.ErrTokenExpirado),
		errors.Is(err, apperrors.ErrMetodoAssinaturaInvalido),
		errors.Is(err, apperrors.ErrNaoAutenticado),
		errors.Is(err, apperrors.ErrPerfilNaoEncontrado),
		errors.Is(err, apperrors.ErrUserIDNaoEncontrado):
		return http.StatusUnauthorized, true
	case errors.Is(err, apperrors.ErrAcessoNegado),
		errors.Is(err, apperrors.ErrTecnicoNaoAtribuido):
		return http.StatusForbidden, true
	case errors.Is(err, apperrors.ErrNaoEncontrado):
		return http.StatusNotFound, true
	case errors.Is(err, apperrors.ErrConflito),
		errors.Is(err, apperrors.ErrTecnicoOcupado):
		return http.StatusConflict, true
	case errors.Is(err, apperrors.ErrOSImutavel):
		return http.StatusUnprocessableEntity, true
	}
	return 0, false
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("erro HTTP",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}
		return c.JSON(httpErr.Code, &HTTPResponse{Status: false, Message: httpErr.Message})
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusUnprocessableEntity, &HTTPResponse{Status: false, Message: validationErr.Message})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("campo '%s' falhou na regra '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, &HTTPResponse{
			Status:  false,
			Message: "erro de validação: " + strings.Join(msgs, "; "),
		})
	}

	if code, ok := statusFor(err); ok {
		return c.JSON(code, &HTTPResponse{Status: false, Message: err.Error()})
	}

	logger.Error("erro inesperado", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, &HTTPResponse{
		Status:  false,
		Message: "erro interno do servidor",
	})
}
