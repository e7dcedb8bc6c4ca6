package routes

import (
	"github.com/labstack/echo/v4"

	"os-system/internal/controllers"
	"os-system/pkg/middleware"
)

type Controllers struct {
	OS          *controllers.OSController
	Laudo       *controllers.LaudoController
	Cliente     *controllers.ClienteController
	Equipamento *controllers.EquipamentoController
	Colaborador *controllers.ColaboradorController
	Empresa     *controllers.EmpresaController
}

func InitRouter(e *echo.Echo, ctrl Controllers, authMW *middleware.AuthMiddleware) {
	api := e.Group("/api", authMW.Auth)

	ordens := api.Group("/ordens-servico")
	ordens.POST("", ctrl.OS.Create)
	ordens.GET("", ctrl.OS.List)
	ordens.GET("/:id", ctrl.OS.FindByID)
	ordens.PATCH("/:id", ctrl.OS.Update)
	ordens.DELETE("/:id", ctrl.OS.Delete)

	ordens.POST("/:id/aceitar", ctrl.OS.Aceitar)
	ordens.POST("/:id/recusar", ctrl.OS.Recusar)
	ordens.POST("/:id/deslocamento", ctrl.OS.IniciarDeslocamento)
	ordens.POST("/:id/checkin", ctrl.OS.Checkin)
	ordens.POST("/:id/finalizar", ctrl.OS.Finalizar)

	ordens.GET("/:id/historico", ctrl.OS.History)
	ordens.GET("/:id/evidencias", ctrl.OS.ListEvidencias)
	ordens.POST("/:id/evidencias", ctrl.OS.AddEvidencia)

	ordens.GET("/:id/laudo", ctrl.Laudo.FindLaudo)
	ordens.POST("/:id/laudo", ctrl.Laudo.UpsertLaudo)
	ordens.PATCH("/:id/laudo", ctrl.Laudo.UpsertLaudo)
	ordens.GET("/:id/checklist", ctrl.Laudo.ListChecklist)
	ordens.PATCH("/:id/checklist/:itemId", ctrl.Laudo.UpdateChecklistItem)

	clientes := api.Group("/clientes")
	clientes.POST("", ctrl.Cliente.Create)
	clientes.GET("", ctrl.Cliente.List)
	clientes.GET("/:id", ctrl.Cliente.FindByID)
	clientes.PATCH("/:id", ctrl.Cliente.Update)
	clientes.DELETE("/:id", ctrl.Cliente.Delete)

	equipamentos := api.Group("/equipamentos")
	equipamentos.POST("", ctrl.Equipamento.Create)
	equipamentos.GET("", ctrl.Equipamento.List)
	equipamentos.GET("/:id", ctrl.Equipamento.FindByID)
	equipamentos.PATCH("/:id", ctrl.Equipamento.Update)
	equipamentos.DELETE("/:id", ctrl.Equipamento.Delete)

	colaboradores := api.Group("/colaboradores")
	colaboradores.POST("", ctrl.Colaborador.Create)
	colaboradores.GET("", ctrl.Colaborador.List)
	colaboradores.GET("/:id", ctrl.Colaborador.FindByID)
	colaboradores.PATCH("/:id", ctrl.Colaborador.Update)
	colaboradores.DELETE("/:id", ctrl.Colaborador.Delete)

	empresas := api.Group("/empresas")
	empresas.GET("", ctrl.Empresa.List)
	empresas.GET("/atual", ctrl.Empresa.Atual)
	empresas.POST("/impersonar", ctrl.Empresa.Impersonate)
}
