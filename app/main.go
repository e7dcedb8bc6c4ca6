package main

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"os-system/internal/controllers"
	"os-system/internal/repositories"
	"os-system/internal/routes"
	"os-system/internal/services"
	"os-system/pkg/config"
	"os-system/pkg/database/postgresql"
	"os-system/pkg/logger"
	"os-system/pkg/middleware"
	"os-system/pkg/service"
	"os-system/pkg/utils"
)

func main() {
	cfg := config.New()
	log := logger.NewLogger()
	defer log.Sync()

	pool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	})
	defer redisClient.Close()

	// repositórios
	osRepo := repositories.NewOSRepository(pool, log)
	historyRepo := repositories.NewOSHistoryRepository(pool)
	checklistRepo := repositories.NewChecklistRepository(pool)
	laudoRepo := repositories.NewLaudoRepository(pool)
	evidenciaRepo := repositories.NewEvidenciaRepository(pool)
	profileRepo := repositories.NewProfileRepository(pool)
	clienteRepo := repositories.NewClienteRepository(pool)
	equipamentoRepo := repositories.NewEquipamentoRepository(pool)
	colaboradorRepo := repositories.NewColaboradorRepository(pool)
	empresaRepo := repositories.NewEmpresaRepository(pool)
	txManager := repositories.NewTxManager(pool)
	profileCache := repositories.NewProfileCache(redisClient, cfg.Cache.ProfileTTL)

	// serviços
	identitySvc := services.NewIdentityService(profileRepo, profileCache, log)
	numerador := services.NewNumeroOSGenerator(osRepo, log)
	osSvc := services.NewOSService(osRepo, historyRepo, checklistRepo, evidenciaRepo, txManager, numerador, log)
	laudoSvc := services.NewLaudoService(laudoRepo, osRepo)
	checklistSvc := services.NewChecklistService(checklistRepo, osRepo)
	clienteSvc := services.NewClienteService(clienteRepo)
	equipamentoSvc := services.NewEquipamentoService(equipamentoRepo)
	colaboradorSvc := services.NewColaboradorService(colaboradorRepo)
	empresaSvc := services.NewEmpresaService(empresaRepo)

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey)
	authMW := middleware.NewAuthMiddleware(jwtSvc, log)

	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewValidator(validator.New())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	routes.InitRouter(e, routes.Controllers{
		OS:          controllers.NewOSController(osSvc, identitySvc, log),
		Laudo:       controllers.NewLaudoController(laudoSvc, checklistSvc, identitySvc, log),
		Cliente:     controllers.NewClienteController(clienteSvc, identitySvc, log),
		Equipamento: controllers.NewEquipamentoController(equipamentoSvc, identitySvc, log),
		Colaborador: controllers.NewColaboradorController(colaboradorSvc, identitySvc, log),
		Empresa:     controllers.NewEmpresaController(empresaSvc, identitySvc, log),
	}, authMW)

	log.Info("servidor iniciando", zap.String("porta", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("servidor encerrado", zap.Error(err))
	}
}
