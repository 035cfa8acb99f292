package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/baitolink/backend/internal/applications"
	"github.com/baitolink/backend/internal/config"
	"github.com/baitolink/backend/internal/infra"
	"github.com/baitolink/backend/internal/jobs"
	"github.com/baitolink/backend/internal/notify"
	"github.com/baitolink/backend/internal/owners"
	"github.com/baitolink/backend/internal/qrsign"
	"github.com/baitolink/backend/internal/qualification"
	"github.com/baitolink/backend/internal/score"
	"github.com/baitolink/backend/internal/security"
	"github.com/baitolink/backend/internal/server/handlers"
	"github.com/baitolink/backend/internal/server/mw"
	"github.com/baitolink/backend/internal/server/resp"
	"github.com/baitolink/backend/internal/store"
	"github.com/baitolink/backend/internal/workers"
)

func NewRouter(cfg config.Config, deps *infra.Infra, signer *qrsign.Signer, logger *zap.Logger) http.Handler {
	if cfg.AppEnv == "local" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RateLimit(deps.Redis, cfg.RateLimitPerSec))

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"*"},
	}))

	r.GET("/health", func(c *gin.Context) {
		resp.OK(c, gin.H{"status": "ok"})
	})

	workersRepo := workers.NewRepo(deps.PG)
	ownersRepo := owners.NewRepo(deps.PG)
	jobsRepo := jobs.NewRepo(deps.PG)
	appsRepo := applications.NewRepo(deps.PG, score.NewLedger())
	notifier := notify.NewPGNotifier(deps.PG)

	jwtm := security.NewJWTManager(cfg.JWTSigningKey, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	refreshStore := store.NewRefreshStore(deps.Redis, cfg.JWTRefreshTTL)

	evaluator := qualification.NewEvaluator(qualification.Policy{})
	appsSvc := applications.NewService(logger, appsRepo, jobsRepo, signer, notifier, cfg.CheckinGPSRadiusM)

	authH := handlers.NewAuthHandler(logger, workersRepo, ownersRepo, jwtm, refreshStore)
	qualH := handlers.NewQualificationHandler(logger, workersRepo, jobsRepo, evaluator)
	appH := handlers.NewApplicationHandler(logger, appsSvc)
	qrH := handlers.NewQRHandler(logger, jobsRepo, signer)

	v1 := r.Group("/v1")

	v1.POST("/auth/login", authH.Login)
	v1.POST("/auth/refresh", authH.Refresh)
	v1.POST("/auth/logout", authH.Logout)

	asWorker := v1.Group("")
	asWorker.Use(mw.RequireWorker(jwtm))
	asWorker.GET("/jobs/:id/qualification", qualH.Get)
	asWorker.POST("/applications/:id/cancel", appH.CancelByWorker)
	asWorker.POST("/applications/:id/checkin", appH.CheckIn)
	asWorker.POST("/applications/:id/checkout", appH.CheckOut)

	asOwner := v1.Group("/owner")
	asOwner.Use(mw.RequireOwner(jwtm))
	asOwner.POST("/applications/:id/cancel", appH.CancelByOwner)
	asOwner.POST("/jobs/:id/qr", qrH.Generate)

	return r
}
