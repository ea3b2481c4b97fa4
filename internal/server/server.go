package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/tipfolio/internal/assistant"
	"github.com/smallbiznis/tipfolio/internal/clock"
	"github.com/smallbiznis/tipfolio/internal/config"
	"github.com/smallbiznis/tipfolio/internal/importer"
	obslogger "github.com/smallbiznis/tipfolio/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/tipfolio/internal/observability/metrics"
	obstracing "github.com/smallbiznis/tipfolio/internal/observability/tracing"
	"github.com/smallbiznis/tipfolio/internal/projection"
	statsdomain "github.com/smallbiznis/tipfolio/internal/stats/domain"
	subscriptiondomain "github.com/smallbiznis/tipfolio/internal/subscription/domain"
	tipdomain "github.com/smallbiznis/tipfolio/internal/tip/domain"
	userdomain "github.com/smallbiznis/tipfolio/internal/user/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) {
		s.RegisterAPIRoutes()
	}),
	fx.Invoke(RunHTTP),
)

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	clock           clock.Clock
	userSvc         userdomain.Service
	tipSvc          tipdomain.Service
	statsSvc        statsdomain.Service
	projectionSvc   projection.Service
	assistantSvc    assistant.Service
	subscriptionSvc subscriptiondomain.Service
	importer        *importer.Orchestrator
}

type ServerParams struct {
	fx.In

	Engine          *gin.Engine
	Config          config.Config
	Clock           clock.Clock
	UserSvc         userdomain.Service
	TipSvc          tipdomain.Service
	StatsSvc        statsdomain.Service
	ProjectionSvc   projection.Service
	AssistantSvc    assistant.Service
	SubscriptionSvc subscriptiondomain.Service
	Importer        *importer.Orchestrator
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:          p.Engine,
		cfg:             p.Config,
		clock:           p.Clock,
		userSvc:         p.UserSvc,
		tipSvc:          p.TipSvc,
		statsSvc:        p.StatsSvc,
		projectionSvc:   p.ProjectionSvc,
		assistantSvc:    p.AssistantSvc,
		subscriptionSvc: p.SubscriptionSvc,
		importer:        p.Importer,
	}
}

func NewEngine(cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obstracing.GinMiddleware())
	r.Use(obslogger.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func (s *Server) RegisterAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/signup", s.HandleSignup)
	v1.POST("/webhooks/payments/:provider", s.HandlePaymentWebhook)

	authed := v1.Group("")
	authed.Use(s.AuthMiddleware())
	{
		authed.POST("/tips", s.HandleRecordTip)
		authed.GET("/tips", s.HandleListTips)
		authed.DELETE("/tips/:date", s.HandleDeleteTip)
		authed.POST("/tips/import", s.HandleImport)
		authed.POST("/tips/import/preview", s.HandleImportPreview)
		authed.GET("/stats/summary", s.HandleStatsSummary)

		premium := authed.Group("")
		premium.Use(s.PremiumMiddleware())
		{
			premium.GET("/projections", s.HandleProjections)
			premium.POST("/assistant", s.HandleAssistant)
		}
	}
}

func RunHTTP(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
