package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/linguasign/certiq/internal/audit"
	auditdomain "github.com/linguasign/certiq/internal/audit/domain"
	"github.com/linguasign/certiq/internal/config"
	"github.com/linguasign/certiq/internal/holiday"
	"github.com/linguasign/certiq/internal/quote"
	quotedomain "github.com/linguasign/certiq/internal/quote/domain"
	"github.com/linguasign/certiq/internal/settings"
	"github.com/linguasign/certiq/internal/tracing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	audit.Module,
	settings.Module,
	holiday.Module,
	quote.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log.Named("http")))
	r.Use(tracing.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, _ *sdktrace.TracerProvider) *gin.Engine {
	return NewEngine(log)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
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

type Server struct {
	engine   *gin.Engine
	cfg      config.Config
	db       *gorm.DB
	genID    *snowflake.Node
	quoteSvc quotedomain.Service
	auditSvc auditdomain.Service
}

type ServerParams struct {
	fx.In

	Gin      *gin.Engine
	Cfg      config.Config
	DB       *gorm.DB
	GenID    *snowflake.Node
	QuoteSvc quotedomain.Service
	AuditSvc auditdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:   p.Gin,
		cfg:      p.Cfg,
		db:       p.DB,
		genID:    p.GenID,
		quoteSvc: p.QuoteSvc,
		auditSvc: p.AuditSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	quotes := api.Group("/quotes")
	{
		quotes.GET("/:quoteId", s.GetQuote)
		quotes.GET("/:quoteId/activity", s.ListQuoteActivity)
		quotes.POST("/:quoteId/calculate-delivery", s.CalculateDelivery)
		quotes.POST("/:quoteId/line-items/manual", s.CreateManualLineItem)
		quotes.PUT("/:quoteId/line-items/:lineItemId", s.UpdateLineItem)
		quotes.PUT("/:quoteId/state", s.UpdateQuoteState)
	}
}
