// Package rest exposes the worklog services over an HTTP JSON API built on
// gin.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/access"
	"github.com/dmitrijs2005/worklog/internal/server/calculator"
	"github.com/dmitrijs2005/worklog/internal/server/export"
	"github.com/dmitrijs2005/worklog/internal/server/metrics"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/report"
	"github.com/dmitrijs2005/worklog/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Login(ctx context.Context, username, password string) (*services.Token, error)
	Identify(token string) (access.Identity, error)
	Register(ctx context.Context, username, password, role string) (*models.User, error)
	Remove(ctx context.Context, username string) error
	List(ctx context.Context) ([]models.User, error)
}

type CatalogService interface {
	Create(ctx context.Context, name string, rate decimal.Decimal) (*models.Function, error)
	List(ctx context.Context) ([]models.Function, error)
}

type LedgerService interface {
	Record(ctx context.Context, id access.Identity, start, end time.Time, functionName string) (*models.Session, calculator.Result, error)
}

type ReportService interface {
	Years(ctx context.Context, id access.Identity) ([]int, error)
	Report(ctx context.Context, id access.Identity, f report.Filter) (*report.Report, error)
	Export(ctx context.Context, id access.Identity, f report.Filter, format export.Format) (*export.File, error)
}

// Services groups the business services the API dispatches to.
type Services struct {
	Users   UserService
	Catalog CatalogService
	Ledger  LedgerService
	Reports ReportService
}

type RESTServer struct {
	address  string
	logger   logging.Logger
	metrics  *metrics.Metrics
	location *time.Location
	services Services
}

func NewRESTServer(a string, l logging.Logger, mx *metrics.Metrics, loc *time.Location, s Services) *RESTServer {
	if loc == nil {
		loc = time.Local
	}
	return &RESTServer{
		address:  a,
		logger:   l.With("module", "rest_server"),
		metrics:  mx,
		location: loc,
		services: s,
	}
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *RESTServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting REST server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Router builds the gin engine with every route registered.
func (s *RESTServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())

	r.GET("/ping", s.ping)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := r.Group("/api")
	api.POST("/auth/login", s.login)

	authed := api.Group("")
	authed.Use(s.authenticate())
	{
		authed.GET("/me", s.me)

		authed.GET("/functions", s.listFunctions)
		authed.POST("/functions", s.createFunction)

		authed.POST("/sessions", s.recordSession)

		authed.GET("/reports/years", s.reportYears)
		authed.GET("/reports", s.monthlyReport)
		authed.GET("/reports/export/:format", s.exportReport)
	}

	admin := authed.Group("/users")
	admin.Use(s.requireAdmin())
	{
		admin.GET("", s.listUsers)
		admin.POST("", s.createUser)
		admin.DELETE("/:username", s.deleteUser)
	}

	return r
}
