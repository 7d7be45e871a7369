// Package app assembles the service graph shared by the HTTP server and the CLI.
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/classifier"
	"github.com/spec-kit/complaint-desk/internal/config"
	"github.com/spec-kit/complaint-desk/internal/events"
	"github.com/spec-kit/complaint-desk/internal/notification"
	"github.com/spec-kit/complaint-desk/internal/observability"
	"github.com/spec-kit/complaint-desk/internal/persistence"
	"github.com/spec-kit/complaint-desk/internal/repository"
	"github.com/spec-kit/complaint-desk/internal/repository/memory"
	"github.com/spec-kit/complaint-desk/internal/service"
	"github.com/spec-kit/complaint-desk/internal/worker"
)

// Container holds the wired services.
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Postgres   *persistence.Postgres
	Redis      *persistence.Redis
	Store      repository.Store
	Classifier *classifier.Adapter
	Dispatcher events.Dispatcher

	Complaints  *service.ComplaintService
	Departments *service.DepartmentService
	Feedback    *service.FeedbackService
	Analytics   *service.AnalyticsService
	Auth        *service.AuthService
	Audit       *service.AuditService
}

// New connects backing stores and wires services. Without a Postgres DSN the
// in-memory store is used.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, err
	}

	var store repository.Store
	if pg.Configured() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		store = repository.NewPostgresStore(pg.PoolHandle())
	} else {
		store = memory.NewStore()
	}

	metrics := observability.NewMetrics()
	model := classifier.New(cfg.Classifier.ModelPath, logger)
	sink := notification.NewSink(cfg.Mail, logger, metrics)
	dispatcher := events.NewInMemoryDispatcher(logger)

	audit := service.NewAuditService(dispatcher, store.Notes, logger)
	worker.StartEventWorkers(audit)

	return &Container{
		Config:     cfg,
		Logger:     logger,
		Metrics:    metrics,
		Postgres:   pg,
		Redis:      persistence.NewRedis(cfg.Redis, logger),
		Store:      store,
		Classifier: model,
		Dispatcher: dispatcher,
		Complaints: service.NewComplaintService(service.ComplaintDependencies{
			ComplaintRepo:  store.Complaints,
			DepartmentRepo: store.Departments,
			UserRepo:       store.Users,
			NoteRepo:       store.Notes,
			Classifier:     model,
			Notifier:       sink,
			Dispatcher:     dispatcher,
			Metrics:        metrics,
			Logger:         logger,
			Lifecycle:      cfg.Lifecycle,
			Mail:           cfg.Mail,
		}),
		Departments: service.NewDepartmentService(service.DepartmentDependencies{
			DepartmentRepo: store.Departments,
			ComplaintRepo:  store.Complaints,
			Logger:         logger,
		}),
		Feedback: service.NewFeedbackService(service.FeedbackDependencies{
			FeedbackRepo:  store.Feedback,
			ComplaintRepo: store.Complaints,
			Dispatcher:    dispatcher,
			Logger:        logger,
		}),
		Analytics: service.NewAnalyticsService(service.AnalyticsDependencies{
			ComplaintRepo:  store.Complaints,
			DepartmentRepo: store.Departments,
			FeedbackRepo:   store.Feedback,
			Lifecycle:      cfg.Lifecycle,
		}),
		Auth:  service.NewAuthService(cfg.Auth, service.AuthDependencies{UserRepo: store.Users}),
		Audit: audit,
	}, nil
}

// Scheduler returns the periodic sweep runner configured for this container.
func (c *Container) Scheduler() *worker.Scheduler {
	return worker.NewScheduler(c.Complaints, c.Redis, c.Config.Lifecycle.SweepInterval(), c.Logger)
}

// Close releases backing connections.
func (c *Container) Close() {
	c.Redis.Close()
	c.Postgres.Close()
}
