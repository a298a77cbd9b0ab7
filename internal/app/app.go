package app

import (
	"context"
	"net/http"

	"family-records-go/internal/config"
	"family-records-go/internal/db"
	accountsdomain "family-records-go/internal/domain/accounts"
	familydomain "family-records-go/internal/domain/family"
	locationdomain "family-records-go/internal/domain/location"
	"family-records-go/internal/export"
	"family-records-go/internal/mailer"
	accountsrepo "family-records-go/internal/repository/postgres/accounts"
	familyrepo "family-records-go/internal/repository/postgres/family"
	locationrepo "family-records-go/internal/repository/postgres/location"
	"family-records-go/internal/transport/httpserver"
	"family-records-go/internal/transport/httpserver/handler"
	authmw "family-records-go/internal/transport/httpserver/middleware"
	"family-records-go/pkg/hashid"
	"family-records-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.New(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	codec, err := hashid.New(cfg.App.HashidSalt, cfg.App.HashidMinLength)
	if err != nil {
		return nil, err
	}

	mail, err := mailer.NewSES(ctx, cfg.Mail, log)
	if err != nil {
		return nil, err
	}

	locations := locationdomain.NewService(locationrepo.NewPostgres(dbConn))
	families := familydomain.NewService(familyrepo.NewPostgres(dbConn), locations, cfg.App.FamilyDeleteCascade)
	accounts := accountsdomain.NewService(accountsrepo.NewPostgres(dbConn), mail, log, cfg.App.BaseURL, cfg.App.ResetTokenTTL)

	exporter := export.NewExporter(cfg.App.MediaDir, log)
	auth := authmw.NewJWTAuth(cfg.Auth)

	log.Info("app: initializing router")
	handlers := handler.New(accounts, locations, families, exporter, codec, auth, cfg.App.PageSize, log)
	router := httpserver.NewRouter(cfg, handlers, auth)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
