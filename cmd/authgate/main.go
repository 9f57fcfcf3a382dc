package main

import (
	"os"

	"github.com/yujinlab/authgate/internal/config"
	"github.com/yujinlab/authgate/internal/database"
	"github.com/yujinlab/authgate/internal/handler"
	"github.com/yujinlab/authgate/internal/httpserver"
	"github.com/yujinlab/authgate/internal/logger"
	"github.com/yujinlab/authgate/internal/middleware"
	"github.com/yujinlab/authgate/internal/oauth"
	"github.com/yujinlab/authgate/internal/repository"
	"github.com/yujinlab/authgate/internal/token"
)

func main() {
	// Initialize basic dependencies.
	conf := config.Load()
	logger.Init(os.Stdout, conf.Logger.Level, conf.Logger.Pretty)

	// The signing key is derived exactly once, here. A bad secret is a
	// startup failure, never a per-request one.
	issuer, err := token.NewIssuer(conf.JWT.Secret, conf.JWT.Expiry)
	if err != nil {
		panic("failed to create token issuer: " + err.Error())
	}

	// Database connection and schema.
	db, err := database.Connect(conf)
	if err != nil {
		panic("failed to connect to the database: " + err.Error())
	}
	if err := database.Migrate(db); err != nil {
		panic("failed to run database migrations: " + err.Error())
	}
	repo := repository.NewRepository(db)

	// All available OAuth providers.
	registry := oauth.NewRegistry(
		oauth.NewGoogle(conf.Google),
		oauth.NewKakao(conf.Kakao),
		oauth.NewNaver(conf.Naver),
	)

	// Initialize the HTTP server.
	server := &httpserver.Server{
		Config:     conf,
		Middleware: middleware.Middleware{},
		Handler:    handler.NewHandler(conf, registry, issuer, repo),
	}

	// This internally calls ListenAndServe.
	// This is a blocking call and will panic if the server is unable to start.
	server.Start()
}
