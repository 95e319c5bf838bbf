package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/conduit/internal/articleservice"
	"github.com/sushihentaime/conduit/internal/authservice"
	"github.com/sushihentaime/conduit/internal/common"
	"github.com/sushihentaime/conduit/internal/docstore"
	"github.com/sushihentaime/conduit/internal/mailservice"
	"github.com/sushihentaime/conduit/internal/userservice"
)

type application struct {
	config         *Config
	logger         *slog.Logger
	store          *docstore.Store
	broker         *common.MessageBroker
	auth           *authservice.Authenticator
	userService    *userservice.UserService
	articleService *articleservice.ArticleService
	mailService    *mailservice.MailService
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, err := docstore.Open(cfg.dsn(), 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	broker, err := common.NewMessageBroker(cfg.amqpURI())
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupUserExchange(broker)
	if err != nil {
		logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	userService := userservice.NewUserService(store, broker)

	app := &application{
		config:         cfg,
		logger:         logger,
		store:          store,
		broker:         broker,
		auth:           authservice.New(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute),
		userService:    userService,
		articleService: articleservice.NewArticleService(store, userService, common.NewCache(time.Minute, 5*time.Minute)),
		mailService:    mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger),
	}
	defer app.mailService.Close()

	app.mailService.SendWelcomeEmail()

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
