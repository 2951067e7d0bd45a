package main

import (
	"io"
	"log"
	"os"

	"github.com/minhquan-ng/auth-capstone-api/internal/config"
	"github.com/minhquan-ng/auth-capstone-api/internal/logging"
	"github.com/minhquan-ng/auth-capstone-api/internal/repository/postgres"
	"github.com/minhquan-ng/auth-capstone-api/internal/service"
	"github.com/minhquan-ng/auth-capstone-api/internal/token"
	transporthttp "github.com/minhquan-ng/auth-capstone-api/internal/transport/http"
	"github.com/minhquan-ng/auth-capstone-api/internal/transport/mail"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewTCPWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash mirror disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepo(db)
	resetRepo := postgres.NewResetCodeRepo(db)

	mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	tokens := token.NewManager(cfg.AccessTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	auth := service.NewAuthService(userRepo, resetRepo, mailer, tokens, cfg.PasswordResetTTL)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterAuth(e, auth, cfg.RefreshTokenTTL)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
