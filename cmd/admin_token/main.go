package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"ceylon_travel/internal/config"
	"ceylon_travel/internal/lib/jwt"
)

// Выпускает admin-токен для мутирующих маршрутов.
//
//	CONFIG_PATH=./config/local.yaml go run ./cmd/admin_token -subject editor -ttl 24h
func main() {
	var subject string
	var ttl time.Duration

	flag.StringVar(&subject, "subject", "admin", "token subject")
	flag.DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")

	cfg := config.MustLoad()

	if cfg.Auth.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "auth.jwt_secret is empty: the admin gate is disabled")
		os.Exit(1)
	}

	token, err := jwt.NewToken(subject, cfg.Auth.JWTSecret, ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to sign token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
