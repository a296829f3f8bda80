package app

import (
	"fmt"
	"log"
	"strings"

	"trademart/internal/config"
	"trademart/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	f.Use(middleware.NewErrorMiddleware(logger).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(logger, container.Metrics).Middleware())

	container.Routes.Register(f)

	app := &App{Fiber: f, Container: container}
	return app, container.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
