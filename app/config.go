package app

import (
	"github.com/dmitrymomot/ambient/core/cookie"
	"github.com/dmitrymomot/ambient/core/dispatcher"
	"github.com/dmitrymomot/ambient/core/logger"
	"github.com/dmitrymomot/ambient/core/server"
	"github.com/dmitrymomot/ambient/core/static"
)

// Config is the application configuration, loaded from the environment.
type Config struct {
	Logger     logger.Config
	Dispatcher dispatcher.Config
	Server     server.Config
	Static     static.Config
	Cookie     cookie.Config

	StaticPrefix string `env:"STATIC_PREFIX" envDefault:"/static"`
	AdminToken   string `env:"ADMIN_TOKEN"`
	Tracing      bool   `env:"HTTP_TRACING" envDefault:"true"`
}
