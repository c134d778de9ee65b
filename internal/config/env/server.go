package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type httpServerEnv struct {
	Address         string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

type httpServer struct {
	raw httpServerEnv
}

func NewHTTPServerConfig() (*httpServer, error) {
	var raw httpServerEnv
	if err := env.ParseWithOptions(&raw, options()); err != nil {
		return nil, err
	}
	return &httpServer{raw: raw}, nil
}

func (cfg *httpServer) Address() string                { return cfg.raw.Address }
func (cfg *httpServer) ReadTimeout() time.Duration     { return cfg.raw.ReadTimeout }
func (cfg *httpServer) ShutdownTimeout() time.Duration { return cfg.raw.ShutdownTimeout }
