package envconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type scriptEnv struct {
	Timeout      time.Duration `env:"SCRIPT_TIMEOUT" envDefault:"5s"`
	MaxSteps     uint64        `env:"SCRIPT_MAX_STEPS" envDefault:"1000000"`
	DefaultUnits string        `env:"DEFAULT_UNITS" envDefault:"mm"`
}

type script struct {
	raw scriptEnv
}

func NewScriptConfig() (*script, error) {
	var raw scriptEnv
	if err := env.ParseWithOptions(&raw, options()); err != nil {
		return nil, err
	}
	switch raw.DefaultUnits {
	case "mm", "cm", "m":
	default:
		return nil, fmt.Errorf("DEFAULT_UNITS: unsupported units %q", raw.DefaultUnits)
	}
	if raw.Timeout <= 0 {
		return nil, fmt.Errorf("SCRIPT_TIMEOUT must be positive, got %s", raw.Timeout)
	}
	return &script{raw: raw}, nil
}

func (cfg *script) Timeout() time.Duration { return cfg.raw.Timeout }
func (cfg *script) MaxSteps() uint64       { return cfg.raw.MaxSteps }
func (cfg *script) DefaultUnits() string   { return cfg.raw.DefaultUnits }
