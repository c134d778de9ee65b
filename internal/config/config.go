// Package config loads process configuration from PLANCAD_* environment
// variables. A .env file is read first when PLANCAD_ENV=local.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	envconfig "github.com/alexanderramin/plancad/internal/config/env"
	"github.com/alexanderramin/plancad/internal/llm"
)

var cfg *config

type config struct {
	Storage Storage
	Server  Server
	Script  Script
	Logger  Logger
	LLM     llm.LLMConfig
}

func Load(path ...string) error {
	const op = "config.Load"

	if shouldLoadDotenv() {
		if err := godotenv.Load(path...); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: load .env: %w", op, err)
		}
	}

	storageCfg, err := envconfig.NewStorageConfig()
	if err != nil {
		return fmt.Errorf("%s Storage: %w", op, err)
	}

	serverCfg, err := envconfig.NewHTTPServerConfig()
	if err != nil {
		return fmt.Errorf("%s Server: %w", op, err)
	}

	scriptCfg, err := envconfig.NewScriptConfig()
	if err != nil {
		return fmt.Errorf("%s Script: %w", op, err)
	}

	loggerCfg, err := envconfig.NewLoggerConfig()
	if err != nil {
		return fmt.Errorf("%s Logger: %w", op, err)
	}

	llmCfg, err := envconfig.NewLLMConfig()
	if err != nil {
		return fmt.Errorf("%s LLM: %w", op, err)
	}

	cfg = &config{
		Storage: storageCfg,
		Server:  serverCfg,
		Script:  scriptCfg,
		Logger:  loggerCfg,
		LLM:     llmCfg,
	}

	return nil
}

// C returns the loaded configuration. Load must have succeeded first.
func C() *config { return cfg }

func shouldLoadDotenv() bool {
	return os.Getenv(envconfig.Prefix+"ENV") == "local"
}
