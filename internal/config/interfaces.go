package config

import "time"

type Storage interface {
	Path() string
}

type Server interface {
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
}

type Script interface {
	Timeout() time.Duration
	MaxSteps() uint64
	DefaultUnits() string
}

type Logger interface {
	Level() string
	AsJSON() bool
}
