package mdscore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mydatashare/mdscore/pkg/config"
	"github.com/mydatashare/mdscore/pkg/logger"
	"github.com/mydatashare/mdscore/pkg/redis"
)

// Env is the environment of a process built with FromEnv.
type Env struct {
	config.Config

	Redis redis.Config

	LogLevel  string        `env:"MDS_LOG_LEVEL" envDefault:"info"`
	LogFormat logger.Format `env:"MDS_LOG_FORMAT" envDefault:"text"`
}

// LoadEnv reads Env from the environment and the given dotenv files.
func LoadEnv(files ...string) (Env, error) {
	var e Env
	if err := config.Load(&e, files...); err != nil {
		return Env{}, err
	}
	switch e.LogFormat {
	case logger.FormatJSON, logger.FormatText:
	default:
		return Env{}, fmt.Errorf("%w: log format %q", ErrInvalidConfig, e.LogFormat)
	}
	return e, nil
}

// Logger builds the logger the environment asks for.
func (e Env) Logger(opts ...logger.Option) *slog.Logger {
	return logger.New(append([]logger.Option{
		logger.WithLevelName(e.LogLevel),
		logger.WithFormat(e.LogFormat),
	}, opts...)...)
}

// FromEnv builds a client from e. A configured Redis URL makes Redis the
// authorization state backend; the connection is closed by Client.Close.
func FromEnv(ctx context.Context, e Env, opts ...Option) (*Client, error) {
	if err := e.Config.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	if e.Redis.Enabled() {
		conn, err := redis.Connect(ctx, e.Redis)
		if err != nil {
			return nil, errors.Join(ErrStorageUnavailable, err)
		}
		opts = append([]Option{WithStorage(redis.NewStorage(conn, e.Redis.KeyTTL))}, opts...)
	}

	return New(e.Config, opts...)
}

var (
	defaultOnce   sync.Once
	defaultClient *Client
	defaultErr    error
)

// Default returns the process-wide client built from the environment on the
// first call. Later calls return the same client or the same error.
// Libraries should take a *Client instead of calling Default.
func Default() (*Client, error) {
	defaultOnce.Do(func() {
		e, err := LoadEnv()
		if err != nil {
			defaultErr = err
			return
		}
		defaultClient, defaultErr = FromEnv(context.Background(), e, WithLogger(e.Logger()))
	})
	return defaultClient, defaultErr
}
