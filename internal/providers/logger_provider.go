package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"wedcms/internal/structures"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
)

// GetLogTypeByRequestType maps an HTTP method to a log stream.
// Everything that is not a POST lands in the read-side stream.
func GetLogTypeByRequestType(method string) TypeEnum {
	if method == "POST" {
		return TypePost
	}
	return TypeGet
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type ZeroLogProvider struct {
	appLog    zerolog.Logger
	accessLog zerolog.Logger
	files     []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	mode := os.FileMode(conf.Logger.Mode)
	if mode == 0 {
		mode = 0644
	}

	if err := os.MkdirAll(conf.Logger.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	provider := &ZeroLogProvider{}
	for _, name := range []string{"app.log", "access.log"} {
		path := filepath.Join(conf.Logger.Dir, name)
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, mode)
		if err != nil {
			provider.Close()
			return nil, fmt.Errorf("open log file %s: %w", path, err)
		}
		provider.files = append(provider.files, file)
	}

	provider.appLog = zerolog.New(provider.files[0]).Level(level).With().Timestamp().Logger()
	provider.accessLog = zerolog.New(provider.files[1]).Level(level).With().Timestamp().Logger()

	return provider, nil
}

func (l *ZeroLogProvider) pick(t TypeEnum) *zerolog.Logger {
	if t == TypeApp {
		return &l.appLog
	}
	return &l.accessLog
}

func (l *ZeroLogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.pick(t).Error().Msgf(format, args...)
}

func (l *ZeroLogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.pick(t).Warn().Msgf(format, args...)
}

func (l *ZeroLogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.pick(t).Info().Msgf(format, args...)
}

func (l *ZeroLogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.pick(t).Debug().Msgf(format, args...)
}

func (l *ZeroLogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.pick(t).Fatal().Msgf(format, args...)
}

func (l *ZeroLogProvider) Close() {
	for _, f := range l.files {
		_ = f.Close()
	}
	l.files = nil
}
