package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	glogger "gorm.io/gorm/logger"
)

// slowThreshold marks a statement as slow in the gorm trace log.
const slowThreshold = 200 * time.Millisecond

// GormLogger routes gorm's logging through zerolog.
type GormLogger struct {
	log           zerolog.Logger
	level         glogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger wraps log for use as gorm.Config.Logger. Statement traces
// are only written at debug level.
func NewGormLogger(log zerolog.Logger, slow time.Duration) glogger.Interface {
	return &GormLogger{
		log:           log,
		level:         glogger.Warn,
		slowThreshold: slow,
	}
}

func (l *GormLogger) LogMode(level glogger.LogLevel) glogger.Interface {
	next := *l
	next.level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= glogger.Info {
		l.log.Info().Interface("data", data).Msg("gorm: " + msg)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= glogger.Warn {
		l.log.Warn().Interface("data", data).Msg("gorm: " + msg)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= glogger.Error {
		l.log.Error().Interface("data", data).Msg("gorm: " + msg)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= glogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, glogger.ErrRecordNotFound):
		sql, rows := fc()
		l.log.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("gorm trace error")

	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		sql, rows := fc()
		l.log.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("gorm slow query")

	default:
		if e := l.log.Debug(); e.Enabled() {
			sql, rows := fc()
			e.Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("gorm trace")
		}
	}
}
