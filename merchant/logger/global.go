package logger

import (
	"log/slog"
	"time"
)

// LogTrade logs a workflow step for a single deposit or withdrawal.
func LogTrade(msg string, kind string, id int64, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "trade"),
		slog.String("kind", kind),
		slog.Int64("trade_id", id),
	}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogMarket logs marketplace calls with their latency.
func LogMarket(op string, duration time.Duration, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "market"),
		slog.String("op", op),
		slog.Duration("took", duration),
	}
	if err != nil {
		slog.Warn("Marketplace call failed", append(baseAttrs, append(attrs, slog.Any("error", err))...)...)
		return
	}
	slog.Debug("Marketplace call", append(baseAttrs, attrs...)...)
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
