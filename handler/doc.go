// Package handler adapts modlog to the logging interfaces other code is
// already written against.
//
//   - SlogHandler implements log/slog.Handler, so slog.New can use a
//     modlog logger as its backend.
//   - ZapCore implements zapcore.Core, so a *zap.Logger can write
//     through modlog.
//
// Both adapters render one log call per record: the message, followed
// by " key=value" pairs. Filtering, the header and the sink stay with
// the wrapped logger, so reconfiguring it affects the adapters as well.
package handler
