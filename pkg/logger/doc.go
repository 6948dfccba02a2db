// Package logger builds the process *slog.Logger from functional options and
// provides attribute helpers that keep key names consistent across packages.
//
// New picks the JSON or text slog handler, applies static attributes and, when
// context extractors are registered, wraps the handler so that every record
// also carries request-scoped values such as the request id:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.ErrorContext(ctx, "failed to load translations",
//		logger.Component("i18n"),
//		logger.Namespace("contact"),
//		logger.Error(err),
//	)
package logger
