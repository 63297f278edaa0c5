// Package logging configures log/slog loggers for reqparam.
//
// Components accept a *slog.Logger through an option. When none is given they
// use Nop, so the validation engine stays silent unless a caller opts in.
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	validator, err := validation.NewParameterValidator(schema, validation.WithLogger(logger))
//
// The CLI builds its logger from --log-level/--log-format, falling back to
// REQPARAM_LOG_LEVEL and REQPARAM_LOG_FORMAT (see FromEnv).
package logging
