// Package logger builds the *slog.Logger instances used across mdscore and
// provides helper constructors for the attributes the core logs repeatedly.
//
// New accepts functional options selecting output format, level and static
// attributes. Library types (the Store, the API client, the OIDC flow) never
// log to a global logger: they take a *slog.Logger through a WithLogger option
// and fall back to Discard.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatJSON),
//	    logger.WithAttr(logger.Component("mdsctl")),
//	)
//	log.Info("auth items parsed", logger.Count(len(items)), logger.Language("fin"))
//
// Helpers such as Error and Language return an empty slog.Attr for zero
// inputs, so they can be passed unconditionally.
package logger
