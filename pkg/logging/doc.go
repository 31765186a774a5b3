// Package logging builds the *slog.Logger values used across tplhttp.
//
// Components accept a logger through an option and fall back to Nop when
// none is given, so library callers never see output they did not ask for:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	engine, err := jinja.New(jinja.WithBaseDir("templates"), jinja.WithLogger(logger))
package logging
