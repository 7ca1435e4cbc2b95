package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/greenpointracing/lapcut/internal/logger"
	"github.com/greenpointracing/lapcut/pkg/ldx"
)

var (
	markerPath string
	markerUnit string
	logLevel   string
	logFormat  string
	debug      bool
	jsonOutput bool
)

func markerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "markers",
			Aliases:     []string{"x"},
			Usage:       "path to .ldx marker file",
			Destination: &markerPath,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "unit",
			Usage:       "marker time unit (seconds, microseconds)",
			Value:       "seconds",
			Destination: &markerUnit,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

// loggingContext builds the process logger from the logging flags and
// attaches it to the context for the command action.
func loggingContext(ctx context.Context) context.Context {
	level := logLevel
	if debug {
		level = "debug"
	}
	return logger.WithContext(ctx, logger.Setup(logFormat, level))
}

func timeUnit() (ldx.TimeUnit, error) {
	switch markerUnit {
	case "", "seconds":
		return ldx.Seconds, nil
	case "microseconds":
		return ldx.Microseconds, nil
	default:
		return ldx.Seconds, cli.Exit("unit must be seconds or microseconds", 2)
	}
}
