package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/greenpointracing/lapcut/internal/extract"
)

func extractCmd() *cli.Command {
	var (
		containerPath string
		outDir        string
		lapNumber     int64
		fastest       bool
	)

	return &cli.Command{
		Name:  "extract",
		Usage: "Cut one lap out of a session into a new container and marker file",
		Flags: append(markerFlags(), append(loggingFlags(),
			&cli.StringFlag{
				Name:        "container",
				Aliases:     []string{"i"},
				Usage:       "path to .ld file",
				Destination: &containerPath,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output directory",
				Value:       ".",
				Destination: &outDir,
			},
			&cli.Int64Flag{
				Name:        "lap",
				Aliases:     []string{"l"},
				Usage:       "lap number to extract (1-based)",
				Destination: &lapNumber,
			},
			&cli.BoolFlag{
				Name:        "fastest",
				Usage:       "extract the fastest lap",
				Destination: &fastest,
			},
		)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyExtractConfig(cmd, LoadConfig(), &outDir)
			unit, err := timeUnit()
			if err != nil {
				return err
			}
			if !fastest && lapNumber < 1 {
				return cli.Exit("pass --lap N (1-based) or --fastest", 2)
			}

			res, err := extract.Run(loggingContext(ctx), extract.Request{
				ContainerPath: containerPath,
				MarkerPath:    markerPath,
				OutDir:        outDir,
				Fastest:       fastest,
				LapIndex:      int(lapNumber) - 1,
				Unit:          unit,
			})
			if err != nil {
				return err
			}

			fmt.Printf("lap %d  %s  (%d channels, %d records)\n",
				res.Lap.Index+1, res.LapTime, res.Channels, res.Records)
			fmt.Printf("wrote %s\n", res.ContainerPath)
			fmt.Printf("wrote %s\n", res.MarkerPath)
			return nil
		},
	}
}
