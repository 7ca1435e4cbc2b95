package main

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/greenpointracing/lapcut/pkg/laps"
	"github.com/greenpointracing/lapcut/pkg/ldx"
)

func lapsCmd() *cli.Command {
	return &cli.Command{
		Name:  "laps",
		Usage: "List the laps defined by a marker file",
		Flags: append(markerFlags(), append(loggingFlags(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit machine-readable output",
				Destination: &jsonOutput,
			},
		)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyCommonConfig(cmd, LoadConfig())
			unit, err := timeUnit()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(markerPath)
			if err != nil {
				return err
			}
			markers, err := ldx.Parse(data, ldx.WithTimeUnit(unit))
			if err != nil {
				return err
			}
			boundaries, err := laps.Compute(markers)
			if err != nil {
				return err
			}
			fastest, err := laps.Fastest(boundaries)
			if err != nil {
				return err
			}

			if jsonOutput {
				type lapOut struct {
					laps.Boundary
					Duration float64 `json:"duration"`
					LapTime  string  `json:"lap_time"`
				}
				out := struct {
					Laps    []lapOut `json:"laps"`
					Fastest int      `json:"fastest"`
				}{Fastest: fastest.Index}
				for _, b := range boundaries {
					out.Laps = append(out.Laps, lapOut{b, b.Duration(), laps.FormatClock(b.Duration())})
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			for _, b := range boundaries {
				mark := " "
				if b.Index == fastest.Index {
					mark = "*"
				}
				fmt.Printf("%s lap %-3d %9.3f - %9.3f  %s\n",
					mark, b.Index+1, b.Start, b.End, laps.FormatClock(b.Duration()))
			}
			fmt.Printf("\nfastest: lap %d (%s)\n", fastest.Index+1, laps.FormatClock(fastest.Duration()))
			return nil
		},
	}
}
