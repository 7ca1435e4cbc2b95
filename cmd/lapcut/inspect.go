package main

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/greenpointracing/lapcut/pkg/ld"
)

func inspectCmd() *cli.Command {
	var containerPath string

	return &cli.Command{
		Name:  "inspect",
		Usage: "Show the header and channel catalog of a telemetry container",
		Flags: append(loggingFlags(),
			&cli.StringFlag{
				Name:        "container",
				Aliases:     []string{"i"},
				Usage:       "path to .ld file",
				Destination: &containerPath,
				Required:    true,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit machine-readable output",
				Destination: &jsonOutput,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := ld.Open(containerPath)
			if err != nil {
				return err
			}

			if jsonOutput {
				type chanOut struct {
					Name      string  `json:"name"`
					ShortName string  `json:"short_name,omitempty"`
					Unit      string  `json:"unit,omitempty"`
					Type      string  `json:"type"`
					Frequency uint32  `json:"frequency"`
					Samples   uint32  `json:"samples"`
					Scale     float32 `json:"scale"`
					Offset    float32 `json:"offset"`
				}
				out := struct {
					Driver   string    `json:"driver"`
					Vehicle  string    `json:"vehicle"`
					Venue    string    `json:"venue"`
					Date     string    `json:"date"`
					Time     string    `json:"time"`
					Device   string    `json:"device_type"`
					Serial   uint32    `json:"device_serial"`
					Records  uint32    `json:"records"`
					Channels []chanOut `json:"channels"`
				}{
					Driver:  c.Header.DriverName(),
					Vehicle: c.Header.VehicleID(),
					Venue:   c.Header.VenueName(),
					Date:    c.Header.DateText(),
					Time:    c.Header.TimeText(),
					Device:  c.Header.DeviceTypeName(),
					Serial:  c.Header.DeviceSerial,
					Records: c.Header.RecordCount,
				}
				for i := range c.Channels {
					d := &c.Channels[i].Descriptor
					out.Channels = append(out.Channels, chanOut{
						Name:      d.ChannelName(),
						ShortName: d.ShortLabel(),
						Unit:      d.UnitText(),
						Type:      d.Type.String(),
						Frequency: d.Frequency,
						Samples:   d.SampleCount,
						Scale:     d.Scale,
						Offset:    d.Offset,
					})
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Printf("venue:    %s\n", c.Header.VenueName())
			fmt.Printf("vehicle:  %s\n", c.Header.VehicleID())
			fmt.Printf("driver:   %s\n", c.Header.DriverName())
			if c.Header.CommentText() != "" {
				fmt.Printf("comment:  %s\n", c.Header.CommentText())
			}
			fmt.Printf("recorded: %s %s\n", c.Header.DateText(), c.Header.TimeText())
			fmt.Printf("device:   %s (serial %d, fw %d)\n",
				c.Header.DeviceTypeName(), c.Header.DeviceSerial, c.Header.DeviceVersion)
			fmt.Printf("records:  %d\n\n", c.Header.RecordCount)

			fmt.Printf("%-32s %-8s %-12s %6s %6s %10s\n",
				"CHANNEL", "SHORT", "UNIT", "TYPE", "HZ", "SAMPLES")
			for i := range c.Channels {
				d := &c.Channels[i].Descriptor
				fmt.Printf("%-32s %-8s %-12s %6s %6d %10d\n",
					d.ChannelName(), d.ShortLabel(), d.UnitText(),
					d.Type, d.Frequency, d.SampleCount)
			}
			return nil
		},
	}
}
