package api

import (
	"github.com/greenpointracing/lapcut/pkg/laps"
	"github.com/greenpointracing/lapcut/pkg/ld"
)

type lapsRequest struct {
	MarkerPath string `json:"marker_path"`
	Unit       string `json:"unit,omitempty"`
}

type lapInfo struct {
	laps.Boundary
	Duration float64 `json:"duration"`
	LapTime  string  `json:"lap_time"`
}

type lapsResponse struct {
	Laps    []lapInfo `json:"laps"`
	Fastest int       `json:"fastest"`
}

type inspectRequest struct {
	ContainerPath string `json:"container_path"`
}

type channelInfo struct {
	Name      string  `json:"name"`
	ShortName string  `json:"short_name,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	Type      string  `json:"type"`
	Frequency uint32  `json:"frequency"`
	Samples   uint32  `json:"samples"`
	Scale     float32 `json:"scale"`
	Offset    float32 `json:"offset"`
}

type containerInfo struct {
	Driver        string        `json:"driver"`
	Vehicle       string        `json:"vehicle"`
	Venue         string        `json:"venue"`
	Comment       string        `json:"comment,omitempty"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	DeviceType    string        `json:"device_type"`
	DeviceSerial  uint32        `json:"device_serial"`
	DeviceVersion uint16        `json:"device_version"`
	Records       uint32        `json:"records"`
	Channels      []channelInfo `json:"channels"`
}

type extractRequest struct {
	ContainerPath string `json:"container_path"`
	MarkerPath    string `json:"marker_path"`
	OutDir        string `json:"out_dir,omitempty"`
	Fastest       bool   `json:"fastest,omitempty"`
	Lap           int    `json:"lap,omitempty"`
	Unit          string `json:"unit,omitempty"`
}

func describeContainer(c *ld.Container) containerInfo {
	info := containerInfo{
		Driver:        c.Header.DriverName(),
		Vehicle:       c.Header.VehicleID(),
		Venue:         c.Header.VenueName(),
		Comment:       c.Header.CommentText(),
		Date:          c.Header.DateText(),
		Time:          c.Header.TimeText(),
		DeviceType:    c.Header.DeviceTypeName(),
		DeviceSerial:  c.Header.DeviceSerial,
		DeviceVersion: c.Header.DeviceVersion,
		Records:       c.Header.RecordCount,
		Channels:      make([]channelInfo, 0, len(c.Channels)),
	}
	for i := range c.Channels {
		d := &c.Channels[i].Descriptor
		info.Channels = append(info.Channels, channelInfo{
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
	return info
}
