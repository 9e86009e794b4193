package influx

import (
	"strconv"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kinasplayground/hammerremove/pkg/core"
)

// Measurement names written by the backend.
const (
	MeasurementRemoval    = "removal"
	MeasurementModeChange = "mode_change"
)

// RemovalPoint converts a removal into a point tagged by player, mode,
// target kind and resolving probe.
func RemovalPoint(r *core.Removal) *influxdb2_write.Point {
	p := influxdb2_write.NewPointWithMeasurement(MeasurementRemoval).
		AddTag("player", strconv.FormatUint(r.PlayerID, 10)).
		AddTag("mode", string(r.Mode)).
		AddTag("kind", r.TargetKind.String()).
		AddField("target_id", int64(r.TargetID)).
		AddField("removed", r.Removed).
		AddField("visited", r.Visited).
		AddField("skipped", r.Skipped).
		AddField("x", r.Position.X()).
		AddField("y", r.Position.Y()).
		AddField("z", r.Position.Z()).
		SetTime(r.Time)
	if r.Stage != "" {
		p.AddTag("stage", r.Stage)
	}
	return p
}

// ModeChangePoint converts a mode toggle into a point.
func ModeChangePoint(c *core.ModeChange) *influxdb2_write.Point {
	return influxdb2_write.NewPointWithMeasurement(MeasurementModeChange).
		AddTag("player", strconv.FormatUint(c.PlayerID, 10)).
		AddField("enabled", c.Enabled).
		SetTime(c.Time)
}
