// Package canon normalizes arbitrary point-like records into the
// canonical TrackPoint shape. It is a pure transform: no store access,
// no side effects beyond id generation for records that arrive without
// one.
package canon

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seawatch/seawatch/internal/model/core"
)

// ErrInvalidTimestamp is returned when a supplied timestamp cannot be
// parsed. A record with no timestamp at all gets the current time; a
// record with a malformed one fails loudly instead, so a bad feed
// cannot silently corrupt time-window matching.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// Presentation defaults applied when the source record carries none.
const (
	colorFuture = "#FFD54A" // warning yellow for predicted points
	colorNoAIS  = "#ef4444" // alert red
	colorNormal = "#10b981"

	radiusHistory = "2px" // small square for past observations
	radiusDefault = "50%"

	statusNoAIS     = "No AIS"
	statusPredicted = "Predicted"
	statusUnknown   = "unknown"
)

// Canonicalizer converts RawPoints to TrackPoints. The zero value is
// not usable; construct with New.
type Canonicalizer struct {
	now func() time.Time
}

// New returns a Canonicalizer using the wall clock.
func New() *Canonicalizer {
	return &Canonicalizer{now: time.Now}
}

// NewWithClock returns a Canonicalizer with an injected clock, for
// tests.
func NewWithClock(now func() time.Time) *Canonicalizer {
	return &Canonicalizer{now: now}
}

// Canonicalize normalizes raw into a TrackPoint. The transform is
// idempotent: canonicalizing the raw view of its own output preserves
// the id, timestamp and display block.
func (c *Canonicalizer) Canonicalize(raw core.RawPoint) (core.TrackPoint, error) {
	var p core.TrackPoint

	p.PointID = raw.PointID
	if p.PointID == "" {
		p.PointID = raw.ID
	}
	if p.PointID == "" {
		p.PointID = GeneratePointID(c.now())
	}

	ts, err := c.resolveTimestamp(raw)
	if err != nil {
		return core.TrackPoint{}, err
	}
	p.Timestamp = ts

	p.Kind = resolveKind(raw)
	p.VesselID = resolveVesselID(raw)
	p.Display = resolveDisplay(raw, p.Kind)

	p.Lat = raw.Lat
	p.Lon = raw.Lon
	p.HasTask = raw.HasTask
	p.TaskType = raw.TaskType
	p.TaskDescription = raw.TaskDescription
	p.BoundMissionID = raw.BoundMissionID

	// Telemetry passes through untouched; nil stays nil.
	p.Speed = raw.Speed
	p.SignalStrength = raw.SignalStrength
	p.DeviationFromRoute = raw.DeviationFromRoute
	p.InRestrictedZone = raw.InRestrictedZone

	return p, nil
}

// Raw converts a canonical point back into its RawPoint view, with the
// legacy flat aliases populated for external renderers that still
// expect them. Canonicalize(Raw(p)) reproduces p.
func Raw(p core.TrackPoint) core.RawPoint {
	disp := p.Display
	return core.RawPoint{
		PointID:            p.PointID,
		Lat:                p.Lat,
		Lon:                p.Lon,
		Timestamp:          p.Timestamp.Format(time.RFC3339Nano),
		Type:               string(p.Kind),
		VesselID:           p.VesselID,
		Display:            &disp,
		BackgroundColor:    p.Display.BackgroundColor,
		DotColor:           p.Display.DotColor,
		BorderRadius:       p.Display.BorderRadius,
		RFID:               p.Display.RFID,
		Status:             p.Display.Status,
		HasTask:            p.HasTask,
		TaskType:           p.TaskType,
		TaskDescription:    p.TaskDescription,
		BoundMissionID:     p.BoundMissionID,
		Speed:              p.Speed,
		SignalStrength:     p.SignalStrength,
		DeviationFromRoute: p.DeviationFromRoute,
		InRestrictedZone:   p.InRestrictedZone,
	}
}

// GeneratePointID builds a fresh point id. The TRACK-<millis>-<suffix>
// shape matches what upstream feeds generate for unidentified points.
func GeneratePointID(now time.Time) string {
	return fmt.Sprintf("TRACK-%d-%s", now.UnixMilli(), uuid.NewString()[:6])
}

func (c *Canonicalizer) resolveTimestamp(raw core.RawPoint) (time.Time, error) {
	s := raw.Timestamp
	if s == "" {
		s = raw.Time
	}
	if s == "" {
		return c.now().UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return ts, nil
}

func resolveKind(raw core.RawPoint) core.PointKind {
	if raw.Status == statusPredicted || raw.Type == string(core.KindFuture) {
		return core.KindFuture
	}
	switch raw.Type {
	case string(core.KindHistory):
		return core.KindHistory
	case string(core.KindCurrent):
		return core.KindCurrent
	}
	return core.KindNormal
}

func resolveVesselID(raw core.RawPoint) string {
	for _, id := range []string{raw.VesselID, raw.Vessel, raw.MMSI, raw.IMO} {
		if id != "" {
			return id
		}
	}
	return core.UnknownVessel
}

func resolveDisplay(raw core.RawPoint, kind core.PointKind) core.Display {
	var d core.Display
	if raw.Display != nil {
		d = *raw.Display
	}

	if d.BackgroundColor == "" {
		d.BackgroundColor = raw.BackgroundColor
	}
	if d.BackgroundColor == "" {
		d.BackgroundColor = raw.DotColor
	}
	if d.BackgroundColor == "" {
		switch {
		case kind == core.KindFuture:
			d.BackgroundColor = colorFuture
		case raw.Status == statusNoAIS:
			d.BackgroundColor = colorNoAIS
		default:
			d.BackgroundColor = colorNormal
		}
	}

	if d.DotColor == "" {
		d.DotColor = raw.DotColor
	}
	if d.DotColor == "" {
		d.DotColor = d.BackgroundColor
	}

	if d.BorderRadius == "" {
		d.BorderRadius = raw.BorderRadius
	}
	if d.BorderRadius == "" {
		if kind == core.KindHistory {
			d.BorderRadius = radiusHistory
		} else {
			d.BorderRadius = radiusDefault
		}
	}

	if d.Status == "" {
		d.Status = raw.Status
	}
	if d.Status == "" {
		d.Status = statusUnknown
	}
	if d.RFID == "" {
		d.RFID = raw.RFID
	}
	return d
}
