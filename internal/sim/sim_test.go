package sim

import (
	"testing"
	"time"

	"github.com/seawatch/seawatch/internal/geo"
)

var simTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testGenerator(zones []geo.Zone) *Generator {
	return NewWithSeed(42, func() time.Time { return simTime }, zones)
}

func TestVesselTypes(t *testing.T) {
	types := VesselTypes()
	if len(types) != 2 {
		t.Fatalf("got %d types, want 2", len(types))
	}
	if types[0] != "fishing" || types[1] != "cargo" {
		t.Errorf("types = %v", types)
	}
}

func TestTrackPoints_UnknownType(t *testing.T) {
	if points := testGenerator(nil).TrackPoints("submarine"); points != nil {
		t.Errorf("unknown type yielded %d points", len(points))
	}
}

func TestTrackPoints_Deterministic(t *testing.T) {
	first := testGenerator(nil).TrackPoints("fishing")
	second := testGenerator(nil).TrackPoints("fishing")

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || *first[i].Speed != *second[i].Speed {
			t.Errorf("point %d differs between identically seeded runs", i)
		}
	}
}

func TestTrackPoints_RouteShape(t *testing.T) {
	for _, shipType := range VesselTypes() {
		t.Run(shipType, func(t *testing.T) {
			points := testGenerator(nil).TrackPoints(shipType)
			if len(points) == 0 {
				t.Fatal("route is empty")
			}

			for i, p := range points {
				if p.ID == "" {
					t.Errorf("point %d has no id", i)
				}
				if p.Lat == 0 || p.Lon == 0 {
					t.Errorf("point %d has zero coordinates", i)
				}
				if p.Speed == nil || p.SignalStrength == nil || p.DeviationFromRoute == nil {
					t.Fatalf("point %d missing telemetry", i)
				}
				if _, err := time.Parse(time.RFC3339, p.Timestamp); err != nil {
					t.Errorf("point %d timestamp %q: %v", i, p.Timestamp, err)
				}
			}
		})
	}
}

func TestTrackPoints_Timeline(t *testing.T) {
	points := testGenerator(nil).TrackPoints("fishing")

	var sawHistory, sawCurrent, sawFuture bool
	for i, p := range points {
		ts, err := time.Parse(time.RFC3339, p.Timestamp)
		if err != nil {
			t.Fatalf("point %d: %v", i, err)
		}
		switch p.Type {
		case "History":
			sawHistory = true
			if !ts.Before(simTime) {
				t.Errorf("history point %d not in the past: %v", i, ts)
			}
		case "Current":
			sawCurrent = true
			if !ts.Equal(simTime) {
				t.Errorf("current point %d not at now: %v", i, ts)
			}
		case "Future":
			sawFuture = true
			if ts.Before(simTime) {
				t.Errorf("future point %d in the past: %v", i, ts)
			}
		}
	}
	if !sawHistory || !sawCurrent || !sawFuture {
		t.Errorf("route missing a segment: history=%v current=%v future=%v",
			sawHistory, sawCurrent, sawFuture)
	}
}

func TestTrackPoints_FuturePointsAreYellow(t *testing.T) {
	points := testGenerator(nil).TrackPoints("cargo")

	for i, p := range points {
		if p.Type != "Future" {
			continue
		}
		if p.BackgroundColor != "#FFD54A" || p.DotColor != "#FFD54A" {
			t.Errorf("future point %d colors = (%s, %s)", i, p.BackgroundColor, p.DotColor)
		}
	}
}

func TestTrackPoints_TasksCarryDescriptions(t *testing.T) {
	points := testGenerator(nil).TrackPoints("fishing")

	var tasked int
	for i, p := range points {
		if p.HasTask {
			tasked++
			if p.TaskType == "" || p.TaskDescription == "" {
				t.Errorf("tasked point %d missing task fields", i)
			}
		} else if p.TaskType != "" {
			t.Errorf("untasked point %d has task type %q", i, p.TaskType)
		}
	}
	if tasked == 0 {
		t.Error("no point got a task assignment")
	}
}

func TestTrackPoints_ZonesDriveRestrictedFlag(t *testing.T) {
	// a zone covering the whole route area
	everywhere, err := geo.NewZone("everywhere", -90, 90, -180, 180)
	if err != nil {
		t.Fatalf("NewZone: %v", err)
	}
	inZone := testGenerator([]geo.Zone{everywhere}).TrackPoints("fishing")
	for i, p := range inZone {
		if p.InRestrictedZone == nil || !*p.InRestrictedZone {
			t.Errorf("point %d not flagged inside the covering zone", i)
		}
	}

	// an empty corner of the ocean
	nowhere, err := geo.NewZone("nowhere", -89, -88, -179, -178)
	if err != nil {
		t.Fatalf("NewZone: %v", err)
	}
	outZone := testGenerator([]geo.Zone{nowhere}).TrackPoints("fishing")
	for i, p := range outZone {
		if p.InRestrictedZone == nil || *p.InRestrictedZone {
			t.Errorf("point %d flagged outside the zone", i)
		}
	}
}

func TestTrackPoints_SpeedProfiles(t *testing.T) {
	points := testGenerator(nil).TrackPoints("cargo")

	for i, p := range points {
		s := *p.Speed
		if s < 0 || s > 40 {
			t.Errorf("point %d speed %f outside plausible range", i, s)
		}
		sig := *p.SignalStrength
		if sig > -45 || sig < -100 {
			t.Errorf("point %d signal %f outside dBm range", i, sig)
		}
	}
}
