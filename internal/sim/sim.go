// Package sim generates simulated vessel tracks for demo sessions. Two
// predefined Gulf of Thailand routes are shipped, one fishing and one
// cargo, with telemetry and task assignments randomized per run.
package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/seawatch/seawatch/internal/geo"
	"github.com/seawatch/seawatch/internal/model/core"
)

// waypoint is one predefined route position.
type waypoint struct {
	lat    float64
	lon    float64
	status string
	kind   string
}

// Generator produces raw points ready for canonicalization.
type Generator struct {
	now   func() time.Time
	rng   *rand.Rand
	zones []geo.Zone
}

// New creates a generator. Restricted zones are optional; when present
// they drive the InRestrictedZone flag instead of the random fallback.
func New(zones []geo.Zone) *Generator {
	return &Generator{
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		zones: zones,
	}
}

// NewWithSeed creates a deterministic generator for tests.
func NewWithSeed(seed int64, now func() time.Time, zones []geo.Zone) *Generator {
	return &Generator{
		now:   now,
		rng:   rand.New(rand.NewSource(seed)),
		zones: zones,
	}
}

// VesselTypes lists the ship types with predefined routes.
func VesselTypes() []string {
	return []string{"fishing", "cargo"}
}

// TrackPoints generates the full simulated track for a ship type.
// Unknown types yield an empty slice. History points are spaced three
// hours into the past, future points three hours apart ahead.
func (g *Generator) TrackPoints(shipType string) []core.RawPoint {
	var route []waypoint
	switch shipType {
	case "fishing":
		route = fishingRoute
	case "cargo":
		route = cargoRoute
	default:
		return nil
	}

	currentTime := g.now()
	spacing := 3 * time.Hour

	points := make([]core.RawPoint, 0, len(route))
	for i, wp := range route {
		var ts time.Time
		switch wp.kind {
		case "History":
			ts = currentTime.Add(-time.Duration(len(route)-i) * spacing)
		case "Future":
			ts = currentTime.Add(time.Duration(i) * spacing)
		default:
			ts = currentTime
		}

		abnormal := g.isAbnormal(wp.kind, i)

		var speed float64
		if abnormal {
			if g.rng.Float64() > 0.5 {
				speed = 28 + g.rng.Float64()*12
			} else {
				speed = g.rng.Float64() * 3
			}
		} else {
			speed = 8 + g.rng.Float64()*15
		}

		var signal float64
		if abnormal {
			signal = -85 - g.rng.Float64()*15
		} else {
			signal = -45 - g.rng.Float64()*35
		}

		var deviation float64
		if abnormal {
			deviation = 6 + g.rng.Float64()*8
		} else {
			deviation = g.rng.Float64() * 4
		}

		var restricted bool
		if len(g.zones) > 0 {
			restricted = geo.InAnyZone(g.zones, wp.lat, wp.lon)
		} else {
			restricted = abnormal && g.rng.Float64() > 0.8
		}

		hasTask := g.rng.Float64() > 0.6
		var taskType, taskDescription string
		if hasTask {
			if abnormal {
				taskType = abnormalTaskTypes[g.rng.Intn(len(abnormalTaskTypes))]
				taskDescription = "Investigate abnormal behavior and signal anomalies"
			} else {
				taskType = routineTaskTypes[g.rng.Intn(len(routineTaskTypes))]
				taskDescription = "Carry out vessel monitoring and behavior analysis"
			}
		}

		raw := core.RawPoint{
			ID:                 vesselID(shipType, i),
			Lat:                wp.lat,
			Lon:                wp.lon,
			Timestamp:          ts.Format(time.RFC3339),
			Status:             wp.status,
			Type:               wp.kind,
			Speed:              &speed,
			SignalStrength:     &signal,
			DeviationFromRoute: &deviation,
			InRestrictedZone:   &restricted,
			HasTask:            hasTask,
			TaskType:           taskType,
			TaskDescription:    taskDescription,
		}

		// Predefined future points always get the warm yellow.
		if wp.kind == "Future" {
			raw.BackgroundColor = "#FFD54A"
			raw.DotColor = "#FFD54A"
		}

		points = append(points, raw)
	}
	return points
}

// isAbnormal mirrors the per-kind anomaly density of the demo data:
// every fifth history point, every fourth future point offset by one,
// plus a random remainder.
func (g *Generator) isAbnormal(kind string, i int) bool {
	switch kind {
	case "History":
		return i%5 == 0 || g.rng.Float64() < 0.15
	case "Future":
		return i%4 == 1 || g.rng.Float64() < 0.25
	default:
		return g.rng.Float64() < 0.1
	}
}

func vesselID(shipType string, i int) string {
	if shipType == "fishing" {
		return fmt.Sprintf("fishing_ChonBuri_%d", i+1)
	}
	return fmt.Sprintf("cargo_THLCH%d", i+1)
}

var abnormalTaskTypes = []string{
	"anomaly investigation",
	"urgent tracking",
	"threat assessment",
}

var routineTaskTypes = []string{
	"monitoring",
	"tracking",
	"reconnaissance",
}
