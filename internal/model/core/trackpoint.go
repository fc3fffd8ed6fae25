// internal/model/core/trackpoint.go
package core

import "time"

// TrackPoint is the canonical shape every ingested point is normalized
// to. Points are never deleted during a session; the only mutation after
// creation is setting or clearing BoundMissionID, which happens inside
// the linking engine's bind/unbind paths.
type TrackPoint struct {
	PointID   string    `json:"pointId"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Timestamp time.Time `json:"timestamp"`
	Kind      PointKind `json:"type"`

	// VesselID falls back through vessel/mmsi/imo source fields and
	// defaults to UnknownVessel when none is present.
	VesselID string  `json:"vesselId"`
	Display  Display `json:"display"`

	HasTask         bool   `json:"hasTask"`
	TaskType        string `json:"taskType,omitempty"`
	TaskDescription string `json:"taskDescription,omitempty"`

	// BoundMissionID is empty or references the single mission whose own
	// BoundPointID equals this point's id.
	BoundMissionID string `json:"boundMissionId,omitempty"`

	// Telemetry values are optional; absent stays absent rather than
	// defaulting to zero.
	Speed              *float64 `json:"speed,omitempty"`
	SignalStrength     *float64 `json:"signalStrength,omitempty"`
	DeviationFromRoute *float64 `json:"deviationFromRoute,omitempty"`
	InRestrictedZone   *bool    `json:"inRestrictedZone,omitempty"`
}

// RawPoint is the typed union of every known source shape a point-like
// record can arrive in: canonical ids or legacy ids, nested display or
// flat legacy color fields, several vessel identity spellings. The
// canonicalizer pattern-matches it once; nothing else in the codebase
// probes alternative field names.
type RawPoint struct {
	PointID string `json:"pointId,omitempty"`
	ID      string `json:"id,omitempty"`

	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	Timestamp string `json:"timestamp,omitempty"`
	Time      string `json:"time,omitempty"`

	// Status is the source AIS/prediction status ("AIS", "No AIS",
	// "Predicted"); Type is the source temporal role when present.
	Status string `json:"status,omitempty"`
	Type   string `json:"type,omitempty"`

	VesselID string `json:"vesselId,omitempty"`
	Vessel   string `json:"vessel,omitempty"`
	MMSI     string `json:"mmsi,omitempty"`
	IMO      string `json:"imo,omitempty"`

	Display *Display `json:"display,omitempty"`

	// Legacy flat presentation fields.
	BackgroundColor string `json:"backgroundColor,omitempty"`
	DotColor        string `json:"dotColor,omitempty"`
	BorderRadius    string `json:"borderRadius,omitempty"`
	RFID            string `json:"rfId,omitempty"`

	HasTask         bool   `json:"hasTask,omitempty"`
	TaskType        string `json:"taskType,omitempty"`
	TaskDescription string `json:"taskDescription,omitempty"`

	BoundMissionID string `json:"boundMissionId,omitempty"`

	Speed              *float64 `json:"speed,omitempty"`
	SignalStrength     *float64 `json:"signalStrength,omitempty"`
	DeviationFromRoute *float64 `json:"deviationFromRoute,omitempty"`
	InRestrictedZone   *bool    `json:"inRestrictedZone,omitempty"`
}
