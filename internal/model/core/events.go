// internal/model/core/events.go
package core

import "time"

// EventKind is the category of a monitoring event card.
type EventKind string

const (
	EventArea   EventKind = "area"
	EventRF     EventKind = "rf"
	EventVessel EventKind = "vessel"
)

// EventStatus tracks the investigation state of a monitoring event.
type EventStatus string

const (
	EventInvestigating EventStatus = "investigating"
	EventAnalyzed      EventStatus = "analyzed"
	EventCompleted     EventStatus = "completed"
)

// AreaDetails describes a monitored sea area.
type AreaDetails struct {
	AOIName      string  `json:"aoiName"`
	MinLat       float64 `json:"minLat"`
	MaxLat       float64 `json:"maxLat"`
	MinLon       float64 `json:"minLon"`
	MaxLon       float64 `json:"maxLon"`
	MonitorHours int     `json:"monitorHours"`
}

// RFDetails describes an RF signal detection without an AIS match.
type RFDetails struct {
	RFID          string    `json:"rfId"`
	Frequency     string    `json:"frequency"`
	Strength      string    `json:"strength"`
	Lat           float64   `json:"lat"`
	Lon           float64   `json:"lon"`
	DetectionTime time.Time `json:"detectionTime"`
	Notes         string    `json:"notes,omitempty"`
}

// VesselDetails describes a vessel under investigation.
type VesselDetails struct {
	MMSI                string `json:"mmsi"`
	VesselName          string `json:"vesselName"`
	RiskScore           int    `json:"riskScore"`
	InvestigationReason string `json:"investigationReason,omitempty"`
	AISStatus           string `json:"aisStatus,omitempty"`
}

// Event is one monitoring-event card. Exactly one of the detail blocks
// is set, matching Kind.
type Event struct {
	ID        string      `json:"id"`
	Kind      EventKind   `json:"type"`
	Status    EventStatus `json:"status"`
	CreatedAt time.Time   `json:"createTime"`
	UpdatedAt time.Time   `json:"updateTime,omitempty"`

	Area   *AreaDetails   `json:"area,omitempty"`
	RF     *RFDetails     `json:"rf,omitempty"`
	Vessel *VesselDetails `json:"vessel,omitempty"`
}
