// internal/model/core/types.go
package core

// PointKind is the temporal role of a track point.
type PointKind string

const (
	KindHistory PointKind = "History"
	KindCurrent PointKind = "Current"
	KindFuture  PointKind = "Future"

	// KindNormal marks a point that carries no temporal role.
	KindNormal PointKind = "Normal"
)

// MissionAction is the dispatch category of a mission.
type MissionAction string

const (
	ActionTrack     MissionAction = "track"
	ActionUAV       MissionAction = "uav"
	ActionSatellite MissionAction = "satellite"
	ActionNotify    MissionAction = "notify"
)

// MissionStatus is a mission lifecycle state. Statuses form an ordered
// progression: scheduled/dispatched -> arrived -> executing -> completed.
type MissionStatus string

const (
	StatusScheduled  MissionStatus = "scheduled"
	StatusDispatched MissionStatus = "dispatched"
	StatusArrived    MissionStatus = "arrived"
	StatusExecuting  MissionStatus = "executing"
	StatusCompleted  MissionStatus = "completed"
)

// Rank returns the position of a status in the lifecycle progression,
// or -1 for an unknown status. Scheduled and dispatched share a rank
// because a scheduled mission is dispatched when its time arrives.
func (s MissionStatus) Rank() int {
	switch s {
	case StatusScheduled, StatusDispatched:
		return 0
	case StatusArrived:
		return 1
	case StatusExecuting:
		return 2
	case StatusCompleted:
		return 3
	default:
		return -1
	}
}

// TargetAllVessels is the sentinel target meaning a mission concerns
// every vessel rather than one identity.
const TargetAllVessels = "all"

// UnknownVessel is the sentinel vessel identity for points that carry no
// vessel, MMSI or IMO field. Note this conflates "no vessel" with a
// vessel literally named UNKNOWN during identity matching.
const UnknownVessel = "UNKNOWN"

// Display holds the presentation attributes of a track point. It is the
// canonical home for these fields; legacy flat aliases are derived views
// produced only at the serialization boundary.
type Display struct {
	BackgroundColor string `json:"backgroundColor"`
	DotColor        string `json:"dotColor"`
	BorderRadius    string `json:"borderRadius"`
	Status          string `json:"status"`
	RFID            string `json:"rfId,omitempty"`
}
