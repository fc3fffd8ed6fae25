// internal/model/core/mission.go
package core

import "time"

// Mission is a dispatched or scheduled action targeting a vessel or
// area. BoundPointID mirrors TrackPoint.BoundMissionID; the relation is
// strictly one-to-one and only the linking engine mutates either side.
type Mission struct {
	MissionID string        `json:"missionId"`
	Action    MissionAction `json:"action"`

	// Type is the localized display label for the action.
	Type string `json:"type"`

	// TargetVesselID is the vessel this mission concerns, or the
	// TargetAllVessels sentinel. TargetInfo is free text that may also
	// name the target.
	TargetVesselID string `json:"targetVesselId"`
	TargetInfo     string `json:"targetInfo,omitempty"`

	Status      MissionStatus `json:"status"`
	Timestamp   time.Time     `json:"timestamp"`
	IsScheduled bool          `json:"isScheduled"`

	// SourceTrackPointID is the point that caused this mission's
	// creation, used for create-time dedup.
	SourceTrackPointID string `json:"sourceTrackPointId,omitempty"`

	BoundPointID string `json:"boundPointId,omitempty"`

	Progress int `json:"progress"`
}

// LinkReason records how a mission/point association was formed.
type LinkReason string

const (
	ReasonExplicitBind        LinkReason = "explicit_bind"
	ReasonExplicitSourceMatch LinkReason = "explicit_source_match"
	ReasonAutoTimeVessel      LinkReason = "auto_time_vessel"
)

// LinkRecord is diagnostic metadata for one mission/point association.
// The authoritative relation is the BoundPointID/BoundMissionID pair;
// records for a pair are removed when the pair is unbound.
type LinkRecord struct {
	MissionID string     `json:"missionId"`
	PointID   string     `json:"pointId"`
	LinkTime  time.Time  `json:"linkTime"`
	Reason    LinkReason `json:"linkReason"`

	// Set only for automatic links.
	TimeDifference time.Duration `json:"timeDifference,omitempty"`
	LinkScore      float64       `json:"linkScore,omitempty"`
	TimeWindow     time.Duration `json:"timeWindow,omitempty"`
}
