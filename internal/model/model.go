package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&SessionInfo{},
	&TrackPoint{},
	&Mission{},
	&LinkRecord{},
	&MonitorEvent{},
}

// SessionInfo records one dashboard session.
type SessionInfo struct {
	gorm.Model
	SessionName string    `json:"sessionName" gorm:"size:127"`
	StartTime   time.Time `json:"startTime" gorm:"type:timestamptz"`
	Tag         string    `json:"tag" gorm:"size:127"`
}

func (*SessionInfo) TableName() string {
	return "session_infos"
}

// TrackPoint is the persisted form of a canonical track point. The
// display block is stored as JSON; geometry is stored as EPSG:3857 WKB
// alongside raw lat/lon so SQLite sessions survive without spatial
// support.
type TrackPoint struct {
	gorm.Model
	PointID   string    `json:"pointId" gorm:"size:127;uniqueIndex"`
	SessionID uint      `json:"sessionId" gorm:"index:idx_trackpoint_session_id"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Geom      []byte    `json:"-" gorm:"type:bytea"`
	Timestamp time.Time `json:"timestamp" gorm:"type:timestamptz;index:idx_trackpoint_time"`
	Kind      string    `json:"type" gorm:"size:15"`
	VesselID  string    `json:"vesselId" gorm:"size:127;index:idx_trackpoint_vessel"`

	Display datatypes.JSON `json:"display"`

	HasTask         bool   `json:"hasTask"`
	TaskType        string `json:"taskType" gorm:"size:127"`
	TaskDescription string `json:"taskDescription" gorm:"size:255"`

	BoundMissionID string `json:"boundMissionId" gorm:"size:127"`

	Speed              *float64 `json:"speed"`
	SignalStrength     *float64 `json:"signalStrength"`
	DeviationFromRoute *float64 `json:"deviationFromRoute"`
	InRestrictedZone   *bool    `json:"inRestrictedZone"`
}

func (*TrackPoint) TableName() string {
	return "track_points"
}

// Mission is the persisted form of a dispatched or scheduled action.
type Mission struct {
	gorm.Model
	MissionID          string    `json:"missionId" gorm:"size:127;uniqueIndex"`
	SessionID          uint      `json:"sessionId" gorm:"index:idx_mission_session_id"`
	Action             string    `json:"action" gorm:"size:31"`
	Type               string    `json:"type" gorm:"size:127"`
	TargetVesselID     string    `json:"targetVesselId" gorm:"size:127;index:idx_mission_target"`
	TargetInfo         string    `json:"targetInfo" gorm:"size:255"`
	Status             string    `json:"status" gorm:"size:31"`
	Timestamp          time.Time `json:"timestamp" gorm:"type:timestamptz"`
	IsScheduled        bool      `json:"isScheduled"`
	SourceTrackPointID string    `json:"sourceTrackPointId" gorm:"size:127"`
	BoundPointID       string    `json:"boundPointId" gorm:"size:127"`
	Progress           int       `json:"progress"`
}

func (*Mission) TableName() string {
	return "missions"
}

// LinkRecord is the audit row for one mission/point association.
type LinkRecord struct {
	gorm.Model
	MissionID      string    `json:"missionId" gorm:"size:127;index:idx_link_mission"`
	PointID        string    `json:"pointId" gorm:"size:127;index:idx_link_point"`
	SessionID      uint      `json:"sessionId" gorm:"index:idx_link_session_id"`
	LinkTime       time.Time `json:"linkTime" gorm:"type:timestamptz"`
	Reason         string    `json:"linkReason" gorm:"size:63"`
	TimeDifference int64     `json:"timeDifference"` // milliseconds
	LinkScore      float64   `json:"linkScore"`
	TimeWindow     int64     `json:"timeWindow"` // milliseconds

	Dissolved   bool       `json:"dissolved"`
	DissolvedAt *time.Time `json:"dissolvedAt" gorm:"type:timestamptz"`
}

func (*LinkRecord) TableName() string {
	return "link_records"
}

// MonitorEvent is the persisted form of a monitoring-event card. The
// kind-specific detail block is stored as JSON.
type MonitorEvent struct {
	gorm.Model
	EventID   string         `json:"id" gorm:"size:127;uniqueIndex"`
	SessionID uint           `json:"sessionId" gorm:"index:idx_monitorevent_session_id"`
	Kind      string         `json:"type" gorm:"size:31"`
	Status    string         `json:"status" gorm:"size:31"`
	Details   datatypes.JSON `json:"details"`

	// Event timestamps from the dashboard, distinct from gorm's row
	// bookkeeping times.
	EventCreatedAt time.Time `json:"createTime" gorm:"type:timestamptz"`
	EventUpdatedAt time.Time `json:"updateTime" gorm:"type:timestamptz"`
}

func (*MonitorEvent) TableName() string {
	return "monitor_events"
}
