// internal/storage/storage.go
package storage

import (
	"time"

	"github.com/seawatch/seawatch/internal/model/core"
)

// Backend is the interface all storage implementations must satisfy.
// Backends receive already-canonical data; they never mutate it.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Session management
	StartSession(name, tag string, start time.Time) error
	EndSession() error

	// Entity recording
	AddTrackPoint(p core.TrackPoint) error
	AddMission(m core.Mission) error

	// Link audit trail
	RecordLink(rec core.LinkRecord) error
	RecordUnlink(missionID, pointID string, at time.Time) error

	// Monitoring events
	SaveEvent(e core.Event) error
}

// Exportable is an optional interface for backends that write a session
// file on EndSession.
type Exportable interface {
	ExportedFilePath() string
}
