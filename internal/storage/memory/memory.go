// internal/storage/memory/memory.go
package memory

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/seawatch/seawatch/internal/config"
	"github.com/seawatch/seawatch/internal/model/core"
)

// LinkEntry is one row of the link audit trail. Dissolved links stay in
// the trail with the unlink time filled in.
type LinkEntry struct {
	Record     core.LinkRecord
	UnlinkedAt *time.Time
}

// Backend stores session data in memory and exports to JSON when the
// session ends.
type Backend struct {
	cfg config.StorageConfig
	log zerolog.Logger

	sessionName  string
	sessionTag   string
	sessionStart time.Time

	trackPoints []core.TrackPoint
	missions    []core.Mission
	links       []LinkEntry
	events      []core.Event

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend.
func New(cfg config.StorageConfig, log zerolog.Logger) *Backend {
	return &Backend{
		cfg: cfg,
		log: log,
	}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources.
func (b *Backend) Close() error {
	return nil
}

// StartSession begins recording a new session.
func (b *Backend) StartSession(name, tag string, start time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sessionName = name
	b.sessionTag = tag
	b.sessionStart = start

	// Reset all collections
	b.trackPoints = nil
	b.missions = nil
	b.links = nil
	b.events = nil
	b.lastExportPath = ""

	return nil
}

// EndSession finalizes and exports the session data.
func (b *Backend) EndSession() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.exportJSON()
}

// AddTrackPoint records a canonical track point. A point with a known
// PointID replaces the earlier copy so re-flushed updates do not pile
// up in the export.
func (b *Backend) AddTrackPoint(p core.TrackPoint) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.trackPoints {
		if b.trackPoints[i].PointID == p.PointID {
			b.trackPoints[i] = p
			return nil
		}
	}
	b.trackPoints = append(b.trackPoints, p)
	return nil
}

// AddMission records a mission, replacing an earlier copy with the same
// MissionID.
func (b *Backend) AddMission(m core.Mission) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.missions {
		if b.missions[i].MissionID == m.MissionID {
			b.missions[i] = m
			return nil
		}
	}
	b.missions = append(b.missions, m)
	return nil
}

// RecordLink appends to the link audit trail.
func (b *Backend) RecordLink(rec core.LinkRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.links = append(b.links, LinkEntry{Record: rec})
	return nil
}

// RecordUnlink marks the most recent open link between the pair as
// dissolved.
func (b *Backend) RecordUnlink(missionID, pointID string, at time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := len(b.links) - 1; i >= 0; i-- {
		entry := &b.links[i]
		if entry.Record.MissionID == missionID &&
			entry.Record.PointID == pointID &&
			entry.UnlinkedAt == nil {
			t := at
			entry.UnlinkedAt = &t
			return nil
		}
	}
	return nil // no open link, nothing to mark
}

// SaveEvent records a monitoring event, replacing an earlier copy with
// the same ID.
func (b *Backend) SaveEvent(e core.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.events {
		if b.events[i].ID == e.ID {
			b.events[i] = e
			return nil
		}
	}
	b.events = append(b.events, e)
	return nil
}

// ExportedFilePath returns the path of the last exported session file.
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}

// Counts returns how many points, missions, links and events are held.
func (b *Backend) Counts() (points, missions, links, events int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.trackPoints), len(b.missions), len(b.links), len(b.events)
}
