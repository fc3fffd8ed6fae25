// Package mission is the public facade over the entity store and the
// linking engine: mission creation with dedup, point ingestion, linked
// entity queries and lifecycle status transitions. External
// collaborators (the HTTP layer, the simulator) only talk to this
// package, never to the store directly.
package mission

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/seawatch/seawatch/internal/canon"
	"github.com/seawatch/seawatch/internal/linking"
	"github.com/seawatch/seawatch/internal/model/core"
)

var (
	// ErrUnknownMission is returned for lifecycle operations on an id
	// that is not in the store.
	ErrUnknownMission = errors.New("unknown mission")

	// ErrInvalidStatus is returned for a status outside the lifecycle.
	ErrInvalidStatus = errors.New("invalid mission status")

	// ErrStatusRegression is returned when a caller tries to move a
	// mission backwards through the lifecycle. Transitions are
	// externally driven but monotonic.
	ErrStatusRegression = errors.New("mission status may not move backwards")
)

// Sink receives ingested entities for write-behind persistence.
type Sink interface {
	PointIngested(p core.TrackPoint)
	MissionUpserted(m core.Mission)
}

// Manager is the mission lifecycle facade.
type Manager struct {
	engine *linking.Engine
	canon  *canon.Canonicalizer
	log    zerolog.Logger
	now    func() time.Time
	sinks  []Sink
}

// NewManager creates a Manager over the given engine.
func NewManager(engine *linking.Engine, c *canon.Canonicalizer, log zerolog.Logger) *Manager {
	return &Manager{
		engine: engine,
		canon:  c,
		log:    log.With().Str("component", "mission").Logger(),
		now:    time.Now,
	}
}

// SetClock injects a clock for tests.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// AddSink registers a persistence sink.
func (m *Manager) AddSink(s Sink) {
	m.sinks = append(m.sinks, s)
}

// CreateTrackPoint canonicalizes and stores a raw point, triggering the
// auto-link pass. Returns the final point id.
func (m *Manager) CreateTrackPoint(raw core.RawPoint) (string, error) {
	point, err := m.canon.Canonicalize(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize point: %w", err)
	}
	id := m.engine.PutTrackPoint(point)
	stored, _ := m.engine.Store().GetTrackPoint(id)
	for _, s := range m.sinks {
		s.PointIngested(stored)
	}
	return id, nil
}

// CreateMission creates a mission or reuses an existing one. When the
// incoming data names a source track point, an existing mission with
// the same source point, action, type and scheduling flag is
// merge-updated in place and its id returned, so re-rendered UI source
// data cannot spawn duplicates. Otherwise a new mission is stored,
// which triggers the auto-link pass.
func (m *Manager) CreateMission(data core.Mission) string {
	if data.SourceTrackPointID != "" {
		for _, existing := range m.engine.Store().Missions() {
			if existing.SourceTrackPointID == data.SourceTrackPointID &&
				existing.Action == data.Action &&
				existing.Type == data.Type &&
				existing.IsScheduled == data.IsScheduled {
				m.mergeMission(existing.MissionID, data)
				m.log.Info().
					Str("missionId", existing.MissionID).
					Str("sourcePointId", data.SourceTrackPointID).
					Msg("reused existing mission for source point")
				return existing.MissionID
			}
		}
	}

	mission := data
	if mission.Timestamp.IsZero() {
		mission.Timestamp = m.now().UTC()
	}
	if mission.Status == "" {
		if mission.IsScheduled {
			mission.Status = core.StatusScheduled
		} else {
			mission.Status = core.StatusDispatched
		}
	}

	id := m.engine.PutMission(mission)
	stored, _ := m.engine.Store().GetMission(id)
	for _, s := range m.sinks {
		s.MissionUpserted(stored)
	}
	m.log.Info().
		Str("missionId", id).
		Str("action", string(mission.Action)).
		Str("target", mission.TargetVesselID).
		Msg("mission created")
	return id
}

// mergeMission folds the set fields of incoming into the stored
// mission under the store's write lock, keeping the id and any existing
// linkage.
func (m *Manager) mergeMission(missionID string, incoming core.Mission) {
	var merged core.Mission
	m.engine.Store().UpdateMission(missionID, func(existing *core.Mission) {
		if incoming.TargetVesselID != "" {
			existing.TargetVesselID = incoming.TargetVesselID
		}
		if incoming.TargetInfo != "" {
			existing.TargetInfo = incoming.TargetInfo
		}
		if incoming.Status != "" {
			existing.Status = incoming.Status
		}
		if !incoming.Timestamp.IsZero() {
			existing.Timestamp = incoming.Timestamp
		} else if existing.Timestamp.IsZero() {
			existing.Timestamp = m.now().UTC()
		}
		if incoming.Progress > existing.Progress {
			existing.Progress = incoming.Progress
		}
		merged = *existing
	})
	for _, s := range m.sinks {
		s.MissionUpserted(merged)
	}
}

// Counts reports how many points, missions and links are stored.
func (m *Manager) Counts() (points, missions, links int) {
	return m.engine.Store().Counts()
}

// TrackPoints returns all points in insertion order.
func (m *Manager) TrackPoints() []core.TrackPoint {
	return m.engine.Store().TrackPoints()
}

// Missions returns all missions in insertion order.
func (m *Manager) Missions() []core.Mission {
	return m.engine.Store().Missions()
}

// GetTrackPoint is a raw lookup.
func (m *Manager) GetTrackPoint(id string) (core.TrackPoint, bool) {
	return m.engine.Store().GetTrackPoint(id)
}

// GetMission is a raw lookup.
func (m *Manager) GetMission(id string) (core.Mission, bool) {
	return m.engine.Store().GetMission(id)
}

// GetLinkedTrackPoints returns the 0-or-1 point bound to a mission.
// Kept as a slice for interface stability even though the relation is
// one-to-one.
func (m *Manager) GetLinkedTrackPoints(missionID string) []core.TrackPoint {
	if p, ok := m.engine.LinkedPoint(missionID); ok {
		return []core.TrackPoint{p}
	}
	return []core.TrackPoint{}
}

// GetLinkedMissions returns the 0-or-1 mission bound to a point.
func (m *Manager) GetLinkedMissions(pointID string) []core.Mission {
	if mi, ok := m.engine.LinkedMission(pointID); ok {
		return []core.Mission{mi}
	}
	return []core.Mission{}
}

// Bind explicitly links a mission and a point, displacing any existing
// partner on either side.
func (m *Manager) Bind(missionID, pointID string) bool {
	return m.engine.Bind(missionID, pointID)
}

// UnbindPair, UnbindMission and UnbindPoint delegate to the linking
// engine; failures are non-fatal and reported by return value.
func (m *Manager) UnbindPair(missionID, pointID string) bool {
	return m.engine.UnbindPair(missionID, pointID)
}

func (m *Manager) UnbindMission(missionID string) bool {
	return m.engine.UnbindMission(missionID)
}

func (m *Manager) UnbindPoint(pointID string) bool {
	return m.engine.UnbindPoint(pointID)
}

// AdvanceStatus moves a mission forward through the lifecycle. Backward
// transitions are rejected with ErrStatusRegression. The check and the
// write happen in one store critical section so concurrent advances
// cannot interleave.
func (m *Manager) AdvanceStatus(missionID string, status core.MissionStatus) error {
	rank := status.Rank()
	if rank < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var updated core.Mission
	var regression error
	ok := m.engine.Store().UpdateMission(missionID, func(mission *core.Mission) {
		if rank < mission.Status.Rank() {
			regression = fmt.Errorf("%w: %s -> %s", ErrStatusRegression, mission.Status, status)
			return
		}
		mission.Status = status
		updated = *mission
	})
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMission, missionID)
	}
	if regression != nil {
		return regression
	}
	for _, s := range m.sinks {
		s.MissionUpserted(updated)
	}
	return nil
}

// SetProgress updates a mission's progress percentage, clamped to
// 0..100. Reaching 100 completes the mission.
func (m *Manager) SetProgress(missionID string, progress int) error {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	var updated core.Mission
	ok := m.engine.Store().UpdateMission(missionID, func(mission *core.Mission) {
		mission.Progress = progress
		if progress == 100 {
			mission.Status = core.StatusCompleted
		}
		updated = *mission
	})
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMission, missionID)
	}
	for _, s := range m.sinks {
		s.MissionUpserted(updated)
	}
	return nil
}
