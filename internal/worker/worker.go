// Package worker moves data from the in-memory domain layer to the
// configured storage backend. The domain packages publish through sink
// interfaces; Queues buffers those calls and Manager drains the buffers
// on a fixed interval so storage latency never blocks ingest.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/seawatch/seawatch/internal/model/core"
	"github.com/seawatch/seawatch/internal/queue"
	"github.com/seawatch/seawatch/internal/storage"
	"github.com/spf13/viper"
)

// LinkOp is one entry of the link audit stream. Dissolve entries carry
// only the pair and the time it came apart.
type LinkOp struct {
	Record    core.LinkRecord
	Dissolve  bool
	MissionID string
	PointID   string
	At        time.Time
}

// Queues buffers domain writes until the next flush. It satisfies the
// sink interfaces of the mission, linking and events packages.
type Queues struct {
	TrackPoints *queue.Queue[core.TrackPoint]
	Missions    *queue.Queue[core.Mission]
	Links       *queue.Queue[LinkOp]
	Events      *queue.Queue[core.Event]

	now func() time.Time
}

// NewQueues creates empty buffers.
func NewQueues() *Queues {
	return &Queues{
		TrackPoints: queue.New[core.TrackPoint](),
		Missions:    queue.New[core.Mission](),
		Links:       queue.New[LinkOp](),
		Events:      queue.New[core.Event](),
		now:         time.Now,
	}
}

// PointIngested buffers a canonical point for storage.
func (q *Queues) PointIngested(p core.TrackPoint) {
	q.TrackPoints.Push(p)
}

// MissionUpserted buffers a created or updated mission.
func (q *Queues) MissionUpserted(m core.Mission) {
	q.Missions.Push(m)
}

// LinkFormed buffers a link audit entry.
func (q *Queues) LinkFormed(rec core.LinkRecord) {
	q.Links.Push(LinkOp{Record: rec})
}

// LinkDissolved buffers an unlink audit entry.
func (q *Queues) LinkDissolved(missionID, pointID string) {
	q.Links.Push(LinkOp{
		Dissolve:  true,
		MissionID: missionID,
		PointID:   pointID,
		At:        q.now(),
	})
}

// EventSaved buffers a monitoring event.
func (q *Queues) EventSaved(e core.Event) {
	q.Events.Push(e)
}

// Depths reports current buffer sizes for monitoring.
func (q *Queues) Depths() (points, missions, links, events int) {
	return q.TrackPoints.Len(), q.Missions.Len(), q.Links.Len(), q.Events.Len()
}

// Manager drains the queues into the storage backend.
type Manager struct {
	queues  *Queues
	backend storage.Backend
	log     zerolog.Logger

	mu                sync.Mutex
	lastFlushDuration time.Duration
}

// NewManager creates a new flush worker.
func NewManager(queues *Queues, backend storage.Backend, log zerolog.Logger) *Manager {
	return &Manager{
		queues:  queues,
		backend: backend,
		log:     log,
	}
}

// Start runs the flush loop until the context is cancelled, then does a
// final flush so nothing buffered is lost at shutdown.
func (m *Manager) Start(ctx context.Context) {
	interval := time.Duration(viper.GetInt("worker.flushIntervalSeconds")) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Flush()
			return
		case <-ticker.C:
			m.Flush()
		}
	}
}

// Flush drains all queues in dependency order. Entities go first so
// link audit rows never reference unknown ids.
func (m *Manager) Flush() {
	start := time.Now()

	for _, p := range m.queues.TrackPoints.GetAndEmpty() {
		if err := m.backend.AddTrackPoint(p); err != nil {
			m.log.Error().Err(err).Str("pointId", p.PointID).Msg("Failed to store track point")
		}
	}
	for _, mi := range m.queues.Missions.GetAndEmpty() {
		if err := m.backend.AddMission(mi); err != nil {
			m.log.Error().Err(err).Str("missionId", mi.MissionID).Msg("Failed to store mission")
		}
	}
	for _, op := range m.queues.Links.GetAndEmpty() {
		var err error
		if op.Dissolve {
			err = m.backend.RecordUnlink(op.MissionID, op.PointID, op.At)
		} else {
			err = m.backend.RecordLink(op.Record)
		}
		if err != nil {
			m.log.Error().Err(err).Msg("Failed to store link operation")
		}
	}
	for _, e := range m.queues.Events.GetAndEmpty() {
		if err := m.backend.SaveEvent(e); err != nil {
			m.log.Error().Err(err).Str("eventId", e.ID).Msg("Failed to store event")
		}
	}

	m.mu.Lock()
	m.lastFlushDuration = time.Since(start)
	m.mu.Unlock()
}

// LastFlushDuration returns the duration of the most recent flush.
func (m *Manager) LastFlushDuration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastFlushDuration
}
