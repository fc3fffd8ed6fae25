// Package linking maintains the one-to-one association between
// missions and track points. All cross-entity mutation (setting or
// clearing the two bound-id fields) happens here and nowhere else. The
// engine works on value snapshots from the store and writes bindings
// back through the store's write-locked mutators, which update both
// sides of a pair in one critical section.
package linking

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/seawatch/seawatch/internal/model/core"
	"github.com/seawatch/seawatch/internal/store"
)

// Auto-link time windows by mission action.
const (
	windowTrack   = 4 * time.Hour
	windowAerial  = 1 * time.Hour // uav and satellite
	windowDefault = 2 * time.Hour
)

// Sink receives link lifecycle notifications, for persistence and
// metrics fan-out. Implementations must not call back into the engine.
type Sink interface {
	LinkFormed(rec core.LinkRecord)
	LinkDissolved(missionID, pointID string)
}

// Engine enforces the one-to-one mission/point relation. Three
// mechanisms apply, in strict priority order on every insert: explicit
// source match, explicit bind, automatic heuristic match. Automatic
// matching never displaces an existing bind; explicit Bind always does.
type Engine struct {
	mu    sync.Mutex
	store *store.Store
	log   zerolog.Logger
	now   func() time.Time
	sinks []Sink

	linksFormed      metric.Int64Counter
	conflictsSkipped metric.Int64Counter
}

// New creates an Engine over the given store.
func New(st *store.Store, log zerolog.Logger) *Engine {
	e := &Engine{
		store: st,
		log:   log.With().Str("component", "linking").Logger(),
		now:   time.Now,
	}
	e.initMetrics()
	return e
}

// SetClock injects a clock for tests.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// AddSink registers a link notification sink.
func (e *Engine) AddSink(s Sink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sinks = append(e.sinks, s)
}

// Store exposes the underlying entity store for read-side facades.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Window returns the auto-link time window for a mission action.
func Window(action core.MissionAction) time.Duration {
	switch action {
	case core.ActionTrack:
		return windowTrack
	case core.ActionUAV, core.ActionSatellite:
		return windowAerial
	default:
		return windowDefault
	}
}

// PutTrackPoint inserts a canonical point into the store and runs the
// auto-link pass against existing missions. Returns the point id.
func (e *Engine) PutTrackPoint(p core.TrackPoint) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.store.PutTrackPoint(p)
	e.autoLinkMissions(p)
	return id
}

// PutMission inserts a mission into the store, generating an id when
// none is supplied, and runs the auto-link pass against existing
// points. Returns the mission id.
func (e *Engine) PutMission(m core.Mission) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if m.MissionID == "" {
		m.MissionID = e.store.NextMissionID()
	}
	id := e.store.PutMission(m)
	e.autoLinkTrackPoints(m)
	return id
}

// Bind unconditionally establishes the mission/point link, dissolving
// either side's previous partner first. Binding is never refused due to
// a prior link. Returns false only when either id is unknown.
func (e *Engine) Bind(missionID, pointID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	mission, ok := e.store.GetMission(missionID)
	if !ok {
		e.log.Warn().Str("missionId", missionID).Msg("bind: unknown mission")
		return false
	}
	point, ok := e.store.GetTrackPoint(pointID)
	if !ok {
		e.log.Warn().Str("pointId", pointID).Msg("bind: unknown point")
		return false
	}

	if mission.BoundPointID != "" && mission.BoundPointID != pointID {
		e.store.ClearBinding(missionID, mission.BoundPointID)
		e.dissolve(missionID, mission.BoundPointID)
	}
	if point.BoundMissionID != "" && point.BoundMissionID != missionID {
		e.store.ClearBinding(point.BoundMissionID, pointID)
		e.dissolve(point.BoundMissionID, pointID)
	}

	e.store.SetBinding(missionID, pointID)
	e.record(core.LinkRecord{
		MissionID: missionID,
		PointID:   pointID,
		LinkTime:  e.now().UTC(),
		Reason:    core.ReasonExplicitBind,
	})
	return true
}

// UnbindPair clears both sides of the link and removes its record.
// Returns false when either id is unknown.
func (e *Engine) UnbindPair(missionID, pointID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unbindPair(missionID, pointID)
}

func (e *Engine) unbindPair(missionID, pointID string) bool {
	if _, ok := e.store.GetMission(missionID); !ok {
		return false
	}
	if _, ok := e.store.GetTrackPoint(pointID); !ok {
		return false
	}
	e.store.ClearBinding(missionID, pointID)
	e.dissolve(missionID, pointID)
	return true
}

// UnbindMission looks up the mission's current partner and unbinds the
// pair. Returns false when the mission is unknown or unbound.
func (e *Engine) UnbindMission(missionID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	mission, ok := e.store.GetMission(missionID)
	if !ok || mission.BoundPointID == "" {
		return false
	}
	return e.unbindPair(missionID, mission.BoundPointID)
}

// UnbindPoint looks up the point's current partner and unbinds the
// pair. Returns false when the point is unknown or unbound.
func (e *Engine) UnbindPoint(pointID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	point, ok := e.store.GetTrackPoint(pointID)
	if !ok || point.BoundMissionID == "" {
		return false
	}
	return e.unbindPair(point.BoundMissionID, pointID)
}

// LinkedPoint returns the point bound to a mission, if any.
func (e *Engine) LinkedPoint(missionID string) (core.TrackPoint, bool) {
	mission, ok := e.store.GetMission(missionID)
	if !ok || mission.BoundPointID == "" {
		return core.TrackPoint{}, false
	}
	return e.store.GetTrackPoint(mission.BoundPointID)
}

// LinkedMission returns the mission bound to a point, if any.
func (e *Engine) LinkedMission(pointID string) (core.Mission, bool) {
	point, ok := e.store.GetTrackPoint(pointID)
	if !ok || point.BoundMissionID == "" {
		return core.Mission{}, false
	}
	return e.store.GetMission(point.BoundMissionID)
}

// autoLinkTrackPoints scans points in insertion order for a candidate
// for the mission. The engine binds to the first satisfying candidate,
// not the highest scoring one; the score is diagnostic only. (Ranking
// by score is a known latent improvement, deliberately not applied.)
func (e *Engine) autoLinkTrackPoints(mission core.Mission) {
	for _, point := range e.store.TrackPoints() {
		if e.tryAutoLink(mission, point) {
			return
		}
	}
}

// autoLinkMissions scans missions in insertion order for the new point.
// A mission explicitly sourced from this exact point binds immediately
// and short-circuits the heuristic for that pair.
func (e *Engine) autoLinkMissions(point core.TrackPoint) {
	for _, mission := range e.store.Missions() {
		if mission.SourceTrackPointID != "" && mission.SourceTrackPointID == point.PointID {
			if e.bindSourceMatch(mission, point) {
				return
			}
			continue
		}
		if e.tryAutoLink(mission, point) {
			return
		}
	}
}

// bindSourceMatch establishes the deterministic source-point link,
// provided neither side is already bound to a third party.
func (e *Engine) bindSourceMatch(mission core.Mission, point core.TrackPoint) bool {
	if point.BoundMissionID != "" && point.BoundMissionID != mission.MissionID {
		return false
	}
	if mission.BoundPointID != "" && mission.BoundPointID != point.PointID {
		return false
	}
	e.store.SetBinding(mission.MissionID, point.PointID)
	e.record(core.LinkRecord{
		MissionID: mission.MissionID,
		PointID:   point.PointID,
		LinkTime:  e.now().UTC(),
		Reason:    core.ReasonExplicitSourceMatch,
	})
	return true
}

// tryAutoLink applies the heuristic match and, on success, establishes
// the mutual bind. Automatic linking skips any candidate that would
// violate the one-to-one invariant; contention is expected and resolved
// by first writer wins, no displacement.
func (e *Engine) tryAutoLink(mission core.Mission, point core.TrackPoint) bool {
	window := Window(mission.Action)
	timeDiff := point.Timestamp.Sub(mission.Timestamp).Abs()
	if timeDiff > window || !identityMatch(mission, point) {
		return false
	}

	if point.BoundMissionID != "" && point.BoundMissionID != mission.MissionID {
		e.skipConflict("point", mission.MissionID, point.PointID)
		return false
	}
	if mission.BoundPointID != "" && mission.BoundPointID != point.PointID {
		e.skipConflict("mission", mission.MissionID, point.PointID)
		return false
	}

	e.store.SetBinding(mission.MissionID, point.PointID)
	e.record(core.LinkRecord{
		MissionID:      mission.MissionID,
		PointID:        point.PointID,
		LinkTime:       e.now().UTC(),
		Reason:         core.ReasonAutoTimeVessel,
		TimeDifference: timeDiff,
		LinkScore:      linkScore(mission, point, timeDiff, window),
		TimeWindow:     window,
	})
	return true
}

// identityMatch reports whether the mission targets the point's vessel:
// exact id, the "all" sentinel, or a textual mention in targetInfo.
func identityMatch(mission core.Mission, point core.TrackPoint) bool {
	if mission.TargetVesselID == point.VesselID {
		return true
	}
	if mission.TargetVesselID == core.TargetAllVessels {
		return true
	}
	return mission.TargetInfo != "" && strings.Contains(mission.TargetInfo, point.VesselID)
}

// linkScore computes the diagnostic association strength. It is
// recorded on the link record but never used to pick among candidates.
func linkScore(mission core.Mission, point core.TrackPoint, timeDiff, window time.Duration) float64 {
	timeScore := 1 - float64(timeDiff)/float64(window)
	if timeScore < 0 {
		timeScore = 0
	}

	taskTypeScore := 0.0
	if point.HasTask {
		taskTypeScore = 0.3
	}

	typeScore := 0.2
	switch {
	case point.Kind == core.KindFuture && mission.IsScheduled:
		typeScore = 0.5
	case point.Kind == core.KindCurrent:
		typeScore = 0.8
	}

	return timeScore*0.5 + taskTypeScore + typeScore*0.2
}

func (e *Engine) record(rec core.LinkRecord) {
	e.store.SetLink(rec)
	for _, s := range e.sinks {
		s.LinkFormed(rec)
	}
	e.countLink(context.Background(), rec.Reason)
	e.log.Debug().
		Str("missionId", rec.MissionID).
		Str("pointId", rec.PointID).
		Str("reason", string(rec.Reason)).
		Float64("score", rec.LinkScore).
		Msg("link formed")
}

func (e *Engine) dissolve(missionID, pointID string) {
	if _, ok := e.store.GetLink(missionID, pointID); !ok {
		return
	}
	e.store.DeleteLink(missionID, pointID)
	for _, s := range e.sinks {
		s.LinkDissolved(missionID, pointID)
	}
	e.log.Debug().
		Str("missionId", missionID).
		Str("pointId", pointID).
		Msg("link dissolved")
}

func (e *Engine) skipConflict(side, missionID, pointID string) {
	e.countConflict(context.Background(), side)
	e.log.Debug().
		Str("missionId", missionID).
		Str("pointId", pointID).
		Str("boundSide", side).
		Msg("auto-link candidate skipped, already bound")
}
