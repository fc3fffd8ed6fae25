// Package store holds the session's entity collections: track points,
// missions and the link-record table. It is lookup-only storage with no
// deletion; entities accumulate for the session's lifetime. All
// accessors return value snapshots; the stored entities are only ever
// touched under the store's write lock, so readers never share memory
// with a mutation in flight.
package store

import (
	"fmt"
	"sync"

	"github.com/seawatch/seawatch/internal/model/core"
)

// LinkKey identifies one mission/point association.
type LinkKey struct {
	MissionID string
	PointID   string
}

// Store is keyed storage for track points and missions. Insertion order
// is preserved per collection so auto-link scans iterate
// deterministically.
type Store struct {
	mu sync.RWMutex

	points   map[string]core.TrackPoint
	missions map[string]core.Mission
	links    map[LinkKey]core.LinkRecord

	pointOrder   []string
	missionOrder []string

	missionSeq int
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		points:   make(map[string]core.TrackPoint),
		missions: make(map[string]core.Mission),
		links:    make(map[LinkKey]core.LinkRecord),
	}
}

// PutTrackPoint inserts or overwrites a point by id and returns the id.
func (s *Store) PutTrackPoint(p core.TrackPoint) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.points[p.PointID]; !ok {
		s.pointOrder = append(s.pointOrder, p.PointID)
	}
	s.points[p.PointID] = p
	return p.PointID
}

// PutMission inserts or overwrites a mission by id and returns the id.
func (s *Store) PutMission(m core.Mission) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.missions[m.MissionID]; !ok {
		s.missionOrder = append(s.missionOrder, m.MissionID)
	}
	s.missions[m.MissionID] = m
	return m.MissionID
}

// GetTrackPoint returns a copy of the stored point, or false. There is
// no implicit creation.
func (s *Store) GetTrackPoint(id string) (core.TrackPoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.points[id]
	return p, ok
}

// GetMission returns a copy of the stored mission, or false.
func (s *Store) GetMission(id string) (core.Mission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.missions[id]
	return m, ok
}

// TrackPoints returns copies of all points in insertion order.
func (s *Store) TrackPoints() []core.TrackPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.TrackPoint, 0, len(s.pointOrder))
	for _, id := range s.pointOrder {
		out = append(out, s.points[id])
	}
	return out
}

// Missions returns copies of all missions in insertion order.
func (s *Store) Missions() []core.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Mission, 0, len(s.missionOrder))
	for _, id := range s.missionOrder {
		out = append(out, s.missions[id])
	}
	return out
}

// UpdateMission applies fn to the stored mission under the write lock.
// Returns false when the id is unknown.
func (s *Store) UpdateMission(id string, fn func(*core.Mission)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.missions[id]
	if !ok {
		return false
	}
	fn(&m)
	s.missions[id] = m
	return true
}

// SetBinding writes both sides of a mission/point bind in one critical
// section, so no reader can observe the pair half-linked.
func (s *Store) SetBinding(missionID, pointID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.missions[missionID]; ok {
		m.BoundPointID = pointID
		s.missions[missionID] = m
	}
	if p, ok := s.points[pointID]; ok {
		p.BoundMissionID = missionID
		s.points[pointID] = p
	}
}

// ClearBinding clears each side of the pair that still references the
// other, in one critical section.
func (s *Store) ClearBinding(missionID, pointID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.missions[missionID]; ok && m.BoundPointID == pointID {
		m.BoundPointID = ""
		s.missions[missionID] = m
	}
	if p, ok := s.points[pointID]; ok && p.BoundMissionID == missionID {
		p.BoundMissionID = ""
		s.points[pointID] = p
	}
}

// NextMissionID reserves the next generated mission id.
func (s *Store) NextMissionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missionSeq++
	return fmt.Sprintf("MISSION-%d", s.missionSeq)
}

// SetLink stores the link record for a pair, replacing any previous
// record for the same pair.
func (s *Store) SetLink(rec core.LinkRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[LinkKey{MissionID: rec.MissionID, PointID: rec.PointID}] = rec
}

// GetLink returns the link record for a pair, or false.
func (s *Store) GetLink(missionID, pointID string) (core.LinkRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.links[LinkKey{MissionID: missionID, PointID: pointID}]
	return rec, ok
}

// DeleteLink removes the link record for a pair, if present.
func (s *Store) DeleteLink(missionID, pointID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.links, LinkKey{MissionID: missionID, PointID: pointID})
}

// Links returns a snapshot of all link records.
func (s *Store) Links() []core.LinkRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.LinkRecord, 0, len(s.links))
	for _, rec := range s.links {
		out = append(out, rec)
	}
	return out
}

// Counts returns the number of stored points, missions and link
// records.
func (s *Store) Counts() (points, missions, links int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points), len(s.missions), len(s.links)
}
