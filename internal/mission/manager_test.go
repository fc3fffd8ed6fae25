package mission

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seawatch/seawatch/internal/canon"
	"github.com/seawatch/seawatch/internal/linking"
	"github.com/seawatch/seawatch/internal/model/core"
	"github.com/seawatch/seawatch/internal/store"
)

var baseTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestManager() *Manager {
	clock := func() time.Time { return baseTime }
	engine := linking.New(store.New(), zerolog.Nop())
	engine.SetClock(clock)
	m := NewManager(engine, canon.NewWithClock(clock), zerolog.Nop())
	m.SetClock(clock)
	return m
}

// captureSink records ingested entities.
type captureSink struct {
	points   []core.TrackPoint
	missions []core.Mission
}

func (s *captureSink) PointIngested(p core.TrackPoint) { s.points = append(s.points, p) }
func (s *captureSink) MissionUpserted(m core.Mission)  { s.missions = append(s.missions, m) }

func TestCreateTrackPoint(t *testing.T) {
	m := newTestManager()
	sink := &captureSink{}
	m.AddSink(sink)

	id, err := m.CreateTrackPoint(core.RawPoint{
		PointID:  "p1",
		VesselID: "vessel-1",
		Lat:      12.5,
		Lon:      100.9,
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", id)

	p, ok := m.GetTrackPoint("p1")
	require.True(t, ok)
	assert.Equal(t, "vessel-1", p.VesselID)
	assert.Equal(t, core.KindNormal, p.Kind)

	require.Len(t, sink.points, 1)
	assert.Equal(t, "p1", sink.points[0].PointID)
}

func TestCreateTrackPoint_RejectsBadTimestamp(t *testing.T) {
	m := newTestManager()

	_, err := m.CreateTrackPoint(core.RawPoint{PointID: "p1", Timestamp: "yesterday"})
	require.Error(t, err)
	assert.ErrorIs(t, err, canon.ErrInvalidTimestamp)

	_, ok := m.GetTrackPoint("p1")
	assert.False(t, ok, "rejected point must not be stored")
}

func TestCreateMission_Defaults(t *testing.T) {
	m := newTestManager()

	id := m.CreateMission(core.Mission{
		Action:         core.ActionTrack,
		TargetVesselID: "vessel-1",
	})
	assert.Equal(t, "MISSION-1", id)

	created, ok := m.GetMission(id)
	require.True(t, ok)
	assert.Equal(t, core.StatusDispatched, created.Status)
	assert.Equal(t, baseTime, created.Timestamp)
}

func TestCreateMission_ScheduledStatus(t *testing.T) {
	m := newTestManager()

	id := m.CreateMission(core.Mission{
		Action:      core.ActionUAV,
		IsScheduled: true,
	})
	created, _ := m.GetMission(id)
	assert.Equal(t, core.StatusScheduled, created.Status)
}

func TestCreateMission_DedupOnSourcePoint(t *testing.T) {
	m := newTestManager()

	first := m.CreateMission(core.Mission{
		Action:             core.ActionUAV,
		Type:               "UAV reconnaissance",
		TargetVesselID:     "vessel-1",
		SourceTrackPointID: "p1",
	})
	second := m.CreateMission(core.Mission{
		Action:             core.ActionUAV,
		Type:               "UAV reconnaissance",
		TargetVesselID:     "vessel-1",
		SourceTrackPointID: "p1",
		TargetInfo:         "updated detail",
		Progress:           40,
	})

	assert.Equal(t, first, second, "same source point and shape reuses the mission")
	_, missions, _ := m.Counts()
	assert.Equal(t, 1, missions)

	merged, _ := m.GetMission(first)
	assert.Equal(t, "updated detail", merged.TargetInfo)
	assert.Equal(t, 40, merged.Progress)
}

func TestCreateMission_DedupKeyIsExact(t *testing.T) {
	m := newTestManager()

	base := core.Mission{
		Action:             core.ActionUAV,
		Type:               "UAV reconnaissance",
		SourceTrackPointID: "p1",
	}

	first := m.CreateMission(base)

	differentAction := base
	differentAction.Action = core.ActionSatellite
	assert.NotEqual(t, first, m.CreateMission(differentAction))

	differentSchedule := base
	differentSchedule.IsScheduled = true
	assert.NotEqual(t, first, m.CreateMission(differentSchedule))

	noSource := base
	noSource.SourceTrackPointID = ""
	assert.NotEqual(t, first, m.CreateMission(noSource))

	_, missions, _ := m.Counts()
	assert.Equal(t, 4, missions)
}

func TestCreateMission_MergeNeverRegressesProgress(t *testing.T) {
	m := newTestManager()

	id := m.CreateMission(core.Mission{
		Action:             core.ActionTrack,
		SourceTrackPointID: "p1",
		Progress:           60,
	})
	m.CreateMission(core.Mission{
		Action:             core.ActionTrack,
		SourceTrackPointID: "p1",
		Progress:           20,
	})

	merged, _ := m.GetMission(id)
	assert.Equal(t, 60, merged.Progress)
}

func TestMissionAutoLinksOnCreate(t *testing.T) {
	m := newTestManager()

	_, err := m.CreateTrackPoint(core.RawPoint{
		PointID:   "p1",
		VesselID:  "vessel-1",
		Timestamp: baseTime.Format(time.RFC3339),
	})
	require.NoError(t, err)

	id := m.CreateMission(core.Mission{
		Action:         core.ActionTrack,
		TargetVesselID: "vessel-1",
		Timestamp:      baseTime.Add(time.Hour),
	})

	linked := m.GetLinkedTrackPoints(id)
	require.Len(t, linked, 1)
	assert.Equal(t, "p1", linked[0].PointID)

	back := m.GetLinkedMissions("p1")
	require.Len(t, back, 1)
	assert.Equal(t, id, back[0].MissionID)
}

func TestGetLinked_EmptyNotNil(t *testing.T) {
	m := newTestManager()
	id := m.CreateMission(core.Mission{Action: core.ActionNotify, TargetVesselID: "none"})

	assert.NotNil(t, m.GetLinkedTrackPoints(id))
	assert.Empty(t, m.GetLinkedTrackPoints(id))
	assert.NotNil(t, m.GetLinkedMissions("missing"))
}

func TestAdvanceStatus(t *testing.T) {
	m := newTestManager()
	id := m.CreateMission(core.Mission{Action: core.ActionTrack, TargetVesselID: "none"})

	require.NoError(t, m.AdvanceStatus(id, core.StatusArrived))
	require.NoError(t, m.AdvanceStatus(id, core.StatusExecuting))
	require.NoError(t, m.AdvanceStatus(id, core.StatusCompleted))

	mi, _ := m.GetMission(id)
	assert.Equal(t, core.StatusCompleted, mi.Status)
}

func TestAdvanceStatus_RejectsRegression(t *testing.T) {
	m := newTestManager()
	id := m.CreateMission(core.Mission{Action: core.ActionTrack, TargetVesselID: "none"})

	require.NoError(t, m.AdvanceStatus(id, core.StatusExecuting))

	err := m.AdvanceStatus(id, core.StatusArrived)
	assert.ErrorIs(t, err, ErrStatusRegression)

	mi, _ := m.GetMission(id)
	assert.Equal(t, core.StatusExecuting, mi.Status, "failed transition leaves status unchanged")
}

func TestAdvanceStatus_SameRankAllowed(t *testing.T) {
	m := newTestManager()
	id := m.CreateMission(core.Mission{
		Action:      core.ActionUAV,
		IsScheduled: true,
	})

	// scheduled -> dispatched shares a rank; the scheduled time arriving
	// is not a regression
	require.NoError(t, m.AdvanceStatus(id, core.StatusDispatched))
	mi, _ := m.GetMission(id)
	assert.Equal(t, core.StatusDispatched, mi.Status)
}

func TestAdvanceStatus_Errors(t *testing.T) {
	m := newTestManager()
	id := m.CreateMission(core.Mission{Action: core.ActionTrack, TargetVesselID: "none"})

	assert.ErrorIs(t, m.AdvanceStatus("missing", core.StatusArrived), ErrUnknownMission)
	assert.ErrorIs(t, m.AdvanceStatus(id, core.MissionStatus("launched")), ErrInvalidStatus)
}

func TestSetProgress(t *testing.T) {
	m := newTestManager()
	id := m.CreateMission(core.Mission{Action: core.ActionTrack, TargetVesselID: "none"})

	require.NoError(t, m.SetProgress(id, 55))
	mi, _ := m.GetMission(id)
	assert.Equal(t, 55, mi.Progress)
	assert.Equal(t, core.StatusDispatched, mi.Status)

	t.Run("clamped low", func(t *testing.T) {
		require.NoError(t, m.SetProgress(id, -10))
		mi, _ := m.GetMission(id)
		assert.Equal(t, 0, mi.Progress)
	})

	t.Run("clamped high completes", func(t *testing.T) {
		require.NoError(t, m.SetProgress(id, 250))
		mi, _ := m.GetMission(id)
		assert.Equal(t, 100, mi.Progress)
		assert.Equal(t, core.StatusCompleted, mi.Status)
	})

	t.Run("unknown mission", func(t *testing.T) {
		assert.ErrorIs(t, m.SetProgress("missing", 10), ErrUnknownMission)
	})
}

func TestSinkReceivesLifecycleUpdates(t *testing.T) {
	m := newTestManager()
	sink := &captureSink{}
	m.AddSink(sink)

	id := m.CreateMission(core.Mission{Action: core.ActionTrack, TargetVesselID: "none"})
	require.NoError(t, m.AdvanceStatus(id, core.StatusArrived))
	require.NoError(t, m.SetProgress(id, 100))

	require.Len(t, sink.missions, 3)
	assert.Equal(t, id, sink.missions[0].MissionID, "generated id reaches the sink")
	assert.Equal(t, core.StatusDispatched, sink.missions[0].Status)
	assert.Equal(t, core.StatusArrived, sink.missions[1].Status)
	assert.Equal(t, core.StatusCompleted, sink.missions[2].Status)
	assert.Equal(t, 100, sink.missions[2].Progress)
}
