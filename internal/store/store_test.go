package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/seawatch/seawatch/internal/model/core"
)

func TestStore_PutAndGetTrackPoint(t *testing.T) {
	s := New()

	p := core.TrackPoint{PointID: "TRACK-1", VesselID: "cargo_THLCH1"}
	if got := s.PutTrackPoint(p); got != "TRACK-1" {
		t.Errorf("PutTrackPoint returned %q, want TRACK-1", got)
	}

	stored, ok := s.GetTrackPoint("TRACK-1")
	if !ok {
		t.Fatal("expected to find TRACK-1")
	}
	if stored.VesselID != "cargo_THLCH1" {
		t.Errorf("VesselID = %q, want cargo_THLCH1", stored.VesselID)
	}

	if _, ok := s.GetTrackPoint("TRACK-2"); ok {
		t.Error("expected TRACK-2 to be absent")
	}
}

func TestStore_PutTrackPoint_OverwriteKeepsOrder(t *testing.T) {
	s := New()
	s.PutTrackPoint(core.TrackPoint{PointID: "a"})
	s.PutTrackPoint(core.TrackPoint{PointID: "b"})
	s.PutTrackPoint(core.TrackPoint{PointID: "a", VesselID: "updated"})

	points := s.TrackPoints()
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[0].PointID != "a" || points[1].PointID != "b" {
		t.Errorf("order = [%s %s], want [a b]", points[0].PointID, points[1].PointID)
	}
	if points[0].VesselID != "updated" {
		t.Errorf("overwrite lost: VesselID = %q", points[0].VesselID)
	}
}

func TestStore_MissionsInsertionOrder(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		s.PutMission(core.Mission{MissionID: fmt.Sprintf("m-%d", i)})
	}

	missions := s.Missions()
	if len(missions) != 5 {
		t.Fatalf("got %d missions, want 5", len(missions))
	}
	for i, m := range missions {
		want := fmt.Sprintf("m-%d", i)
		if m.MissionID != want {
			t.Errorf("missions[%d] = %q, want %q", i, m.MissionID, want)
		}
	}
}

func TestStore_NextMissionID(t *testing.T) {
	s := New()
	if id := s.NextMissionID(); id != "MISSION-1" {
		t.Errorf("first id = %q, want MISSION-1", id)
	}
	if id := s.NextMissionID(); id != "MISSION-2" {
		t.Errorf("second id = %q, want MISSION-2", id)
	}
}

func TestStore_LinkRecords(t *testing.T) {
	s := New()

	rec := core.LinkRecord{
		MissionID: "MISSION-1",
		PointID:   "TRACK-1",
		LinkTime:  time.Now().UTC(),
		Reason:    core.ReasonAutoTimeVessel,
	}
	s.SetLink(rec)

	got, ok := s.GetLink("MISSION-1", "TRACK-1")
	if !ok {
		t.Fatal("expected link record for MISSION-1/TRACK-1")
	}
	if got.Reason != core.ReasonAutoTimeVessel {
		t.Errorf("Reason = %q, want %q", got.Reason, core.ReasonAutoTimeVessel)
	}

	// replacing the same pair does not grow the table
	rec.Reason = core.ReasonExplicitBind
	s.SetLink(rec)
	if links := s.Links(); len(links) != 1 {
		t.Errorf("got %d link records, want 1", len(links))
	}

	s.DeleteLink("MISSION-1", "TRACK-1")
	if _, ok := s.GetLink("MISSION-1", "TRACK-1"); ok {
		t.Error("expected link record to be deleted")
	}
	// deleting again is a no-op
	s.DeleteLink("MISSION-1", "TRACK-1")
}

func TestStore_SnapshotsAreCopies(t *testing.T) {
	s := New()
	s.PutTrackPoint(core.TrackPoint{PointID: "p1", VesselID: "original"})
	s.PutMission(core.Mission{MissionID: "m1", Progress: 10})

	p, _ := s.GetTrackPoint("p1")
	p.VesselID = "scribbled"
	if stored, _ := s.GetTrackPoint("p1"); stored.VesselID != "original" {
		t.Errorf("GetTrackPoint leaked shared state: VesselID = %q", stored.VesselID)
	}

	points := s.TrackPoints()
	points[0].BoundMissionID = "scribbled"
	if stored, _ := s.GetTrackPoint("p1"); stored.BoundMissionID != "" {
		t.Errorf("TrackPoints leaked shared state: BoundMissionID = %q", stored.BoundMissionID)
	}

	missions := s.Missions()
	missions[0].Progress = 99
	if stored, _ := s.GetMission("m1"); stored.Progress != 10 {
		t.Errorf("Missions leaked shared state: Progress = %d", stored.Progress)
	}
}

func TestStore_UpdateMission(t *testing.T) {
	s := New()
	s.PutMission(core.Mission{MissionID: "m1", Progress: 10})

	if !s.UpdateMission("m1", func(m *core.Mission) { m.Progress = 42 }) {
		t.Fatal("UpdateMission returned false for known id")
	}
	if m, _ := s.GetMission("m1"); m.Progress != 42 {
		t.Errorf("Progress = %d, want 42", m.Progress)
	}

	if s.UpdateMission("missing", func(m *core.Mission) {}) {
		t.Error("UpdateMission returned true for unknown id")
	}
}

func TestStore_SetAndClearBinding(t *testing.T) {
	s := New()
	s.PutTrackPoint(core.TrackPoint{PointID: "p1"})
	s.PutMission(core.Mission{MissionID: "m1"})

	s.SetBinding("m1", "p1")
	m, _ := s.GetMission("m1")
	p, _ := s.GetTrackPoint("p1")
	if m.BoundPointID != "p1" || p.BoundMissionID != "m1" {
		t.Fatalf("binding = (%q, %q), want (p1, m1)", m.BoundPointID, p.BoundMissionID)
	}

	// clearing with a mismatched partner leaves the bind alone
	s.ClearBinding("m1", "p2")
	if m, _ := s.GetMission("m1"); m.BoundPointID != "p1" {
		t.Errorf("mismatched clear removed the bind: %q", m.BoundPointID)
	}

	s.ClearBinding("m1", "p1")
	m, _ = s.GetMission("m1")
	p, _ = s.GetTrackPoint("p1")
	if m.BoundPointID != "" || p.BoundMissionID != "" {
		t.Errorf("binding not cleared: (%q, %q)", m.BoundPointID, p.BoundMissionID)
	}
}

func TestStore_Counts(t *testing.T) {
	s := New()
	s.PutTrackPoint(core.TrackPoint{PointID: "p1"})
	s.PutTrackPoint(core.TrackPoint{PointID: "p2"})
	s.PutMission(core.Mission{MissionID: "m1"})
	s.SetLink(core.LinkRecord{MissionID: "m1", PointID: "p1"})

	points, missions, links := s.Counts()
	if points != 2 || missions != 1 || links != 1 {
		t.Errorf("Counts() = (%d, %d, %d), want (2, 1, 1)", points, missions, links)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.PutTrackPoint(core.TrackPoint{PointID: fmt.Sprintf("p-%d", n)})
		}(i)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("m-%d", n)
			s.PutMission(core.Mission{MissionID: id})
			s.SetBinding(id, fmt.Sprintf("p-%d", n))
			s.UpdateMission(id, func(m *core.Mission) { m.Progress = n })
			s.TrackPoints()
		}(i)
	}
	wg.Wait()

	points, missions, _ := s.Counts()
	if points != 50 || missions != 50 {
		t.Errorf("Counts() = (%d, %d), want (50, 50)", points, missions)
	}
}
