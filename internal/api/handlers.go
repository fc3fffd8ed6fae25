package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/seawatch/seawatch/internal/canon"
	"github.com/seawatch/seawatch/internal/mission"
	"github.com/seawatch/seawatch/internal/model/core"
)

// Track points

func (s *Server) handleListTrackPoints(w http.ResponseWriter, r *http.Request) {
	points := s.missions.TrackPoints()
	if r.URL.Query().Get("legacy") == "true" {
		raws := make([]core.RawPoint, 0, len(points))
		for _, p := range points {
			raws = append(raws, canon.Raw(p))
		}
		respondJSON(w, http.StatusOK, raws)
		return
	}
	respondJSON(w, http.StatusOK, points)
}

func (s *Server) handleCreateTrackPoint(w http.ResponseWriter, r *http.Request) {
	var raw core.RawPoint
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	id, err := s.missions.CreateTrackPoint(raw)
	if err != nil {
		if errors.Is(err, canon.ErrInvalidTimestamp) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	point, _ := s.missions.GetTrackPoint(id)
	respondJSON(w, http.StatusCreated, point)
}

func (s *Server) handleGetTrackPoint(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	point, ok := s.missions.GetTrackPoint(id)
	if !ok {
		respondError(w, http.StatusNotFound, "track point not found")
		return
	}
	if r.URL.Query().Get("legacy") == "true" {
		respondJSON(w, http.StatusOK, canon.Raw(point))
		return
	}
	respondJSON(w, http.StatusOK, point)
}

func (s *Server) handleLinkedMissions(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	respondJSON(w, http.StatusOK, s.missions.GetLinkedMissions(id))
}

// Missions

func (s *Server) handleListMissions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.missions.Missions())
}

func (s *Server) handleCreateMission(w http.ResponseWriter, r *http.Request) {
	var data core.Mission
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if data.Action == "" {
		respondError(w, http.StatusBadRequest, "action is required")
		return
	}

	id := s.missions.CreateMission(data)
	created, _ := s.missions.GetMission(id)
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetMission(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	m, ok := s.missions.GetMission(id)
	if !ok {
		respondError(w, http.StatusNotFound, "mission not found")
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (s *Server) handleLinkedTrackPoints(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	respondJSON(w, http.StatusOK, s.missions.GetLinkedTrackPoints(id))
}

func (s *Server) handleAdvanceStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Status core.MissionStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	err := s.missions.AdvanceStatus(id, body.Status)
	switch {
	case err == nil:
		m, _ := s.missions.GetMission(id)
		respondJSON(w, http.StatusOK, m)
	case errors.Is(err, mission.ErrUnknownMission):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, mission.ErrStatusRegression):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusBadRequest, err.Error())
	}
}

func (s *Server) handleSetProgress(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Progress int `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := s.missions.SetProgress(id, body.Progress); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	m, _ := s.missions.GetMission(id)
	respondJSON(w, http.StatusOK, m)
}

// Links

type linkRequest struct {
	MissionID string `json:"missionId"`
	PointID   string `json:"pointId"`
}

func (s *Server) handleBind(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.MissionID == "" || req.PointID == "" {
		respondError(w, http.StatusBadRequest, "missionId and pointId are required")
		return
	}

	if !s.missions.Bind(req.MissionID, req.PointID) {
		respondError(w, http.StatusNotFound, "mission or track point not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"bound": true})
}

func (s *Server) handleUnbindPair(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if !s.missions.UnbindPair(req.MissionID, req.PointID) {
		respondError(w, http.StatusNotFound, "mission or track point not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"unbound": true})
}

func (s *Server) handleUnbindMission(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.missions.UnbindMission(id) {
		respondError(w, http.StatusNotFound, "mission not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"unbound": true})
}

func (s *Server) handleUnbindPoint(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.missions.UnbindPoint(id) {
		respondError(w, http.StatusNotFound, "track point not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"unbound": true})
}

// Monitoring events

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.events.All())
}

func (s *Server) handleSaveEvent(w http.ResponseWriter, r *http.Request) {
	var e core.Event
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if e.Kind == "" {
		respondError(w, http.StatusBadRequest, "type is required")
		return
	}

	id := s.events.Save(e)
	saved, _ := s.events.Get(id)
	respondJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	e, ok := s.events.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (s *Server) handleEventStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Status core.EventStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ok := s.events.Update(id, func(e *core.Event) {
		e.Status = body.Status
	})
	if !ok {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}
	e, _ := s.events.Get(id)
	respondJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.events.Delete(id) {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
