// Package convert maps core domain structs onto their gorm table
// models. Conversions are one-way; the in-memory store is the source of
// truth during a session and the database is a write-behind sink.
package convert

import (
	"encoding/json"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/seawatch/seawatch/internal/geo"
	"github.com/seawatch/seawatch/internal/model"
	"github.com/seawatch/seawatch/internal/model/core"
)

// TrackPointToModel converts a canonical point to its table row.
func TrackPointToModel(p core.TrackPoint, sessionID uint) model.TrackPoint {
	display, _ := json.Marshal(p.Display)

	row := model.TrackPoint{
		PointID:            p.PointID,
		SessionID:          sessionID,
		Lat:                p.Lat,
		Lon:                p.Lon,
		Timestamp:          p.Timestamp,
		Kind:               string(p.Kind),
		VesselID:           p.VesselID,
		Display:            display,
		HasTask:            p.HasTask,
		TaskType:           p.TaskType,
		TaskDescription:    p.TaskDescription,
		BoundMissionID:     p.BoundMissionID,
		Speed:              p.Speed,
		SignalStrength:     p.SignalStrength,
		DeviationFromRoute: p.DeviationFromRoute,
		InRestrictedZone:   p.InRestrictedZone,
	}

	if pt, err := geo.Coords3857From4326(p.Lon, p.Lat); err == nil {
		row.Geom = pt.AsGeometry().AsBinary()
	} else {
		row.Geom = geom.NewEmptyPoint(geom.DimXY).AsGeometry().AsBinary()
	}
	return row
}

// MissionToModel converts a mission to its table row.
func MissionToModel(m core.Mission, sessionID uint) model.Mission {
	return model.Mission{
		MissionID:          m.MissionID,
		SessionID:          sessionID,
		Action:             string(m.Action),
		Type:               m.Type,
		TargetVesselID:     m.TargetVesselID,
		TargetInfo:         m.TargetInfo,
		Status:             string(m.Status),
		Timestamp:          m.Timestamp,
		IsScheduled:        m.IsScheduled,
		SourceTrackPointID: m.SourceTrackPointID,
		BoundPointID:       m.BoundPointID,
		Progress:           m.Progress,
	}
}

// LinkRecordToModel converts a link record to its table row.
func LinkRecordToModel(rec core.LinkRecord, sessionID uint) model.LinkRecord {
	return model.LinkRecord{
		MissionID:      rec.MissionID,
		PointID:        rec.PointID,
		SessionID:      sessionID,
		LinkTime:       rec.LinkTime,
		Reason:         string(rec.Reason),
		TimeDifference: rec.TimeDifference.Milliseconds(),
		LinkScore:      rec.LinkScore,
		TimeWindow:     rec.TimeWindow.Milliseconds(),
	}
}

// EventToModel converts a monitoring event to its table row.
func EventToModel(e core.Event, sessionID uint) model.MonitorEvent {
	details := map[string]any{}
	switch {
	case e.Area != nil:
		details["area"] = e.Area
	case e.RF != nil:
		details["rf"] = e.RF
	case e.Vessel != nil:
		details["vessel"] = e.Vessel
	}
	raw, _ := json.Marshal(details)

	return model.MonitorEvent{
		EventID:        e.ID,
		SessionID:      sessionID,
		Kind:           string(e.Kind),
		Status:         string(e.Status),
		Details:        raw,
		EventCreatedAt: e.CreatedAt,
		EventUpdatedAt: e.UpdatedAt,
	}
}
