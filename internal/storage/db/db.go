// internal/storage/db/db.go
package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"github.com/seawatch/seawatch/internal/database"
	"github.com/seawatch/seawatch/internal/model"
	"github.com/seawatch/seawatch/internal/model/convert"
	"github.com/seawatch/seawatch/internal/model/core"
)

// Backend writes session data through to the relational database. It
// upserts on the domain IDs so flushed updates overwrite earlier rows.
type Backend struct {
	manager   *database.Manager
	log       zerolog.Logger
	sessionID uint
}

// New creates a database backend on top of a connection manager.
func New(manager *database.Manager, log zerolog.Logger) *Backend {
	return &Backend{
		manager: manager,
		log:     log,
	}
}

// Init connects and migrates the schema.
func (b *Backend) Init() error {
	if err := b.manager.Connect(); err != nil {
		return err
	}
	return b.manager.Setup()
}

// Close releases the database connection.
func (b *Backend) Close() error {
	return b.manager.Close()
}

// StartSession creates the session row all other rows reference.
func (b *Backend) StartSession(name, tag string, start time.Time) error {
	session := model.SessionInfo{
		SessionName: name,
		StartTime:   start,
		Tag:         tag,
	}
	if err := b.manager.DB.Create(&session).Error; err != nil {
		return fmt.Errorf("failed to create session row: %w", err)
	}
	b.sessionID = session.ID
	b.log.Info().Uint("sessionId", b.sessionID).Str("name", name).Msg("Session started")
	return nil
}

// EndSession is a no-op for the database backend; rows are already
// persisted.
func (b *Backend) EndSession() error {
	return nil
}

// AddTrackPoint upserts the point row on PointID.
func (b *Backend) AddTrackPoint(p core.TrackPoint) error {
	row := convert.TrackPointToModel(p, b.sessionID)

	var existing model.TrackPoint
	err := b.manager.DB.Where("point_id = ?", row.PointID).First(&existing).Error
	if err == nil {
		row.ID = existing.ID
		return b.manager.DB.Save(&row).Error
	}
	return b.manager.DB.Create(&row).Error
}

// AddMission upserts the mission row on MissionID.
func (b *Backend) AddMission(m core.Mission) error {
	row := convert.MissionToModel(m, b.sessionID)

	var existing model.Mission
	err := b.manager.DB.Where("mission_id = ?", row.MissionID).First(&existing).Error
	if err == nil {
		row.ID = existing.ID
		return b.manager.DB.Save(&row).Error
	}
	return b.manager.DB.Create(&row).Error
}

// RecordLink appends an audit row for a formed link.
func (b *Backend) RecordLink(rec core.LinkRecord) error {
	row := convert.LinkRecordToModel(rec, b.sessionID)
	return b.manager.DB.Create(&row).Error
}

// RecordUnlink marks the newest open audit row for the pair dissolved,
// stamping the unlink time. No open row is not an error; the unlink may
// refer to a link flushed and dissolved within the same interval.
func (b *Backend) RecordUnlink(missionID, pointID string, at time.Time) error {
	var open model.LinkRecord
	err := b.manager.DB.
		Where("mission_id = ? AND point_id = ? AND dissolved = ?", missionID, pointID, false).
		Order("id DESC").
		First(&open).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return b.manager.DB.Model(&open).
		Updates(map[string]interface{}{"dissolved": true, "dissolved_at": at}).Error
}

// SaveEvent upserts the monitoring event row on its ID.
func (b *Backend) SaveEvent(e core.Event) error {
	row := convert.EventToModel(e, b.sessionID)

	var existing model.MonitorEvent
	err := b.manager.DB.Where("event_id = ?", row.EventID).First(&existing).Error
	if err == nil {
		row.ID = existing.ID
		return b.manager.DB.Save(&row).Error
	}
	return b.manager.DB.Create(&row).Error
}
