// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/seawatch/seawatch/internal/model/core"
)

// SessionExport is the root JSON structure written at session end.
type SessionExport struct {
	SessionName string            `json:"sessionName"`
	Tag         string            `json:"tag"`
	StartTime   time.Time         `json:"startTime"`
	EndTime     time.Time         `json:"endTime"`
	TrackPoints []core.TrackPoint `json:"trackPoints"`
	Missions    []core.Mission    `json:"missions"`
	Links       []LinkExportJSON  `json:"links"`
	Events      []core.Event      `json:"events"`
}

// LinkExportJSON flattens a link audit entry for export.
type LinkExportJSON struct {
	MissionID      string     `json:"missionId"`
	PointID        string     `json:"pointId"`
	LinkTime       time.Time  `json:"linkTime"`
	Reason         string     `json:"linkReason"`
	TimeDifference int64      `json:"timeDifference"` // milliseconds
	LinkScore      float64    `json:"linkScore"`
	TimeWindow     int64      `json:"timeWindow"` // milliseconds
	UnlinkedAt     *time.Time `json:"unlinkedAt,omitempty"`
}

// exportJSON writes the session data to a JSON file, gzipped when
// configured. Callers hold the lock.
func (b *Backend) exportJSON() error {
	export := b.buildExport()

	sessionName := strings.ReplaceAll(b.sessionName, " ", "_")
	sessionName = strings.ReplaceAll(sessionName, ":", "_")
	timestamp := b.sessionStart.Format("20060102_150405")

	var filename string
	if b.cfg.CompressOutput {
		filename = fmt.Sprintf("%s_%s.json.gz", sessionName, timestamp)
	} else {
		filename = fmt.Sprintf("%s_%s.json", sessionName, timestamp)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if b.cfg.CompressOutput {
		if err := writeGzipJSON(outputPath, export); err != nil {
			return err
		}
	} else {
		if err := writeJSON(outputPath, export); err != nil {
			return err
		}
	}

	b.lastExportPath = outputPath
	b.log.Info().
		Str("path", outputPath).
		Int("trackPoints", len(export.TrackPoints)).
		Int("missions", len(export.Missions)).
		Int("links", len(export.Links)).
		Int("events", len(export.Events)).
		Msg("Exported session")
	return nil
}

func (b *Backend) buildExport() SessionExport {
	export := SessionExport{
		SessionName: b.sessionName,
		Tag:         b.sessionTag,
		StartTime:   b.sessionStart,
		EndTime:     time.Now(),
		TrackPoints: make([]core.TrackPoint, len(b.trackPoints)),
		Missions:    make([]core.Mission, len(b.missions)),
		Links:       make([]LinkExportJSON, 0, len(b.links)),
		Events:      make([]core.Event, len(b.events)),
	}
	copy(export.TrackPoints, b.trackPoints)
	copy(export.Missions, b.missions)
	copy(export.Events, b.events)

	for _, entry := range b.links {
		export.Links = append(export.Links, LinkExportJSON{
			MissionID:      entry.Record.MissionID,
			PointID:        entry.Record.PointID,
			LinkTime:       entry.Record.LinkTime,
			Reason:         string(entry.Record.Reason),
			TimeDifference: entry.Record.TimeDifference.Milliseconds(),
			LinkScore:      entry.Record.LinkScore,
			TimeWindow:     entry.Record.TimeWindow.Milliseconds(),
			UnlinkedAt:     entry.UnlinkedAt,
		})
	}
	return export
}

func writeJSON(path string, export SessionExport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

func writeGzipJSON(path string, export SessionExport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	defer gz.Close()

	enc := json.NewEncoder(gz)
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}
