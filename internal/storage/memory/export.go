package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kinasplayground/hammerremove/internal/geo"
)

// AuditExport is the root JSON structure of an export file.
type AuditExport struct {
	SessionStart string           `json:"sessionStart"`
	ExportedAt   string           `json:"exportedAt"`
	Removals     []RemovalJSON    `json:"removals"`
	ModeChanges  []ModeChangeJSON `json:"modeChanges"`
}

// RemovalJSON is one removal in an export file.
type RemovalJSON struct {
	ID         uint   `json:"id"`
	Time       string `json:"time"`
	PlayerID   string `json:"playerId"` // string keeps 64-bit IDs intact for JS readers
	Mode       string `json:"mode"`
	Stage      string `json:"stage,omitempty"`
	TargetID   uint64 `json:"targetId"`
	TargetKind string `json:"targetKind"`
	Position   string `json:"position"`
	Removed    int    `json:"removed"`
	Visited    int    `json:"visited"`
	Skipped    int    `json:"skipped"`
}

// ModeChangeJSON is one mode toggle in an export file.
type ModeChangeJSON struct {
	ID       uint   `json:"id"`
	Time     string `json:"time"`
	PlayerID string `json:"playerId"`
	Enabled  bool   `json:"enabled"`
}

// exportJSON writes the audit log to a (optionally gzipped) JSON file.
// Caller holds the lock.
func (b *Backend) exportJSON() error {
	export := b.buildExport()

	timestamp := b.started.Format("20060102_150405")
	filename := fmt.Sprintf("removals_%s.json", timestamp)
	if b.cfg.CompressOutput {
		filename += ".gz"
	}
	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var err error
	if b.cfg.CompressOutput {
		err = writeGzipJSON(outputPath, export)
	} else {
		err = writeJSON(outputPath, export)
	}
	if err != nil {
		return err
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) buildExport() AuditExport {
	export := AuditExport{
		SessionStart: b.started.Format(time.RFC3339),
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		Removals:     make([]RemovalJSON, 0, len(b.removals)),
		ModeChanges:  make([]ModeChangeJSON, 0, len(b.modeChanges)),
	}

	for _, r := range b.removals {
		export.Removals = append(export.Removals, RemovalJSON{
			ID:         r.ID,
			Time:       r.Time.UTC().Format(time.RFC3339Nano),
			PlayerID:   fmt.Sprint(r.PlayerID),
			Mode:       string(r.Mode),
			Stage:      r.Stage,
			TargetID:   r.TargetID,
			TargetKind: r.TargetKind.String(),
			Position:   geo.Vec3String(r.Position),
			Removed:    r.Removed,
			Visited:    r.Visited,
			Skipped:    r.Skipped,
		})
	}

	for _, c := range b.modeChanges {
		export.ModeChanges = append(export.ModeChanges, ModeChangeJSON{
			ID:       c.ID,
			Time:     c.Time.UTC().Format(time.RFC3339Nano),
			PlayerID: fmt.Sprint(c.PlayerID),
			Enabled:  c.Enabled,
		})
	}

	return export
}

func writeJSON(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeGzipJSON(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gw := gzip.NewWriter(f)
	if err := json.NewEncoder(gw).Encode(data); err != nil {
		gw.Close()
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return nil
}
