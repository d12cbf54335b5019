package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tempio/commander-tracker/charts"
	"github.com/tempio/commander-tracker/models"
	"github.com/tempio/commander-tracker/stats"
	"github.com/tempio/commander-tracker/storage"
)

// SnapshotFile is one artifact of a published snapshot.
type SnapshotFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url,omitempty"`
}

// SnapshotManifest describes a published snapshot: a uuid directory of
// the stats JSON, the games CSV and the rendered dashboards.
type SnapshotManifest struct {
	ID           string         `json:"id"`
	GeneratedUTC string         `json:"generated_utc"`
	Alpha        float64        `json:"alpha"`
	Files        []SnapshotFile `json:"files"`
}

type ExportService interface {
	WriteStatsJSON(ctx context.Context, w io.Writer, alpha float64, filters models.StatsFilters) error
	WriteGamesCSV(ctx context.Context, w io.Writer) error
	PublishSnapshot(ctx context.Context, alpha float64) (*SnapshotManifest, error)
	DeleteSnapshot(ctx context.Context, id string) error
}

type exportService struct {
	statsService     StatsService
	dashboardService DashboardService
	uploader         storage.SnapshotUploader // nil when object storage is not configured
	exportDir        string
	logger           *slog.Logger
}

func NewExportService(
	statsService StatsService,
	dashboardService DashboardService,
	uploader storage.SnapshotUploader,
	exportDir string,
	logger *slog.Logger,
) ExportService {
	return &exportService{
		statsService:     statsService,
		dashboardService: dashboardService,
		uploader:         uploader,
		exportDir:        exportDir,
		logger:           logger,
	}
}

func (s *exportService) WriteStatsJSON(ctx context.Context, w io.Writer, alpha float64, filters models.StatsFilters) error {
	payload, err := s.statsService.BuildPayload(ctx, stats.ClampAlpha(alpha), filters)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("%w: stats json: %w", ErrExportRenderFailed, err)
	}
	return nil
}

var csvHeader = []string{"game_id", "played_at_utc", "participants", "winner_player", "notes", "lineup"}

// WriteGamesCSV emits one row per game. The lineup column joins
// "Player=Commander" pairs with " | ", sorted by player so exports
// diff cleanly.
func (s *exportService) WriteGamesCSV(ctx context.Context, w io.Writer) error {
	snap, err := s.statsService.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	byGame := stats.GroupEntriesByGame(snap.Entries)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("%w: csv header: %w", ErrExportRenderFailed, err)
	}
	for _, g := range snap.Games {
		pod := byGame[g.ID]
		winner := ""
		if g.WinnerPlayer != nil {
			winner = *g.WinnerPlayer
		}
		notes := ""
		if g.Notes != nil {
			notes = *g.Notes
		}
		row := []string{
			strconv.Itoa(g.ID),
			g.PlayedAt.UTC().Format(time.RFC3339),
			strconv.Itoa(len(pod)),
			winner,
			notes,
			lineupColumn(pod),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%w: csv row for game %d: %w", ErrExportRenderFailed, g.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: csv flush: %w", ErrExportRenderFailed, err)
	}
	return nil
}

func lineupColumn(pod []models.GameEntry) string {
	parts := make([]string, len(pod))
	for i, e := range pod {
		parts[i] = e.Player + "=" + e.Commander
	}
	sort.Slice(parts, func(i, j int) bool {
		return strings.ToLower(parts[i]) < strings.ToLower(parts[j])
	})
	return strings.Join(parts, " | ")
}

// PublishSnapshot writes the full artifact set under
// <exportDir>/<uuid>/ and, when object storage is configured, uploads
// each file under the same key prefix.
func (s *exportService) PublishSnapshot(ctx context.Context, alpha float64) (*SnapshotManifest, error) {
	alpha = stats.ClampAlpha(alpha)
	manifest := &SnapshotManifest{
		ID:           uuid.New().String(),
		GeneratedUTC: time.Now().UTC().Format(time.RFC3339),
		Alpha:        alpha,
	}

	dir := filepath.Join(s.exportDir, manifest.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}

	artifacts := []struct {
		name        string
		contentType string
		render      func(io.Writer) error
	}{
		{"stats.json", "application/json", func(w io.Writer) error {
			return s.WriteStatsJSON(ctx, w, alpha, models.StatsFilters{})
		}},
		{"games.csv", "text/csv", func(w io.Writer) error {
			return s.WriteGamesCSV(ctx, w)
		}},
		{"dashboard.html", "text/html", func(w io.Writer) error {
			payload, err := s.dashboardService.Classic(ctx, DashboardParams{})
			if err != nil {
				return err
			}
			return charts.RenderDashboard(w, payload)
		}},
		{"dashboard_bracket.html", "text/html", func(w io.Writer) error {
			payload, err := s.dashboardService.Bracket(ctx, DashboardParams{Alpha: &alpha})
			if err != nil {
				return err
			}
			return charts.RenderDashboard(w, payload)
		}},
	}

	for _, a := range artifacts {
		var buf bytes.Buffer
		if err := a.render(&buf); err != nil {
			return nil, fmt.Errorf("render %s: %w", a.name, err)
		}

		path := filepath.Join(dir, a.name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		file := SnapshotFile{Name: a.name, Path: path}

		if s.uploader != nil {
			key := fmt.Sprintf("snapshots/%s/%s", manifest.ID, a.name)
			result, err := s.uploader.Upload(ctx, key, a.contentType, bytes.NewReader(buf.Bytes()))
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrSnapshotUploadFailed, a.name, err)
			}
			file.URL = result.Location
		}
		manifest.Files = append(manifest.Files, file)
	}

	s.logger.Info("snapshot published",
		slog.String("snapshot_id", manifest.ID),
		slog.Int("files", len(manifest.Files)),
		slog.Bool("uploaded", s.uploader != nil))
	return manifest, nil
}

var snapshotArtifactNames = []string{"stats.json", "games.csv", "dashboard.html", "dashboard_bracket.html"}

// DeleteSnapshot removes a published snapshot's local directory and,
// when object storage is configured, its uploaded artifacts.
func (s *exportService) DeleteSnapshot(ctx context.Context, id string) error {
	// The id doubles as a directory name; only uuids are accepted.
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: snapshot id %q: %w", ErrValidationFailed, id, err)
	}

	dir := filepath.Join(s.exportDir, id)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return ErrSnapshotNotFound
		}
		return fmt.Errorf("stat snapshot dir %s: %w", dir, err)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove snapshot dir %s: %w", dir, err)
	}

	if s.uploader != nil {
		for _, name := range snapshotArtifactNames {
			key := fmt.Sprintf("snapshots/%s/%s", id, name)
			if err := s.uploader.Delete(ctx, key); err != nil {
				return fmt.Errorf("delete uploaded %s: %w", key, err)
			}
		}
	}

	s.logger.Info("snapshot deleted",
		slog.String("snapshot_id", id),
		slog.Bool("uploaded", s.uploader != nil))
	return nil
}
