package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
)

// loadStats reports per-file record counts from a JSONL load.
type loadStats struct {
	loaded  map[string]int
	skipped map[string]int
}

// loadAllJSONL reads the JSONL files from dataDir into SQLite inside one
// transaction: all succeed or the database remains empty. Malformed lines
// and records that violate constraints are skipped and counted. Unknown
// fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) (loadStats, error) {
	stats := loadStats{loaded: map[string]int{}, skipped: map[string]int{}}

	tx, err := db.Begin()
	if err != nil {
		return stats, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	loaders := []struct {
		file string
		load func(*sql.Tx, json.RawMessage) error
	}{
		{experiencesJSONL, loadExperience},
		{favoritesJSONL, loadFavorite},
	}
	for _, l := range loaders {
		records, skipped, err := readJSONL(filepath.Join(dataDir, l.file))
		if err != nil {
			return stats, err
		}
		for _, rec := range records {
			if err := l.load(tx, rec); err != nil {
				skipped++
				continue
			}
			stats.loaded[l.file]++
		}
		stats.skipped[l.file] = skipped
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("committing load transaction: %w", err)
	}
	return stats, nil
}

func loadExperience(tx *sql.Tx, rec json.RawMessage) error {
	var e experienceJSON
	if err := json.Unmarshal(rec, &e); err != nil {
		return err
	}
	if e.ExperienceID == "" || len(e.Places) == 0 {
		return fmt.Errorf("incomplete experience record")
	}
	created, err := parseTime(e.CreatedAt)
	if err != nil {
		return err
	}
	// A savepoint keeps a half-inserted experience out of the load.
	if _, err := tx.Exec("SAVEPOINT rec"); err != nil {
		return err
	}
	if err := insertExperience(tx, fromExperienceJSON(e, created)); err != nil {
		_, _ = tx.Exec("ROLLBACK TO rec")
		_, _ = tx.Exec("RELEASE rec")
		return err
	}
	_, err = tx.Exec("RELEASE rec")
	return err
}

func loadFavorite(tx *sql.Tx, rec json.RawMessage) error {
	var f favoriteJSON
	if err := json.Unmarshal(rec, &f); err != nil {
		return err
	}
	if f.PlaceID <= 0 {
		return fmt.Errorf("invalid place id %d", f.PlaceID)
	}
	created, err := parseTime(f.CreatedAt)
	if err != nil {
		return err
	}
	_, err = tx.Exec(
		"INSERT INTO favorites (place_id, created_at) VALUES (?, ?)",
		f.PlaceID, formatTime(created))
	return err
}
