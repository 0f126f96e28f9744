package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/curate/internal/textfold"
	"github.com/mesh-intelligence/curate/pkg/types"
)

// FilterQuery is the Fetch filter key for experiences. Its string value is
// matched case-insensitively against title, description and place names.
const FilterQuery = "query"

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

type experiencesTable struct {
	backend *Backend
}

// Get returns a *types.Experience.
func (t *experiencesTable) Get(id string) (any, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	if id == "" {
		return nil, types.ErrInvalidID
	}

	list, err := queryExperiences(b.db, "e.experience_id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("experience %s: %w", id, types.ErrNotFound)
	}
	return list[0], nil
}

// Set saves an experience. data must be a *types.Experience or
// types.Experience with at least one place. When id is empty the
// experience's own ID is used, and when that is empty too a UUID v7 is
// generated. A pointer argument receives the final ID and CreatedAt.
func (t *experiencesTable) Set(id string, data any) (string, error) {
	var e *types.Experience
	switch v := data.(type) {
	case *types.Experience:
		if v == nil {
			return "", types.ErrInvalidData
		}
		e = v
	case types.Experience:
		e = &v
	default:
		return "", fmt.Errorf("%w: expected *types.Experience, got %T", types.ErrInvalidData, data)
	}
	if e.Empty() {
		return "", types.ErrNoPlaces
	}

	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return "", types.ErrStoreDetached
	}

	if id == "" {
		id = e.ExperienceID
	}
	if id == "" {
		id = generateUUID()
	}
	e.ExperienceID = id
	if e.CreatedAt.IsZero() {
		e.CreatedAt = b.now().UTC()
	}

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()
	if err := deleteExperience(tx, id); err != nil {
		return "", err
	}
	if err := insertExperience(tx, e); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing experience: %w", err)
	}

	if err := t.persist(); err != nil {
		return "", err
	}
	b.logger.Debug("experience saved",
		zap.String("experience_id", id),
		zap.Int("places", len(e.Places)))
	return id, nil
}

// Delete removes an experience. Returns ErrNotFound if it does not exist.
func (t *experiencesTable) Delete(id string) error {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}
	if id == "" {
		return types.ErrInvalidID
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()
	res, err := tx.Exec("DELETE FROM experiences WHERE experience_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting experience: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("experience %s: %w", id, types.ErrNotFound)
	}
	if _, err := tx.Exec("DELETE FROM experience_places WHERE experience_id = ?", id); err != nil {
		return fmt.Errorf("deleting experience places: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	if err := t.persist(); err != nil {
		return err
	}
	b.logger.Debug("experience deleted", zap.String("experience_id", id))
	return nil
}

// Fetch returns []any of *types.Experience, newest first. The only
// supported filter key is FilterQuery.
func (t *experiencesTable) Fetch(filter map[string]any) ([]any, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	where := ""
	var args []any
	for key, val := range filter {
		if key != FilterQuery {
			return nil, fmt.Errorf("%w: unknown filter %q", types.ErrInvalidData, key)
		}
		q, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("%w: filter %q must be a string", types.ErrInvalidData, key)
		}
		if q = strings.TrimSpace(q); q == "" {
			continue
		}
		where = `e.search_text LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(textfold.Fold(q))+"%")
	}

	list, err := queryExperiences(b.db, where, args...)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(list))
	for i, e := range list {
		out[i] = e
	}
	return out, nil
}

// persist rewrites experiences.jsonl from SQLite, oldest first.
// The caller must hold the backend write lock.
func (t *experiencesTable) persist() error {
	b := t.backend
	list, err := queryExperiences(b.db, "")
	if err != nil {
		return err
	}
	rows := make([]experienceJSON, len(list))
	for i, e := range list {
		rows[len(list)-1-i] = toExperienceJSON(e)
	}
	records, err := marshalRecords(rows)
	if err != nil {
		return fmt.Errorf("encoding experiences: %w", err)
	}
	if err := writeJSONL(b.jsonlPath(experiencesJSONL), records); err != nil {
		return fmt.Errorf("persisting experiences: %w", err)
	}
	return nil
}

func insertExperience(ex execer, e *types.Experience) error {
	_, err := ex.Exec(
		`INSERT INTO experiences (experience_id, title, description, date, time, created_at, search_text)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ExperienceID, e.Title, e.Description, e.Date, e.Time, formatTime(e.CreatedAt), searchText(e))
	if err != nil {
		return fmt.Errorf("inserting experience: %w", err)
	}
	for i, p := range e.Places {
		_, err := ex.Exec(
			`INSERT INTO experience_places
			(experience_id, position, place_id, name, category, rating, address, image, description, website)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ExperienceID, i, p.ID, p.Name, p.Category, p.Rating,
			p.Address, p.Image, p.Description, p.Website)
		if err != nil {
			return fmt.Errorf("inserting experience place %d: %w", i, err)
		}
	}
	return nil
}

// searchText is the folded title, description and place names, one per
// line, matched by the query filter.
func searchText(e *types.Experience) string {
	fields := make([]string, 0, len(e.Places)+2)
	fields = append(fields, e.Title, e.Description)
	for _, p := range e.Places {
		fields = append(fields, p.Name)
	}
	return textfold.Fold(strings.Join(fields, "\n"))
}

func deleteExperience(ex execer, id string) error {
	if _, err := ex.Exec("DELETE FROM experience_places WHERE experience_id = ?", id); err != nil {
		return fmt.Errorf("deleting experience places: %w", err)
	}
	if _, err := ex.Exec("DELETE FROM experiences WHERE experience_id = ?", id); err != nil {
		return fmt.Errorf("deleting experience: %w", err)
	}
	return nil
}

// queryExperiences loads experiences matching where (empty for all) with
// their places, newest first.
func queryExperiences(q queryer, where string, args ...any) ([]*types.Experience, error) {
	query := `SELECT e.experience_id, e.title, e.description, e.date, e.time, e.created_at
		FROM experiences e`
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY e.created_at DESC, e.experience_id DESC"

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying experiences: %w", err)
	}
	var list []*types.Experience
	index := map[string]*types.Experience{}
	for rows.Next() {
		var (
			e       types.Experience
			created string
		)
		if err := rows.Scan(&e.ExperienceID, &e.Title, &e.Description, &e.Date, &e.Time, &created); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning experience: %w", err)
		}
		if e.CreatedAt, err = parseTime(created); err != nil {
			rows.Close()
			return nil, fmt.Errorf("experience %s created_at: %w", e.ExperienceID, err)
		}
		e.Places = []types.Place{}
		list = append(list, &e)
		index[e.ExperienceID] = &e
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(list) == 0 {
		return nil, nil
	}
	if err := attachPlaces(q, index); err != nil {
		return nil, err
	}
	return list, nil
}

func attachPlaces(q queryer, index map[string]*types.Experience) error {
	rows, err := q.Query(`SELECT experience_id, place_id, name, category, rating, address, image, description, website
		FROM experience_places ORDER BY experience_id, position`)
	if err != nil {
		return fmt.Errorf("querying experience places: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id string
			p  types.Place
		)
		if err := rows.Scan(&id, &p.ID, &p.Name, &p.Category, &p.Rating,
			&p.Address, &p.Image, &p.Description, &p.Website); err != nil {
			return fmt.Errorf("scanning experience place: %w", err)
		}
		if e, ok := index[id]; ok {
			e.Places = append(e.Places, p)
		}
	}
	return rows.Err()
}

// escapeLike escapes LIKE wildcards so user text matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func toExperienceJSON(e *types.Experience) experienceJSON {
	return experienceJSON{
		ExperienceID: e.ExperienceID,
		Title:        e.Title,
		Description:  e.Description,
		Date:         e.Date,
		Time:         e.Time,
		Places:       e.Places,
		CreatedAt:    formatTime(e.CreatedAt),
	}
}

func fromExperienceJSON(e experienceJSON, created time.Time) *types.Experience {
	return &types.Experience{
		ExperienceID: e.ExperienceID,
		Title:        e.Title,
		Description:  e.Description,
		Date:         e.Date,
		Time:         e.Time,
		Places:       e.Places,
		CreatedAt:    created,
	}
}

// isNoRows reports whether err is sql.ErrNoRows.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
