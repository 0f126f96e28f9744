package sqlite

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/curate/pkg/types"
)

// favoritesTable stores liked places keyed by the decimal place ID.
type favoritesTable struct {
	backend *Backend
}

func parsePlaceID(id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidID, id)
	}
	return n, nil
}

// Get returns a *types.Favorite.
func (t *favoritesTable) Get(id string) (any, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	placeID, err := parsePlaceID(id)
	if err != nil {
		return nil, err
	}

	var created string
	err = b.db.QueryRow("SELECT created_at FROM favorites WHERE place_id = ?", placeID).Scan(&created)
	if isNoRows(err) {
		return nil, fmt.Errorf("favorite %d: %w", placeID, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying favorite: %w", err)
	}
	f := &types.Favorite{PlaceID: placeID}
	if f.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return f, nil
}

// Set likes a place. id may be empty when data carries the PlaceID. Liking
// an already liked place keeps the original timestamp.
func (t *favoritesTable) Set(id string, data any) (string, error) {
	var f types.Favorite
	switch v := data.(type) {
	case *types.Favorite:
		if v == nil {
			return "", types.ErrInvalidData
		}
		f = *v
	case types.Favorite:
		f = v
	case nil:
	default:
		return "", fmt.Errorf("%w: expected *types.Favorite, got %T", types.ErrInvalidData, data)
	}
	if id != "" {
		placeID, err := parsePlaceID(id)
		if err != nil {
			return "", err
		}
		if f.PlaceID != 0 && f.PlaceID != placeID {
			return "", fmt.Errorf("%w: id %s does not match place %d", types.ErrInvalidData, id, f.PlaceID)
		}
		f.PlaceID = placeID
	}
	if f.PlaceID <= 0 {
		return "", types.ErrInvalidID
	}

	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return "", types.ErrStoreDetached
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = b.now()
	}

	if _, err := b.db.Exec(
		"INSERT OR IGNORE INTO favorites (place_id, created_at) VALUES (?, ?)",
		f.PlaceID, formatTime(f.CreatedAt)); err != nil {
		return "", fmt.Errorf("inserting favorite: %w", err)
	}
	if err := t.persist(); err != nil {
		return "", err
	}
	b.logger.Debug("favorite added", zap.Int("place_id", f.PlaceID))
	return strconv.Itoa(f.PlaceID), nil
}

// Delete un-likes a place. Returns ErrNotFound if it was not liked.
func (t *favoritesTable) Delete(id string) error {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}
	placeID, err := parsePlaceID(id)
	if err != nil {
		return err
	}

	res, err := b.db.Exec("DELETE FROM favorites WHERE place_id = ?", placeID)
	if err != nil {
		return fmt.Errorf("deleting favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("favorite %d: %w", placeID, types.ErrNotFound)
	}
	if err := t.persist(); err != nil {
		return err
	}
	b.logger.Debug("favorite removed", zap.Int("place_id", placeID))
	return nil
}

// Fetch returns []any of *types.Favorite, most recently liked first.
// Favorites take no filters.
func (t *favoritesTable) Fetch(filter map[string]any) ([]any, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	if len(filter) > 0 {
		return nil, fmt.Errorf("%w: favorites take no filter", types.ErrInvalidData)
	}

	favs, err := t.all()
	if err != nil {
		return nil, err
	}
	out := make([]any, len(favs))
	for i, f := range favs {
		out[i] = f
	}
	return out, nil
}

func (t *favoritesTable) all() ([]*types.Favorite, error) {
	rows, err := t.backend.db.Query(
		"SELECT place_id, created_at FROM favorites ORDER BY created_at DESC, place_id")
	if err != nil {
		return nil, fmt.Errorf("querying favorites: %w", err)
	}
	defer rows.Close()

	var favs []*types.Favorite
	for rows.Next() {
		var (
			f       types.Favorite
			created string
		)
		if err := rows.Scan(&f.PlaceID, &created); err != nil {
			return nil, fmt.Errorf("scanning favorite: %w", err)
		}
		if f.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		favs = append(favs, &f)
	}
	return favs, rows.Err()
}

// persist rewrites favorites.jsonl from SQLite.
// The caller must hold the backend write lock.
func (t *favoritesTable) persist() error {
	favs, err := t.all()
	if err != nil {
		return err
	}
	rows := make([]favoriteJSON, len(favs))
	for i, f := range favs {
		rows[i] = favoriteJSON{PlaceID: f.PlaceID, CreatedAt: formatTime(f.CreatedAt)}
	}
	records, err := marshalRecords(rows)
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}
	if err := writeJSONL(t.backend.jsonlPath(favoritesJSONL), records); err != nil {
		return fmt.Errorf("persisting favorites: %w", err)
	}
	return nil
}
