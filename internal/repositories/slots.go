package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// SlotRepository stores named string values in the storage table.
type SlotRepository struct {
	db *sql.DB
}

// NewSlotRepository creates a new [SlotRepository] with the given database connection
func NewSlotRepository(db *sql.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// Load returns the values of the requested slots. Slots that are not set are absent from the map.
func (r *SlotRepository) Load(keys ...string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return values, nil
	}

	query := fmt.Sprintf("SELECT key, value FROM storage WHERE key IN (%s)", placeholders(len(keys)))
	rows, err := r.db.Query(query, toArgs(keys)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query storage: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan storage slot: %w", err)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating storage slots: %w", err)
	}
	return values, nil
}

// Save upserts every slot in values within one transaction.
func (r *SlotRepository) Save(values map[string]string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	now := time.Now()
	for key, value := range values {
		if _, err := tx.Exec(query, key, value, now); err != nil {
			return fmt.Errorf("failed to save slot %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit slots: %w", err)
	}
	return nil
}

// Delete removes the named slots within one transaction. Missing slots are ignored.
func (r *SlotRepository) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf("DELETE FROM storage WHERE key IN (%s)", placeholders(len(keys)))
	if _, err := tx.Exec(query, toArgs(keys)...); err != nil {
		return fmt.Errorf("failed to delete slots: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit slot deletion: %w", err)
	}
	return nil
}

// UpdatedAt returns when a slot was last written, or the zero time when it is not set.
func (r *SlotRepository) UpdatedAt(key string) (time.Time, error) {
	var updatedAt time.Time
	err := r.db.QueryRow("SELECT updated_at FROM storage WHERE key = ?", key).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query slot %s: %w", key, err)
	}
	return updatedAt, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toArgs(keys []string) []any {
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	return args
}
