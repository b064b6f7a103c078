package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"simsiac/internal/menu"
)

// SchemaSQL creates the menu catalog table.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS menu_items (
  position INTEGER PRIMARY KEY,
  label    VARCHAR NOT NULL,
  shortcut VARCHAR,
  height   INTEGER NOT NULL CHECK (height > 0),
  action   VARCHAR
);`

// Entry is the stored form of a menu item. Action names a probe or other
// callback that the front-end resolves when building the menu.
type Entry struct {
	Position int    `json:"-" yaml:"-"`
	Label    string `json:"label" yaml:"label"`
	Shortcut string `json:"shortcut,omitempty" yaml:"shortcut,omitempty"`
	Height   int    `json:"height" yaml:"height"`
	Action   string `json:"action,omitempty" yaml:"action,omitempty"`
}

// Validate rejects entries the menu would refuse.
func (e Entry) Validate() error {
	if e.Height <= 0 {
		return fmt.Errorf("%w: %q has height %d", menu.ErrInvalidItem, e.Label, e.Height)
	}
	return nil
}

// Item converts the entry into a menu item. resolve maps the action name to a
// callback; it may be nil, and a nil result leaves the item without action.
func (e Entry) Item(resolve func(name string) menu.Action) menu.Item {
	opts := []menu.ItemOption{menu.WithShortcut(e.Shortcut)}
	if e.Action != "" && resolve != nil {
		if a := resolve(e.Action); a != nil {
			opts = append(opts, menu.WithAction(a))
		}
	}
	return menu.NewItem(e.Label, e.Height, opts...)
}

// Items converts entries in order.
func Items(entries []Entry, resolve func(name string) menu.Action) []menu.Item {
	items := make([]menu.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, e.Item(resolve))
	}
	return items
}

// Repo reads and writes catalog entries.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return nil
}

// Replace swaps the whole catalog for entries in one transaction. Positions
// are reassigned from the slice order.
func (r *Repo) Replace(ctx context.Context, entries []Entry) error {
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM menu_items`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO menu_items(position, label, shortcut, height, action) VALUES(?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, i, e.Label, nullEmpty(e.Shortcut), e.Height, nullEmpty(e.Action)); err != nil {
			return fmt.Errorf("failed to insert entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// Entries returns the catalog in display order.
func (r *Repo) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT position, label, shortcut, height, action FROM menu_items ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e                Entry
			shortcut, action sql.NullString
		)
		if err := rows.Scan(&e.Position, &e.Label, &shortcut, &e.Height, &action); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.Shortcut = shortcut.String
		e.Action = action.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count catalog: %w", err)
	}
	return n, nil
}

func nullEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
