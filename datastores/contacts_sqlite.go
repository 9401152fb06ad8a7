package datastores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// ContactsSQLite implements [ContactsStore] on a SQLite database file.
//
// Name uniqueness is enforced by a unique index, so concurrent creates of the
// same name cannot both succeed.
type ContactsSQLite struct {
	db *sql.DB
}

var _ ContactsStore = (*ContactsSQLite)(nil)

// OpenContactsSQLite opens or creates the database at path and applies the
// embedded migrations.
func OpenContactsSQLite(ctx context.Context, path string) (*ContactsSQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite: database path is required")
	}
	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if err := applyMigrations(ctx, db, migrationsFS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	return &ContactsSQLite{db: db}, nil
}

func (s *ContactsSQLite) Close() error { return s.db.Close() }

func (s *ContactsSQLite) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *ContactsSQLite) List(ctx context.Context) ([]*Contact, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, number FROM contacts ORDER BY id`)
	if err != nil {
		return nil, persistence("list contacts", err)
	}
	defer rows.Close()

	contacts := []*Contact{}
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Number); err != nil {
			return nil, persistence("scan contact", err)
		}
		contacts = append(contacts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("list contacts", err)
	}
	return contacts, nil
}

func (s *ContactsSQLite) Get(ctx context.Context, id ContactID) (*Contact, error) {
	var c Contact
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, number FROM contacts WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Number)
	switch {
	case err == nil:
		return &c, nil
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrObjectNotFound
	default:
		return nil, persistence("get contact", err)
	}
}

func (s *ContactsSQLite) Create(ctx context.Context, c *Contact) (ContactID, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (name, number) VALUES (?, ?)`, c.Name, c.Number,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateName
		}
		return 0, persistence("create contact", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, persistence("create contact", err)
	}
	return ContactID(id), nil
}

func (s *ContactsSQLite) Update(ctx context.Context, id ContactID, c *Contact) (*Contact, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET name = ?, number = ? WHERE id = ?`, c.Name, c.Number, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, persistence("update contact", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, persistence("update contact", err)
	}
	if n == 0 {
		return nil, ErrObjectNotFound
	}
	return &Contact{ID: id, Name: c.Name, Number: c.Number}, nil
}

func (s *ContactsSQLite) Delete(ctx context.Context, id ContactID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return persistence("delete contact", err)
	}
	return nil
}

func (s *ContactsSQLite) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n)
	if err != nil {
		return 0, persistence("count contacts", err)
	}
	return n, nil
}

func persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
