// Package keychain remembers the session tokens of named CLI profiles so a
// login survives between invocations.
package keychain

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/ABGEO/magtifun.abgeo.dev/lib/timezone"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var ErrNotFound = errors.New("keychain: profile not found")

type Entry struct {
	Profile  string
	Username string
	Token    string
	SavedAt  time.Time
}

type Keychain struct {
	db *sql.DB
}

// Open applies pending migrations to db and returns a keychain backed by it.
func Open(db *sql.DB) (Keychain, error) {
	err := migrateUp(db)
	if err != nil {
		return Keychain{}, err
	}
	return Keychain{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}
	dbDriver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Save inserts or replaces the entry for entry.Profile, a zero SavedAt is
// set to the current time.
func (k Keychain) Save(ctx context.Context, entry Entry) error {
	if entry.Profile == "" {
		return fmt.Errorf("keychain: empty profile name")
	}
	if entry.SavedAt.IsZero() {
		entry.SavedAt = timezone.Now()
	}

	_, err := k.db.ExecContext(
		ctx,
		`insert into profile(name, username, token, saved_at) values (?, ?, ?, ?)
		on conflict(name) do update set
			username = excluded.username,
			token = excluded.token,
			saved_at = excluded.saved_at`,
		entry.Profile, entry.Username, entry.Token, entry.SavedAt.Unix(),
	)
	return err
}

func (k Keychain) Get(ctx context.Context, profile string) (Entry, error) {
	row := k.db.QueryRowContext(
		ctx,
		"select name, username, token, saved_at from profile where name = ?",
		profile,
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return entry, err
}

// Delete removes profile, deleting a profile that does not exist is not an error.
func (k Keychain) Delete(ctx context.Context, profile string) error {
	_, err := k.db.ExecContext(ctx, "delete from profile where name = ?", profile)
	return err
}

// List returns every saved entry ordered by profile name.
func (k Keychain) List(ctx context.Context) ([]Entry, error) {
	rows, err := k.db.QueryContext(ctx, "select name, username, token, saved_at from profile order by name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var entry Entry
	var savedAt int64
	err := row.Scan(&entry.Profile, &entry.Username, &entry.Token, &savedAt)
	if err != nil {
		return Entry{}, err
	}
	entry.SavedAt = time.Unix(savedAt, 0).In(timezone.Location)
	return entry, nil
}

// Close closes the underlying database.
func (k Keychain) Close() error {
	return k.db.Close()
}
