package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"exam-api/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const createVersionTable = `CREATE TABLE schema_migrations (
    version    NUMBER(19) NOT NULL,
    applied_at TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL,
    CONSTRAINT pk_schema_migrations PRIMARY KEY (version)
)`

// Migrator applies versioned migration files. Files are read through a
// golang-migrate source driver; statements are executed one at a time
// because Oracle rejects multi-statement execs.
type Migrator struct {
	db     *sqlx.DB
	source source.Driver
}

// NewMigrator reads NNNNNN_name.up.sql / .down.sql files from dir in fsys.
func NewMigrator(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open migrations source: %w", err)
	}
	return &Migrator{db: db, source: src}, nil
}

// Close releases the migration source.
func (m *Migrator) Close() error {
	return m.source.Close()
}

// Up applies every migration newer than the recorded ones and returns how
// many were applied.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	version, err := m.source.First()
	for err == nil {
		if !applied[version] {
			if err := m.apply(ctx, version, true); err != nil {
				return count, err
			}
			count++
		}
		version, err = m.source.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return count, fmt.Errorf("could not list migrations: %w", err)
	}

	logger.Get().Info("Migrations completed successfully", zap.Int("applied", count))
	return count, nil
}

// Down reverts the newest steps applied migrations.
func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}

	var versions []uint
	err := m.db.SelectContext(ctx, &versions,
		`SELECT version "version" FROM schema_migrations ORDER BY version DESC`)
	if err != nil {
		return 0, fmt.Errorf("could not read applied migrations: %w", err)
	}

	count := 0
	for _, version := range versions {
		if count == steps {
			break
		}
		if err := m.apply(ctx, version, false); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Version returns the newest applied version, or 0 when nothing is applied.
func (m *Migrator) Version(ctx context.Context) (uint, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}
	var version uint
	err := m.db.GetContext(ctx, &version,
		`SELECT NVL(MAX(version), 0) "version" FROM schema_migrations`)
	if err != nil {
		return 0, fmt.Errorf("could not read migration version: %w", err)
	}
	return version, nil
}

func (m *Migrator) apply(ctx context.Context, version uint, up bool) error {
	var (
		r          io.ReadCloser
		identifier string
		err        error
	)
	direction := "up"
	if up {
		r, identifier, err = m.source.ReadUp(version)
	} else {
		direction = "down"
		r, identifier, err = m.source.ReadDown(version)
	}
	if err != nil {
		return fmt.Errorf("could not read %s migration %d: %w", direction, version, err)
	}
	defer r.Close()

	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("could not read %s migration %d: %w", direction, version, err)
	}

	for _, stmt := range SplitStatements(string(content)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute migration %d_%s.%s: %w", version, identifier, direction, err)
		}
	}

	if up {
		_, err = m.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (:1)`, version)
	} else {
		_, err = m.db.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = :1`, version)
	}
	if err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}

	logger.Get().Info("Executed migration",
		zap.Uint("version", version),
		zap.String("name", identifier),
		zap.String("direction", direction),
	)
	return nil
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	var exists int
	err := m.db.GetContext(ctx, &exists,
		`SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`)
	if err != nil {
		return fmt.Errorf("could not check migration table: %w", err)
	}
	if exists > 0 {
		return nil
	}
	if _, err := m.db.ExecContext(ctx, createVersionTable); err != nil {
		return fmt.Errorf("could not create migration table: %w", err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[uint]bool, error) {
	var versions []uint
	if err := m.db.SelectContext(ctx, &versions, `SELECT version "version" FROM schema_migrations`); err != nil {
		return nil, fmt.Errorf("could not read applied migrations: %w", err)
	}
	applied := make(map[uint]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

// SplitStatements splits a script on semicolons that end a line and drops
// comment-only lines. Oracle does not accept the trailing semicolon.
func SplitStatements(script string) []string {
	var (
		stmts   []string
		current strings.Builder
	)
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			current.WriteString(strings.TrimSuffix(trimmed, ";"))
			stmts = append(stmts, current.String())
			current.Reset()
			continue
		}
		current.WriteString(trimmed)
		current.WriteString("\n")
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}
