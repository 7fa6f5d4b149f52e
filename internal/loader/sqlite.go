package loader

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"mimedex/internal/mediatype"
)

// schemaVersion is bumped whenever the media_types table layout changes.
// Databases with a different version must be recompiled.
const schemaVersion = 1

// ErrSchemaMismatch indicates a database compiled by an incompatible release.
var ErrSchemaMismatch = errors.New("database schema version mismatch")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS media_types (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    content_type TEXT NOT NULL,
    docs TEXT,
    friendly_json TEXT,
    encoding TEXT,
    extensions_json TEXT,
    preferred_extension TEXT,
    obsolete INTEGER NOT NULL DEFAULT 0,
    use_instead TEXT,
    xrefs_json TEXT,
    registered INTEGER NOT NULL DEFAULT 0,
    signature INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_media_types_content_type ON media_types(content_type);
`

// DBSource reads descriptors from a database produced by Compile.
type DBSource struct {
	path string
}

// NewDBSource creates a source over a compiled SQLite database.
func NewDBSource(path string) DBSource {
	return DBSource{path: path}
}

func (s DBSource) Name() string { return "sqlite:" + s.path }

func (s DBSource) Load(ctx context.Context) ([]mediatype.Data, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("stat database: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	if err := checkSchemaVersion(ctx, db); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT content_type, docs, friendly_json, encoding, extensions_json,
               preferred_extension, obsolete, use_instead, xrefs_json,
               registered, signature
        FROM media_types ORDER BY content_type, id`)
	if err != nil {
		return nil, fmt.Errorf("query media types: %w", err)
	}
	defer rows.Close()

	var out []mediatype.Data
	for rows.Next() {
		data, err := scanType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, rows.Err()
}

// Compile writes the descriptor set into a SQLite database, replacing any
// previous contents. A file lock on the output path serializes concurrent
// compile runs so two writers cannot interleave.
func Compile(ctx context.Context, types []mediatype.Data, dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	lock := flock.New(dbPath + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire compile lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			return fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin compile tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM media_types"); err != nil {
		return fmt.Errorf("clear previous contents: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("clear schema version: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO media_types (
            content_type, docs, friendly_json, encoding, extensions_json,
            preferred_extension, obsolete, use_instead, xrefs_json,
            registered, signature
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, data := range types {
		// Reject invalid entries before they reach the database.
		if _, err := mediatype.New(data); err != nil {
			return fmt.Errorf("compile: %w", err)
		}
		friendly, err := marshalNullable(data.Friendly, len(data.Friendly) > 0)
		if err != nil {
			return fmt.Errorf("marshal friendly for %s: %w", data.ContentType, err)
		}
		extensions, err := marshalNullable(data.Extensions, len(data.Extensions) > 0)
		if err != nil {
			return fmt.Errorf("marshal extensions for %s: %w", data.ContentType, err)
		}
		xrefs, err := marshalNullable(data.XRefs, len(data.XRefs) > 0)
		if err != nil {
			return fmt.Errorf("marshal xrefs for %s: %w", data.ContentType, err)
		}
		if _, err := stmt.ExecContext(ctx,
			data.ContentType,
			nullableString(data.Docs),
			friendly,
			nullableString(data.Encoding),
			extensions,
			nullableString(data.PreferredExtension),
			boolToInt(data.Obsolete),
			nullableString(data.UseInstead),
			xrefs,
			boolToInt(data.Registered),
			boolToInt(data.Signature),
		); err != nil {
			return fmt.Errorf("insert %s: %w", data.ContentType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit compile: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx context.Context, db *sql.DB) error {
	var tableExists int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return fmt.Errorf("%w: not a compiled mimedex database", ErrSchemaMismatch)
	}

	var version int
	if err := db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (re-run 'mimedex data compile')",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func scanType(rows *sql.Rows) (mediatype.Data, error) {
	var (
		data         mediatype.Data
		docs         sql.NullString
		friendlyJSON sql.NullString
		encoding     sql.NullString
		extJSON      sql.NullString
		preferred    sql.NullString
		obsolete     int
		useInstead   sql.NullString
		xrefsJSON    sql.NullString
		registered   int
		signature    int
	)

	if err := rows.Scan(
		&data.ContentType,
		&docs,
		&friendlyJSON,
		&encoding,
		&extJSON,
		&preferred,
		&obsolete,
		&useInstead,
		&xrefsJSON,
		&registered,
		&signature,
	); err != nil {
		return mediatype.Data{}, fmt.Errorf("scan media type: %w", err)
	}

	data.Docs = docs.String
	data.Encoding = encoding.String
	data.PreferredExtension = preferred.String
	data.Obsolete = obsolete != 0
	data.UseInstead = useInstead.String
	data.Registered = registered != 0
	data.Signature = signature != 0

	if friendlyJSON.Valid && friendlyJSON.String != "" {
		if err := json.Unmarshal([]byte(friendlyJSON.String), &data.Friendly); err != nil {
			return mediatype.Data{}, fmt.Errorf("parse friendly for %s: %w", data.ContentType, err)
		}
	}
	if extJSON.Valid && extJSON.String != "" {
		if err := json.Unmarshal([]byte(extJSON.String), &data.Extensions); err != nil {
			return mediatype.Data{}, fmt.Errorf("parse extensions for %s: %w", data.ContentType, err)
		}
	}
	if xrefsJSON.Valid && xrefsJSON.String != "" {
		if err := json.Unmarshal([]byte(xrefsJSON.String), &data.XRefs); err != nil {
			return mediatype.Data{}, fmt.Errorf("parse xrefs for %s: %w", data.ContentType, err)
		}
	}
	return data, nil
}

func marshalNullable(value any, present bool) (any, error) {
	if !present {
		return nil, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
