// Package cache persists the last successful hub fetch so listings remain
// available while the proxy is unreachable.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/glebarez/sqlite"

	"modelhub/internal/config"
	friendly "modelhub/internal/errors"
	"modelhub/internal/proxy"
)

type DB struct {
	SQL  *sql.DB
	Path string
}

func Open(cfg *config.Config) (*DB, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	if cfg.Cache.DataRoot == "" {
		return nil, errors.New("cache.data_root required")
	}
	if err := os.MkdirAll(cfg.Cache.DataRoot, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(cfg.Cache.DataRoot, "hub.db")
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout=5000&_pragma=journal_mode(WAL)&_fk=1", path)
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, friendly.DatabaseError(err)
	}
	if err := initSchema(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, friendly.DatabaseError(err)
	}
	return &DB{SQL: sqldb, Path: path}, nil
}

func (db *DB) Close() error { return db.SQL.Close() }

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS model_groups (
			model_group TEXT PRIMARY KEY,
			mode TEXT,
			supports_function_calling INTEGER DEFAULT 0,
			supports_vision INTEGER DEFAULT 0,
			max_input_tokens INTEGER,
			max_output_tokens INTEGER,
			supported_openai_params TEXT,  -- JSON array, fetch order
			position INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			name TEXT PRIMARY KEY,
			value INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init cache schema: %w", err)
		}
	}
	return nil
}

// ReplaceModelGroups swaps the cached listing for a fresh fetch. The old rows
// are dropped in the same transaction; last fetch wins.
func (db *DB) ReplaceModelGroups(groups []proxy.ModelGroup) error {
	tx, err := db.SQL.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM model_groups`); err != nil {
		return err
	}
	now := time.Now().Unix()
	for i, g := range groups {
		params, err := json.Marshal(g.SupportedOpenAIParams)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`INSERT INTO model_groups(
			model_group, mode, supports_function_calling, supports_vision,
			max_input_tokens, max_output_tokens, supported_openai_params, position, fetched_at)
			VALUES(?,?,?,?,?,?,?,?,?)`,
			g.ModelGroup, g.Mode, boolInt(g.SupportsFunctionCalling), boolInt(g.SupportsVision),
			nullInt(g.MaxInputTokens), nullInt(g.MaxOutputTokens), string(params), i, now)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListModelGroups returns the cached listing in original fetch order.
func (db *DB) ListModelGroups() ([]proxy.ModelGroup, error) {
	rows, err := db.SQL.Query(`SELECT model_group,
		COALESCE(mode, ''),
		COALESCE(supports_function_calling, 0),
		COALESCE(supports_vision, 0),
		max_input_tokens,
		max_output_tokens,
		COALESCE(supported_openai_params, '[]')
	  FROM model_groups
	  ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []proxy.ModelGroup
	for rows.Next() {
		var g proxy.ModelGroup
		var fc, vis int64
		var maxIn, maxOut sql.NullInt64
		var params string
		if err := rows.Scan(&g.ModelGroup, &g.Mode, &fc, &vis, &maxIn, &maxOut, &params); err != nil {
			return nil, err
		}
		g.SupportsFunctionCalling = fc != 0
		g.SupportsVision = vis != 0
		if maxIn.Valid {
			v := maxIn.Int64
			g.MaxInputTokens = &v
		}
		if maxOut.Valid {
			v := maxOut.Int64
			g.MaxOutputTokens = &v
		}
		if err := json.Unmarshal([]byte(params), &g.SupportedOpenAIParams); err != nil {
			return nil, fmt.Errorf("cached params for %s: %w", g.ModelGroup, err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// SetSetting caches a boolean setting value.
func (db *DB) SetSetting(name string, value bool) error {
	now := time.Now().Unix()
	_, err := db.SQL.Exec(`INSERT INTO settings(name, value, updated_at) VALUES(?,?,?)
		ON CONFLICT(name) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		name, boolInt(value), now)
	return err
}

// GetSetting reads a cached setting. known is false if it was never stored.
func (db *DB) GetSetting(name string) (value, known bool, err error) {
	var v int64
	err = db.SQL.QueryRow(`SELECT value FROM settings WHERE name=?`, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return v != 0, true, nil
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func nullInt(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
