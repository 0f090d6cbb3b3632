/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func TestSQLiteInitCreatesWALAndMetaVersion(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var mode string
	if err := s.db.QueryRowContext(ctx, "PRAGMA journal_mode;").Scan(&mode); err != nil {
		t.Fatalf("read journal_mode: %v", err)
	}
	if mode != "wal" && mode != "WAL" {
		t.Fatalf("expected WAL mode, got %s", mode)
	}
	var cnt int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('meta','version','kv')").Scan(&cnt); err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if cnt != 3 {
		t.Fatalf("expected 3 tables, got %d", cnt)
	}
	var schema int
	if err := s.db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if schema != schemaVersion {
		t.Fatalf("schema = %d, want %d", schema, schemaVersion)
	}
}

func TestSQLiteGetSetRemove(t *testing.T) {
	s, err := OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()
	exerciseKV(t, s)
}

func TestSQLiteValueSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Set("recipeHistory", `[{"recipe_name":"Soup"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	v, ok, err := s2.Get("recipeHistory")
	if err != nil || !ok {
		t.Fatalf("Get after reopen: ok=%v err=%v", ok, err)
	}
	if v != `[{"recipe_name":"Soup"}]` {
		t.Fatalf("value changed across reopen: %q", v)
	}
}

// TestMigrations_UpgradeV1ToV2 ensures an older DB (schema=1, no updated_at column) is migrated.
func TestMigrations_UpgradeV1ToV2(t *testing.T) {
	dir := t.TempDir()
	path := SQLitePath(dir)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT NOT NULL);`,
		`CREATE TABLE IF NOT EXISTS version (id INTEGER PRIMARY KEY CHECK(id=1), schema INTEGER NOT NULL, app TEXT, created_at TEXT NOT NULL, updated_at TEXT NOT NULL);`,
		`INSERT INTO version(id, schema, app, created_at, updated_at) VALUES(1, 1, 'test', '2020-01-01T00:00:00Z', '2020-01-01T00:00:00Z');`,
		`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL);`,
		`INSERT INTO kv(key, value) VALUES('recipeHistory', '[]');`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			t.Fatalf("seed v1 schema: %v (q=%s)", err, q)
		}
	}
	_ = db.Close()

	s, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()
	var schema int
	if err := s.db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if schema != 2 {
		t.Fatalf("expected schema 2 after migration, got %d", schema)
	}
	var cols int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pragma_table_info('kv') WHERE name='updated_at'`).Scan(&cols); err != nil {
		t.Fatalf("table info: %v", err)
	}
	if cols != 1 {
		t.Fatalf("expected updated_at column after migration")
	}
	if v, ok, err := s.Get("recipeHistory"); err != nil || !ok || v != "[]" {
		t.Fatalf("v1 data lost: v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestSQLiteRecreatesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(SQLitePath(dir), []byte("THIS IS NOT SQLITE"), 0o644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}
	s, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("OpenSQLite on corrupt file: %v", err)
	}
	defer s.Close()
	if _, ok, err := s.Get("recipeHistory"); err != nil || ok {
		t.Fatalf("fresh store should be empty: ok=%v err=%v", ok, err)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, BackupsDirName))
	if len(entries) == 0 {
		t.Fatalf("expected a backup of the corrupt file")
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	if _, err := Open("redis", t.TempDir()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

// exerciseKV checks the contract shared by every store.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	if _, ok, err := kv.Get("missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
	if err := kv.Set("k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set("k", "v2"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, ok, err := kv.Get("k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("Get = %q ok=%v err=%v, want v2", v, ok, err)
	}
	if err := kv.Remove("k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := kv.Get("k"); ok {
		t.Fatalf("key still present after Remove")
	}
	if err := kv.Remove("k"); err != nil {
		t.Fatalf("Remove of missing key should not fail: %v", err)
	}
}
