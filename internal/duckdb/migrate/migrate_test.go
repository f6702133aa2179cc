package migrate

import (
	"context"
	"database/sql"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	_ "github.com/duckdb/duckdb-go/v2"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunAppliesAllMigrations(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	applied, err := NewRunner(db).Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"001_users.sql", "002_response_cache.sql"}
	if !reflect.DeepEqual(applied, want) {
		t.Fatalf("applied = %v, want %v", applied, want)
	}

	for _, table := range []string{"users", "response_cache", "schema_migrations"} {
		var name string
		err := db.QueryRow("SELECT table_name FROM information_schema.tables WHERE table_name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	r := NewRunner(db)

	if _, err := r.Run(ctx); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	applied, err := r.Run(ctx)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("second Run applied %v", applied)
	}

	v, err := r.Version(ctx)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != 2 {
		t.Errorf("Version() = %d, want 2", v)
	}
}

func TestVersionBeforeRun(t *testing.T) {
	v, err := NewRunner(openTestDB(t)).Version(context.Background())
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != 0 {
		t.Errorf("Version() = %d, want 0", v)
	}
}

func TestRunFillsGap(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	r := &Runner{db: db, files: fstest.MapFS{
		"001_a.sql": {Data: []byte("CREATE TABLE a (id INTEGER)")},
		"003_c.sql": {Data: []byte("CREATE TABLE c (id INTEGER)")},
	}}
	if _, err := r.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// A migration numbered below the newest one still runs.
	r.files = fstest.MapFS{
		"001_a.sql": {Data: []byte("CREATE TABLE a (id INTEGER)")},
		"002_b.sql": {Data: []byte("CREATE TABLE b (id INTEGER)")},
		"003_c.sql": {Data: []byte("CREATE TABLE c (id INTEGER)")},
	}
	applied, err := r.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(applied, []string{"002_b.sql"}) {
		t.Fatalf("applied = %v, want [002_b.sql]", applied)
	}
}

func TestRunFailureRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	r := &Runner{db: db, files: fstest.MapFS{
		"001_ok.sql":  {Data: []byte("CREATE TABLE ok (id INTEGER)")},
		"002_bad.sql": {Data: []byte("CREATE TABLE broken (")},
	}}

	applied, err := r.Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "002_bad.sql") {
		t.Fatalf("err = %v, want failure naming 002_bad.sql", err)
	}
	if !reflect.DeepEqual(applied, []string{"001_ok.sql"}) {
		t.Errorf("applied = %v", applied)
	}
	if v, _ := r.Version(ctx); v != 1 {
		t.Errorf("Version() = %d after failed 002, want 1", v)
	}
}

func TestParseRejectsBadNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files fstest.MapFS
		want  string
	}{
		{"no prefix", fstest.MapFS{"users.sql": {}}, "want NNN_name.sql"},
		{"not a number", fstest.MapFS{"abc_users.sql": {}}, "bad version"},
		{"duplicate", fstest.MapFS{"001_a.sql": {}, "001_b.sql": {}}, "version 1 used by"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parse(tt.files)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestParseOrdersAndSkipsOtherFiles(t *testing.T) {
	t.Parallel()

	migs, err := parse(fstest.MapFS{
		"010_late.sql":  {},
		"002_early.sql": {},
		"README.md":     {},
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(migs) != 2 || migs[0].version != 2 || migs[1].version != 10 {
		t.Fatalf("migs = %+v", migs)
	}
}
