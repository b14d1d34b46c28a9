package migrations_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-mdshelf/internal/migrations"
	"github.com/goliatone/go-mdshelf/pkg/testsupport"
)

func testFiles() fstest.MapFS {
	return fstest.MapFS{
		"20240101000001_widgets.up.sql": &fstest.MapFile{Data: []byte(
			"CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT NOT NULL);\n\n--bun:split\n\nCREATE UNIQUE INDEX idx_widgets_name ON widgets (name);\n",
		)},
		"20240101000001_widgets.down.sql": &fstest.MapFile{Data: []byte("DROP TABLE widgets;\n")},
		"20240101000002_gadgets.up.sql":   &fstest.MapFile{Data: []byte("CREATE TABLE gadgets (id INTEGER PRIMARY KEY);\n")},
		"20240101000002_gadgets.down.sql": &fstest.MapFile{Data: []byte("DROP TABLE gadgets;\n")},
	}
}

func TestRunnerMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t)

	runner, err := migrations.NewRunner(db, testFiles())
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	applied, err := runner.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if len(applied) != 2 {
		t.Fatalf("expected two migrations to apply, got %v", applied)
	}

	if _, err := db.ExecContext(ctx, "INSERT INTO widgets (name) VALUES ('a')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO widgets (name) VALUES ('a')"); err == nil {
		t.Fatalf("expected unique index from split statement to be applied")
	}

	again, err := runner.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate again: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected nothing to apply, got %v", again)
	}

	status, err := runner.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(status) != 2 || !status[0].Applied || !status[1].Applied {
		t.Fatalf("expected all migrations applied, got %+v", status)
	}
}

func TestRunnerRollback(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t)

	runner, err := migrations.NewRunner(db, testFiles())
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if _, err := runner.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	rolled, err := runner.Rollback(ctx)
	if err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if len(rolled) != 2 {
		t.Fatalf("expected the whole group to roll back, got %v", rolled)
	}
	if _, err := db.ExecContext(ctx, "SELECT 1 FROM widgets"); err == nil {
		t.Fatalf("expected widgets table to be dropped")
	}
}

func TestNewRunnerRequiresInputs(t *testing.T) {
	if _, err := migrations.NewRunner(nil, testFiles()); err != migrations.ErrDatabaseRequired {
		t.Fatalf("expected database required, got %v", err)
	}
	if _, err := migrations.NewRunner(testsupport.NewBunDB(t), nil); err != migrations.ErrMigrationsRequired {
		t.Fatalf("expected migrations required, got %v", err)
	}
}
