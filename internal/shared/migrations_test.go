package shared

import (
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) < 2 {
			t.Fatalf("expected at least two migrations, got %d", len(migrations))
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		for _, m := range migrations {
			if m.Up == "" || m.Down == "" {
				t.Errorf("migration version %d missing up or down SQL", m.Version)
			}
		}

		if migrations[0].Name != "create_slots" {
			t.Errorf("expected first migration name create_slots, got %q", migrations[0].Name)
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		for _, table := range []string{"slots", "slots_sequence", "movie_cache"} {
			if _, err := db.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
				t.Errorf("%s table should exist after migrations: %v", table, err)
			}
		}

		var seq int
		if err := db.QueryRow("SELECT value FROM slots_sequence WHERE id = 1").Scan(&seq); err != nil {
			t.Fatalf("expected seeded sequence row: %v", err)
		}
		if seq != 0 {
			t.Errorf("expected sequence to start at 0, got %d", seq)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		if _, err := db.Exec("SELECT 1 FROM movie_cache LIMIT 1"); err == nil {
			t.Error("movie_cache should be dropped after rollback")
		}
		if _, err := db.Exec("SELECT 1 FROM slots LIMIT 1"); err != nil {
			t.Errorf("slots should survive a single rollback: %v", err)
		}
	})

	t.Run("Idempotent Migrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations first time: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations second time: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}

		migrations, _ := loadMigrations()
		if count != len(migrations) {
			t.Errorf("expected %d migrations to be applied, got %d", len(migrations), count)
		}
	})

	t.Run("Migrations Status", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		statuses, err := Migrations(db)
		if err != nil {
			t.Fatalf("failed to get status: %v", err)
		}
		for _, s := range statuses {
			if s.Applied {
				t.Errorf("migration %d should not be applied on a fresh database", s.Version)
			}
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		statuses, err = Migrations(db)
		if err != nil {
			t.Fatalf("failed to get status: %v", err)
		}
		for _, s := range statuses {
			if !s.Applied {
				t.Errorf("migration %d should be applied", s.Version)
			}
		}
	})

	t.Run("removeComments", func(t *testing.T) {
		got := removeComments("-- header\nCREATE TABLE t (id INTEGER) -- trailing\n\n")
		if got != "CREATE TABLE t (id INTEGER)" {
			t.Errorf("unexpected result %q", got)
		}
	})
}
