package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"
	"github.com/mabego/edustream/migrations"
)

func main() {
	// A missing .env file is fine; flags and the environment still apply.
	_ = godotenv.Load()

	dsn := flag.String("dsn", os.Getenv("EDUSTREAM_DSN"), "MariaDB data source name")
	down := flag.Bool("down", false, "Roll back every migration instead of applying them")
	steps := flag.Int("steps", 0, "Apply (or with a negative value roll back) this many migrations only")

	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	m, err := newMigrate(*dsn)
	if err != nil {
		errorLog.Fatal(err)
	}

	switch {
	case *steps != 0:
		err = m.Steps(*steps)
	case *down:
		err = m.Down()
	default:
		err = m.Up()
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		errorLog.Fatal(err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		errorLog.Fatal(err)
	}

	infoLog.Printf("Schema at version %d (dirty: %t)", version, dirty)
}

// newMigrate opens dsn with multi-statement support, which the migration files need, and binds it to
// the embedded migrations.
func newMigrate(dsn string) (*migrate.Migrate, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("dsn: %w", err)
	}
	cfg.MultiStatements = true
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("database pool initialization: %w", err)
	}

	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	source, err := iofs.New(migrations.Files, "sql")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}

	return migrate.NewWithInstance("iofs", source, "mysql", driver)
}
