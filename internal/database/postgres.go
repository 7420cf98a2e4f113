package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/MerabQardava/EpamGymProject/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/workload/*.sql migrations/training/*.sql
var EmbedMigrations embed.FS

// Каталоги миграций по сервисам.
const (
	WorkloadMigrations = "migrations/workload"
	TrainingMigrations = "migrations/training"
)

func NewPostgresDB(cfg config.Config, migrationsDir string) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	if err = MigrateDB(db, migrationsDir); err != nil {
		return nil, err
	}

	return db, nil
}

func MigrateDB(db *sql.DB, migrationsDir string) error {
	goose.SetBaseFS(EmbedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return err
	}

	return nil
}
