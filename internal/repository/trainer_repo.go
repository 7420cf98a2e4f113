package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MerabQardava/EpamGymProject/internal/domain"
)

// TrainerRepository реализует хранение агрегатов рабочих часов в PostgreSQL.
type TrainerRepository struct {
	db *sql.DB
}

// NewTrainerRepository создает новый экземпляр TrainerRepository.
func NewTrainerRepository(db *sql.DB) domain.TrainerRepository {
	return &TrainerRepository{
		db: db,
	}
}

// GetByUsername возвращает агрегат тренера целиком: тренер + годы + месяцы.
func (r *TrainerRepository) GetByUsername(ctx context.Context, username string) (*domain.Trainer, error) {
	trainer := &domain.Trainer{}

	err := r.db.QueryRowContext(ctx,
		`SELECT username, first_name, last_name, is_active FROM trainers WHERE username = $1`,
		username,
	).Scan(&trainer.Username, &trainer.FirstName, &trainer.LastName, &trainer.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTrainerNotFound
		}
		return nil, fmt.Errorf("failed to get trainer: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT y.year_number, m.month_number, m.total_hours
		 FROM work_years y
		 JOIN work_months m ON m.work_year_id = y.id
		 WHERE y.trainer_username = $1
		 ORDER BY y.year_number, m.month_number`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get work months: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var yearNumber, monthNumber, totalHours int
		if err := rows.Scan(&yearNumber, &monthNumber, &totalHours); err != nil {
			return nil, fmt.Errorf("failed to scan work month: %w", err)
		}
		month := trainer.EnsureYear(yearNumber).EnsureMonth(monthNumber)
		month.TotalHours = totalHours
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read work months: %w", err)
	}

	return trainer, nil
}

// Save сохраняет агрегат целиком в одной транзакции.
// Частично обновленное состояние снаружи не наблюдаемо.
func (r *TrainerRepository) Save(ctx context.Context, trainer *domain.Trainer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// 1. Тренер
	_, err = tx.ExecContext(ctx,
		`INSERT INTO trainers (username, first_name, last_name, is_active)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (username) DO UPDATE SET is_active = EXCLUDED.is_active`,
		trainer.Username, trainer.FirstName, trainer.LastName, trainer.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to save trainer: %w", err)
	}

	// 2. Годы и месяцы
	for _, year := range trainer.Years {
		var yearID int
		err = tx.QueryRowContext(ctx,
			`INSERT INTO work_years (trainer_username, year_number)
			 VALUES ($1, $2)
			 ON CONFLICT (trainer_username, year_number) DO UPDATE SET year_number = EXCLUDED.year_number
			 RETURNING id`,
			trainer.Username, year.Number,
		).Scan(&yearID)
		if err != nil {
			return fmt.Errorf("failed to save work year %d: %w", year.Number, err)
		}

		for _, month := range year.Months {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO work_months (work_year_id, month_number, total_hours)
				 VALUES ($1, $2, $3)
				 ON CONFLICT (work_year_id, month_number) DO UPDATE SET total_hours = EXCLUDED.total_hours`,
				yearID, month.Number, month.TotalHours,
			)
			if err != nil {
				return fmt.Errorf("failed to save work month %d: %w", month.Number, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
