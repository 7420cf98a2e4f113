package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MerabQardava/EpamGymProject/internal/domain"
)

// TrainingRepository реализует хранение тренировок в PostgreSQL.
type TrainingRepository struct {
	db *sql.DB
}

// NewTrainingRepository создает новый экземпляр TrainingRepository.
func NewTrainingRepository(db *sql.DB) domain.TrainingRepository {
	return &TrainingRepository{
		db: db,
	}
}

// Create сохраняет тренировку и возвращает ее с присвоенным ID.
func (r *TrainingRepository) Create(ctx context.Context, training *domain.Training) (*domain.Training, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO trainings (trainee_username, trainer_username, training_name, training_date, duration_minutes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		training.TraineeUsername, training.TrainerUsername, training.Name,
		training.Date.Time, training.DurationMinutes,
	).Scan(&training.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create training: %w", err)
	}

	return training, nil
}

// GetByID возвращает тренировку по ID.
func (r *TrainingRepository) GetByID(ctx context.Context, trainingID int) (*domain.Training, error) {
	training := &domain.Training{}
	var date time.Time

	err := r.db.QueryRowContext(ctx,
		`SELECT id, trainee_username, trainer_username, training_name, training_date, duration_minutes
		 FROM trainings WHERE id = $1`,
		trainingID,
	).Scan(&training.ID, &training.TraineeUsername, &training.TrainerUsername,
		&training.Name, &date, &training.DurationMinutes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTrainingNotFound
		}
		return nil, fmt.Errorf("failed to get training: %w", err)
	}

	training.Date = domain.Date{Time: date}
	return training, nil
}

// Delete удаляет тренировку по ID.
func (r *TrainingRepository) Delete(ctx context.Context, trainingID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trainings WHERE id = $1`, trainingID)
	if err != nil {
		return fmt.Errorf("failed to delete training: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrTrainingNotFound
	}

	return nil
}
