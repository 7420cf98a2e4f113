package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/MerabQardava/EpamGymProject/internal/domain"
)

// WorkloadUseCase реализует учет рабочих часов тренеров: применение дельт
// к агрегату Trainer → WorkYear → WorkMonth и чтение итогов.
type WorkloadUseCase struct {
	trainerRepo domain.TrainerRepository

	// Блокировка по username сериализует read-modify-write одного агрегата.
	// Разные тренеры обрабатываются параллельно.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewWorkloadUseCase создает новый экземпляр WorkloadUseCase.
func NewWorkloadUseCase(trainerRepo domain.TrainerRepository) domain.WorkloadUseCase {
	return &WorkloadUseCase{
		trainerRepo: trainerRepo,
		locks:       make(map[string]*sync.Mutex),
	}
}

func (uc *WorkloadUseCase) trainerLock(username string) *sync.Mutex {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	lock, ok := uc.locks[username]
	if !ok {
		lock = &sync.Mutex{}
		uc.locks[username] = lock
	}
	return lock
}

// AddTraining прибавляет часы тренировки к месячному итогу тренера.
// Неизвестный тренер создается с переданными именем и фамилией (имя при
// последующих вызовах не обновляется); год и месяц создаются лениво.
func (uc *WorkloadUseCase) AddTraining(ctx context.Context, username string, req domain.UpdateWorkingHoursRequest) error {
	if req.TrainingDuration < 0 {
		return domain.ErrInvalidDuration
	}

	lock := uc.trainerLock(username)
	lock.Lock()
	defer lock.Unlock()

	trainer, err := uc.trainerRepo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrTrainerNotFound) {
			return err
		}
		trainer = domain.NewTrainer(username, req.FirstName, req.LastName, req.IsActive)
	}

	month := trainer.EnsureYear(req.Date.Year()).EnsureMonth(int(req.Date.Month()))
	month.TotalHours += req.TrainingDuration

	return uc.trainerRepo.Save(ctx, trainer)
}

// RemoveTraining вычитает часы тренировки из месячного итога тренера.
// Ничего не создает: отсутствующий тренер, год или месяц — ошибка.
func (uc *WorkloadUseCase) RemoveTraining(ctx context.Context, username string, req domain.UpdateWorkingHoursRequest) error {
	if req.TrainingDuration < 0 {
		return domain.ErrInvalidDuration
	}

	lock := uc.trainerLock(username)
	lock.Lock()
	defer lock.Unlock()

	trainer, err := uc.trainerRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	year := trainer.Year(req.Date.Year())
	if year == nil {
		return domain.ErrWorkYearNotFound
	}

	month := year.Month(int(req.Date.Month()))
	if month == nil {
		return domain.ErrWorkMonthNotFound
	}

	if month.TotalHours < req.TrainingDuration {
		return domain.ErrInsufficientHours
	}

	month.TotalHours -= req.TrainingDuration

	return uc.trainerRepo.Save(ctx, trainer)
}

// GetTotalHours возвращает итог часов тренера за месяц. Чистое чтение,
// отсутствующие узлы не создаются.
func (uc *WorkloadUseCase) GetTotalHours(ctx context.Context, username string, yearNumber, monthNumber int) (int, error) {
	if yearNumber < 2000 || yearNumber > 9999 {
		return 0, domain.ErrInvalidYear
	}
	if monthNumber < 1 || monthNumber > 12 {
		return 0, domain.ErrInvalidMonth
	}

	trainer, err := uc.trainerRepo.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}

	year := trainer.Year(yearNumber)
	if year == nil {
		return 0, domain.ErrWorkYearNotFound
	}

	month := year.Month(monthNumber)
	if month == nil {
		return 0, domain.ErrWorkMonthNotFound
	}

	return month.TotalHours, nil
}
