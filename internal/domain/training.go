package domain

// Training представляет тренировочную сессию между trainee и тренером.
type Training struct {
	ID              int
	TraineeUsername string
	TrainerUsername string
	Name            string
	Date            Date
	DurationMinutes int
}
