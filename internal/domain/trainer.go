package domain

// Trainer представляет агрегат рабочих часов тренера: Trainer → WorkYear → WorkMonth.
type Trainer struct {
	Username  string
	FirstName string
	LastName  string
	IsActive  bool
	Years     []*WorkYear
}

// WorkYear представляет рабочий год тренера.
type WorkYear struct {
	Number int
	Months []*WorkMonth
}

// WorkMonth представляет рабочий месяц с накопленными часами.
type WorkMonth struct {
	Number     int
	TotalHours int
}

// NewTrainer создает нового тренера без годов и месяцев.
func NewTrainer(username, firstName, lastName string, isActive bool) *Trainer {
	return &Trainer{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		IsActive:  isActive,
	}
}

// Year возвращает год по номеру. Ничего не создает: отсутствующий год — nil.
func (t *Trainer) Year(number int) *WorkYear {
	for _, year := range t.Years {
		if year.Number == number {
			return year
		}
	}
	return nil
}

// EnsureYear возвращает год по номеру, создавая его при первом обращении.
// Используется только на пути записи.
func (t *Trainer) EnsureYear(number int) *WorkYear {
	if year := t.Year(number); year != nil {
		return year
	}
	year := &WorkYear{Number: number}
	t.Years = append(t.Years, year)
	return year
}

// Month возвращает месяц по номеру. Ничего не создает: отсутствующий месяц — nil.
func (y *WorkYear) Month(number int) *WorkMonth {
	for _, month := range y.Months {
		if month.Number == number {
			return month
		}
	}
	return nil
}

// EnsureMonth возвращает месяц по номеру, создавая его при первом обращении.
// Используется только на пути записи.
func (y *WorkYear) EnsureMonth(number int) *WorkMonth {
	if month := y.Month(number); month != nil {
		return month
	}
	month := &WorkMonth{Number: number}
	y.Months = append(y.Months, month)
	return month
}
