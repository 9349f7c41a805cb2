package handlers

// Ограничения ввода в диалогах
const (
	NetidMaxLength = 32

	GradYearMin = 2000
	GradYearMax = 2100

	InterestsMaxLength   = 200
	PrevCoursesMaxLength = 500
)

// KeepCurrentValue ввод, означающий "оставить как есть" на шаге анкеты
const KeepCurrentValue = "-"
