package model

import "strings"

// NormalizeCourseNumber приводит номер курса к ключу каталога:
// обрезанные пробелы, нижний регистр, без внутренних пробелов,
// чтобы " cs 2110 " и "CS2110" совпадали.
func NormalizeCourseNumber(number string) string {
	normalized := strings.ToLower(strings.TrimSpace(number))
	return strings.ReplaceAll(normalized, " ", "")
}

// ResolvedCourse курс из сгенерированного расписания, сопоставленный
// с записью каталога (или синтезированный при промахе)
type ResolvedCourse struct {
	Number      string
	Name        string
	Description string
	Section     string
	Days        string
	StartMin    *int
	EndMin      *int
	Credits     int
}

// SectionID идентификатор секции в виде "CS 2110-A"
func (c ResolvedCourse) SectionID() string {
	return c.Number + "-" + c.Section
}

// RecommendedSchedule опубликованный результат генерации расписания
type RecommendedSchedule struct {
	ID        int64
	Term      string
	Score     float64
	Rationale string
	Courses   []ResolvedCourse
}
