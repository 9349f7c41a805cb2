package main

import (
	"fmt"
	"os"

	"github.com/schedulr/schedulr-bot/internal/controller/callbacks/common"
	"github.com/schedulr/schedulr-bot/internal/model"
)

func main() {
	// Создаем тестовое расписание
	schedule := &model.RecommendedSchedule{
		ID:        1,
		Term:      "Fall 2026",
		Score:     0.92,
		Rationale: "Balances core requirements with ML electives.",
		Courses: []model.ResolvedCourse{
			{
				Number:   "CS 2110",
				Name:     "OO Programming and Data Structures",
				Section:  "A",
				Days:     "MWF",
				StartMin: intPtr(9*60 + 5),
				EndMin:   intPtr(9*60 + 55),
				Credits:  4,
			},
			{
				Number:   "CS 2800",
				Name:     "Discrete Structures",
				Section:  "B",
				Days:     "TR",
				StartMin: intPtr(13 * 60),
				EndMin:   intPtr(14*60 + 15),
				Credits:  3,
			},
			{
				Number:   "MATH 2940",
				Name:     "Linear Algebra",
				Section:  "A",
				Days:     "MWF",
				StartMin: intPtr(11*60 + 15),
				EndMin:   intPtr(12*60 + 5),
				Credits:  4,
			},
			// Секция без времени встречи, на изображении не рисуется
			{
				Number:  "CS 4999",
				Name:    "Independent Research",
				Section: "IND",
				Credits: 2,
			},
		},
	}

	scheduleData, err := common.RenderSchedule(schedule)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения расписания: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile("schedule.png", scheduleData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ Изображение расписания сохранено в schedule.png")

	// Сетка доступности: будни с 09:00 до 17:00
	grid := model.AvailabilityGrid{}
	for day := 0; day < 5; day++ {
		for slot := 1; slot < 9; slot++ {
			grid[day][slot] = true
		}
	}

	gridData, err := common.RenderAvailability(grid)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения доступности: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile("availability.png", gridData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ Изображение доступности сохранено в availability.png")

	fmt.Printf("📊 Курсов в расписании: %d\n", len(schedule.Courses))
}

func intPtr(i int) *int {
	return &i
}
