package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
	"github.com/schedulr/schedulr-bot/internal/model"
)

var weekdayHeaders = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// AvailabilityGrid собирает inline клавиатуру 12×7 сетки доступности.
// Каждая клетка — кнопка "av:<день>:<слот>", снизу ряды управления.
// Клавиатура перерисовывается на месте после каждого нажатия.
func AvailabilityGrid(grid model.AvailabilityGrid) *models.InlineKeyboardMarkup {
	builder := NewBuilder()

	// Заголовок с днями недели (noop-кнопки)
	header := []models.InlineKeyboardButton{Button("🕐", "noop")}
	for _, day := range weekdayHeaders {
		header = append(header, Button(day, "noop"))
	}
	builder.AddRow(header)

	for slot := 0; slot < model.AvailabilitySlots; slot++ {
		hour := model.AvailabilityStart + slot
		row := []models.InlineKeyboardButton{Button(fmt.Sprintf("%d", hour), "noop")}
		for day := 0; day < model.AvailabilityDays; day++ {
			cell := "▫️"
			if grid[day][slot] {
				cell = "🟦"
			}
			row = append(row, Button(cell, fmt.Sprintf("av:%d:%d", day, slot)))
		}
		builder.AddRow(row)
	}

	builder.Row(
		Button("✅ All", "av_all"),
		Button("▫️ None", "av_none"),
	)
	builder.Row(
		Button("💾 Done", "av_done"),
		Button("❌ Cancel", "av_cancel"),
	)

	return builder.Build()
}
