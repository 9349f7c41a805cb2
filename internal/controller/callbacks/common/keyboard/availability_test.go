package keyboard

import (
	"testing"

	"github.com/schedulr/schedulr-bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityGrid_Layout(t *testing.T) {
	grid := model.AvailabilityGrid{}
	grid[2][0] = true // среда 08:00

	markup := AvailabilityGrid(grid)
	require.NotNil(t, markup)

	// Заголовок + 12 часовых рядов + 2 ряда управления
	require.Len(t, markup.InlineKeyboard, 1+model.AvailabilitySlots+2)

	header := markup.InlineKeyboard[0]
	require.Len(t, header, 1+model.AvailabilityDays)
	assert.Equal(t, "Mo", header[1].Text)
	assert.Equal(t, "Su", header[7].Text)

	firstHourRow := markup.InlineKeyboard[1]
	require.Len(t, firstHourRow, 1+model.AvailabilityDays)
	assert.Equal(t, "8", firstHourRow[0].Text)
	assert.Equal(t, "av:0:0", firstHourRow[1].CallbackData)
	assert.Equal(t, "▫️", firstHourRow[1].Text)
	assert.Equal(t, "🟦", firstHourRow[3].Text, "отмеченный слот рисуется закрашенным")

	lastHourRow := markup.InlineKeyboard[model.AvailabilitySlots]
	assert.Equal(t, "19", lastHourRow[0].Text)
	assert.Equal(t, "av:6:11", lastHourRow[7].CallbackData)

	controls := markup.InlineKeyboard[len(markup.InlineKeyboard)-2]
	assert.Equal(t, "av_all", controls[0].CallbackData)
	assert.Equal(t, "av_none", controls[1].CallbackData)

	done := markup.InlineKeyboard[len(markup.InlineKeyboard)-1]
	assert.Equal(t, "av_done", done[0].CallbackData)
	assert.Equal(t, "av_cancel", done[1].CallbackData)
}
