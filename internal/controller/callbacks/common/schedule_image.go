package common

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/schedulr/schedulr-bot/internal/model"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth      = 1120
	imageHeight     = 780
	headerHeight    = 60
	leftLabelsWidth = 70
	cellPadding     = 3.0
	blockRadius     = 6.0
	gridStartHour   = model.AvailabilityStart
	gridEndHour     = model.AvailabilityStart + model.AvailabilitySlots // 20:00
	totalDaysInWeek = 7
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	gridLineColor  = color.NRGBA{150, 150, 150, 120}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{226, 228, 232, 255}

	markedSlotColor  = color.RGBA{88, 140, 235, 230}
	courseBlockColor = color.RGBA{133, 193, 85, 230}
	blockTextColor   = color.RGBA{20, 24, 28, 235}
)

var dayTitles = [totalDaysInWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// RenderAvailability рисует сетку доступности 7×12 в PNG.
// Отмеченные слоты закрашены сплошными блоками.
func RenderAvailability(grid model.AvailabilityGrid) ([]byte, error) {
	dc := newWeekContext("Availability")

	for day := 0; day < model.AvailabilityDays; day++ {
		for slot := 0; slot < model.AvailabilitySlots; slot++ {
			if !grid[day][slot] {
				continue
			}
			x, y, w, h := cellRect(day, float64(gridStartHour+slot), float64(gridStartHour+slot+1))
			dc.SetColor(markedSlotColor)
			dc.DrawRoundedRectangle(x, y, w, h, blockRadius)
			dc.Fill()
		}
	}

	return encodePNG(dc)
}

// RenderSchedule рисует сгенерированное расписание: блок на каждый день
// встречи каждой секции. Секции без времени пропускаются (их видно
// в текстовой карточке).
func RenderSchedule(schedule *model.RecommendedSchedule) ([]byte, error) {
	dc := newWeekContext(schedule.Term)

	for _, course := range schedule.Courses {
		if course.StartMin == nil || course.EndMin == nil {
			continue
		}
		startHour := float64(*course.StartMin) / 60
		endHour := float64(*course.EndMin) / 60
		if endHour <= startHour {
			continue
		}

		for _, day := range meetingDays(course.Days) {
			x, y, w, h := cellRect(day, startHour, endHour)
			dc.SetColor(courseBlockColor)
			dc.DrawRoundedRectangle(x, y, w, h, blockRadius)
			dc.Fill()

			dc.SetColor(blockTextColor)
			dc.DrawStringAnchored(course.Number, x+w/2, y+h/2, 0.5, 0.5)
		}
	}

	return encodePNG(dc)
}

// newWeekContext рисует пустую недельную сетку с заголовком
func newWeekContext(title string) *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, imageWidth/2, headerHeight/3, 0.5, 0.5)

	dayWidth := dayColumnWidth()
	bodyHeight := float64(imageHeight - headerHeight)

	// Колонки дней с чередующимся фоном
	for day := 0; day < totalDaysInWeek; day++ {
		x := float64(leftLabelsWidth) + float64(day)*dayWidth

		if day%2 == 0 {
			dc.SetColor(evenDayColor)
		} else {
			dc.SetColor(oddDayColor)
		}
		dc.DrawRectangle(x, headerHeight, dayWidth, bodyHeight)
		dc.Fill()

		dc.SetColor(textColor)
		dc.DrawStringAnchored(dayTitles[day], x+dayWidth/2, headerHeight*2.0/3, 0.5, 0.5)
	}

	// Горизонтальные линии часов с подписями
	hourHeight := bodyHeight / float64(gridEndHour-gridStartHour)
	for hour := gridStartHour; hour <= gridEndHour; hour++ {
		y := float64(headerHeight) + float64(hour-gridStartHour)*hourHeight

		dc.SetColor(gridLineColor)
		dc.DrawLine(leftLabelsWidth, y, imageWidth, y)
		dc.Stroke()

		if hour < gridEndHour {
			dc.SetColor(hourLabelColor)
			dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hour), leftLabelsWidth/2, y+hourHeight/2, 0.5, 0.5)
		}
	}

	return dc
}

// cellRect переводит (день, интервал в часах) в прямоугольник на холсте
func cellRect(day int, startHour, endHour float64) (x, y, w, h float64) {
	dayWidth := dayColumnWidth()
	hourHeight := float64(imageHeight-headerHeight) / float64(gridEndHour-gridStartHour)

	x = float64(leftLabelsWidth) + float64(day)*dayWidth + cellPadding
	y = float64(headerHeight) + (startHour-gridStartHour)*hourHeight + cellPadding
	w = dayWidth - 2*cellPadding
	h = (endHour-startHour)*hourHeight - 2*cellPadding
	return x, y, w, h
}

func dayColumnWidth() float64 {
	return float64(imageWidth-leftLabelsWidth) / totalDaysInWeek
}

// meetingDays разбирает строку дней встреч ("MWF", "TR") в индексы дней.
// Буквы соответствуют M T W R F S U, понедельник — 0.
func meetingDays(days string) []int {
	var out []int
	for _, r := range days {
		switch r {
		case 'M', 'm':
			out = append(out, 0)
		case 'T', 't':
			out = append(out, 1)
		case 'W', 'w':
			out = append(out, 2)
		case 'R', 'r':
			out = append(out, 3)
		case 'F', 'f':
			out = append(out, 4)
		case 'S', 's':
			out = append(out, 5)
		case 'U', 'u':
			out = append(out, 6)
		}
	}
	return out
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
