package model

import (
	"fmt"
	"strings"
)

// Сетка доступности: 7 дней × 12 часовых слотов начиная с 08:00.
// По проводу передаётся как строка из 84 символов '0'/'1',
// день за днём (day-major), внутри дня — слот за слотом.
const (
	AvailabilityDays  = 7
	AvailabilitySlots = 12
	AvailabilityStart = 8 // первый слот начинается в 08:00
)

// AvailabilityGrid локальное состояние сетки доступности
type AvailabilityGrid [AvailabilityDays][AvailabilitySlots]bool

// FullAvailability возвращает сетку, в которой отмечены все слоты
func FullAvailability() AvailabilityGrid {
	var grid AvailabilityGrid
	for d := 0; d < AvailabilityDays; d++ {
		for s := 0; s < AvailabilitySlots; s++ {
			grid[d][s] = true
		}
	}
	return grid
}

// Bitstring сериализует сетку в 84-символьную строку для API
func (g AvailabilityGrid) Bitstring() string {
	var sb strings.Builder
	sb.Grow(AvailabilityDays * AvailabilitySlots)
	for d := 0; d < AvailabilityDays; d++ {
		for s := 0; s < AvailabilitySlots; s++ {
			if g[d][s] {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()
}

// ParseAvailability восстанавливает сетку из 84-символьной строки
func ParseAvailability(bits string) (AvailabilityGrid, error) {
	var grid AvailabilityGrid

	if len(bits) != AvailabilityDays*AvailabilitySlots {
		return grid, fmt.Errorf("availability must be %d characters, got %d",
			AvailabilityDays*AvailabilitySlots, len(bits))
	}

	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '1':
			grid[i/AvailabilitySlots][i%AvailabilitySlots] = true
		case '0':
			// слот свободен по умолчанию
		default:
			return AvailabilityGrid{}, fmt.Errorf("availability has invalid character %q at position %d", bits[i], i)
		}
	}

	return grid, nil
}

// Toggle переключает один слот, молча игнорируя выход за границы
func (g *AvailabilityGrid) Toggle(day, slot int) {
	if day < 0 || day >= AvailabilityDays || slot < 0 || slot >= AvailabilitySlots {
		return
	}
	g[day][slot] = !g[day][slot]
}

// SetAll отмечает или снимает все слоты разом
func (g *AvailabilityGrid) SetAll(value bool) {
	for d := 0; d < AvailabilityDays; d++ {
		for s := 0; s < AvailabilitySlots; s++ {
			g[d][s] = value
		}
	}
}

// Count возвращает число отмеченных слотов
func (g AvailabilityGrid) Count() int {
	count := 0
	for d := 0; d < AvailabilityDays; d++ {
		for s := 0; s < AvailabilitySlots; s++ {
			if g[d][s] {
				count++
			}
		}
	}
	return count
}
