package formatting

import (
	"fmt"
	"strings"

	"github.com/schedulr/schedulr-bot/internal/api"
	"github.com/schedulr/schedulr-bot/internal/service"
)

// FormatCourseInfo форматирует полную карточку курса из каталога
func FormatCourseInfo(course *api.Course) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📚 <b>%s: %s</b>\n", course.Number, course.Name)
	fmt.Fprintf(&sb, "🎓 %s\n", FormatCredits(course.Credits))

	if course.Description != nil && *course.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", *course.Description)
	}

	if len(course.Sections) > 0 {
		sb.WriteString("\n🕐 Sections:\n")
		for _, section := range course.Sections {
			fmt.Fprintf(&sb, "  %s — %s\n", section.Section,
				FormatMeetingTime(section.Days, section.StartMin, section.EndMin))
		}
	}

	if len(course.Prereqs) > 0 {
		numbers := make([]string, 0, len(course.Prereqs))
		for _, prereq := range course.Prereqs {
			numbers = append(numbers, prereq.PrereqNumber)
		}
		fmt.Fprintf(&sb, "\n⬅️ Prerequisites: %s\n", strings.Join(numbers, ", "))
	}

	if len(course.RequiredBy) > 0 {
		numbers := make([]string, 0, len(course.RequiredBy))
		for _, req := range course.RequiredBy {
			numbers = append(numbers, req.CourseNumber)
		}
		fmt.Fprintf(&sb, "➡️ Required by: %s\n", strings.Join(numbers, ", "))
	}

	return sb.String()
}

// FormatCourseShort форматирует строку курса для списка каталога
func FormatCourseShort(course *api.Course, index int) string {
	return fmt.Sprintf("%d. <b>%s</b> — %s (%s)",
		index, course.Number, course.Name, FormatCredits(course.Credits))
}

// FormatCoreCourses форматирует core-набор с отметками о прохождении
func FormatCoreCourses(statuses []service.CoreCourseStatus) string {
	if len(statuses) == 0 {
		return "🧩 The core course set is empty."
	}

	var sb strings.Builder
	sb.WriteString("🧩 <b>Core courses</b>\n\n")

	done := 0
	for _, status := range statuses {
		mark := "⬜"
		if status.Completed {
			mark = "✅"
			done++
		}
		fmt.Fprintf(&sb, "%s %s\n", mark, status.Number)
	}

	fmt.Fprintf(&sb, "\nCompleted %d of %d.", done, len(statuses))
	return sb.String()
}

// FormatCompletions форматирует список завершённых курсов
func FormatCompletions(completions []string) string {
	if len(completions) == 0 {
		return "No completed courses on record."
	}
	return strings.Join(completions, ", ")
}
