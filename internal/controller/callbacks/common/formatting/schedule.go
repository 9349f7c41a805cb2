package formatting

import (
	"fmt"
	"strings"

	"github.com/schedulr/schedulr-bot/internal/api"
	"github.com/schedulr/schedulr-bot/internal/model"
)

// FormatRecommendedSchedule форматирует опубликованное расписание:
// семестр, rationale генератора и карточки курсов по порядку.
func FormatRecommendedSchedule(schedule *model.RecommendedSchedule) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🗓 <b>Your Schedule — %s</b>\n", schedule.Term)
	if schedule.Rationale != "" {
		fmt.Fprintf(&sb, "<i>%s</i>\n", schedule.Rationale)
	}

	if len(schedule.Courses) == 0 {
		sb.WriteString("\nThe generator returned an empty schedule.")
		return sb.String()
	}

	for _, course := range schedule.Courses {
		fmt.Fprintf(&sb, "\n📚 <b>%s: %s</b>\n", course.Number, course.Name)
		if course.Description != "" {
			fmt.Fprintf(&sb, "%s\n", course.Description)
		}
		fmt.Fprintf(&sb, "🕐 %s\n", FormatMeetingTime(course.Days, course.StartMin, course.EndMin))
		fmt.Fprintf(&sb, "<code>%s</code>\n", course.SectionID())
	}

	return sb.String()
}

// FormatPastSchedules форматирует список прошлых генераций
func FormatPastSchedules(schedules []api.ScheduleInfo) string {
	if len(schedules) == 0 {
		return "📭 No past schedules yet. Use /schedule to generate one."
	}

	var sb strings.Builder
	sb.WriteString("🗂 <b>Past schedules</b>\n")

	for i, schedule := range schedules {
		fmt.Fprintf(&sb, "\n%d. Schedule #%d\n", i+1, schedule.ID)
		if schedule.Rationale != "" {
			fmt.Fprintf(&sb, "   <i>%s</i>\n", schedule.Rationale)
		}
	}

	return sb.String()
}

// FormatProfile форматирует карточку профиля текущей сессии
func FormatProfile(user *api.User, completions []string, availability model.AvailabilityGrid) string {
	interests := "—"
	if user.Interests != nil && *user.Interests != "" {
		interests = *user.Interests
	}

	return fmt.Sprintf(
		"👤 <b>%s</b>\n\n"+
			"🎓 Graduation year: %s\n"+
			"💡 Interests: %s\n"+
			"🕐 Availability: %d of %d slots\n"+
			"📚 Completed: %s",
		strings.ToUpper(user.Netid),
		user.GraduationYear,
		interests,
		availability.Count(),
		model.AvailabilityDays*model.AvailabilitySlots,
		FormatCompletions(completions),
	)
}
