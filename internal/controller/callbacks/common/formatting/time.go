package formatting

import "fmt"

// FormatMinuteOfDay форматирует минуту дня как "09:05"
func FormatMinuteOfDay(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// FormatMeetingTime форматирует время встреч секции, например "MWF 09:05–09:55".
// Секции без времени показываются как "MWF (time TBA)".
func FormatMeetingTime(days string, startMin, endMin *int) string {
	if days == "" {
		days = "TBA"
	}
	if startMin == nil || endMin == nil {
		return fmt.Sprintf("%s (time TBA)", days)
	}
	return fmt.Sprintf("%s %s–%s", days, FormatMinuteOfDay(*startMin), FormatMinuteOfDay(*endMin))
}

// FormatCredits форматирует число кредитов
func FormatCredits(credits int) string {
	if credits == 1 {
		return "1 credit"
	}
	return fmt.Sprintf("%d credits", credits)
}
