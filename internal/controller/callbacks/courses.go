package callbacks

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schedulr/schedulr-bot/internal/api"
	"github.com/schedulr/schedulr-bot/internal/controller/callbacks/common"
	"github.com/schedulr/schedulr-bot/internal/controller/callbacks/common/formatting"
	"github.com/schedulr/schedulr-bot/internal/controller/callbacks/common/keyboard"
	"go.uber.org/zap"
)

const coursesPerPage = 8

// HandleCoursesPage показывает страницу каталога курсов
func (h *Handler) HandleCoursesPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	message := common.GetMessageFromCallback(callback)
	if message == nil {
		return
	}
	chatID := message.Chat.ID

	page, err := common.ParsePageFromCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse page", zap.Error(err), zap.String("data", callback.Data))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Bad button")
		return
	}

	courses, err := h.Catalog.ListCourses(ctx)
	if err != nil {
		h.Logger.Error("Failed to load catalog", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Catalog is unavailable")
		return
	}

	text, markup := CourseListPage(courses, page)
	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   message.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleViewCourse показывает карточку одного курса из каталога
func (h *Handler) HandleViewCourse(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	message := common.GetMessageFromCallback(callback)
	if message == nil {
		return
	}
	chatID := message.Chat.ID

	number := common.ParseSuffixFromCallback(ViewCourse, callback.Data)

	course, err := h.Catalog.GetCourse(ctx, number)
	if err != nil {
		h.Logger.Error("Failed to load course",
			zap.String("number", number),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Course not found")
		return
	}

	markup := keyboard.NewBuilder().
		Row(keyboard.Button("⬅️ Back to catalog", BackToList+"0")).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   message.ID,
		Text:        formatting.FormatCourseInfo(course),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// CourseListPage собирает текст и клавиатуру страницы каталога.
// Используется и командой /courses, и пагинацией.
func CourseListPage(courses []api.Course, page int) (string, *models.InlineKeyboardMarkup) {
	if len(courses) == 0 {
		return "📭 The course catalog is empty.", nil
	}

	totalPages := (len(courses) + coursesPerPage - 1) / coursesPerPage
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	start := page * coursesPerPage
	end := start + coursesPerPage
	if end > len(courses) {
		end = len(courses)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📚 <b>Course catalog</b> (%d courses)\n\n", len(courses))

	builder := keyboard.NewBuilder()
	for i := start; i < end; i++ {
		course := courses[i]
		sb.WriteString(formatting.FormatCourseShort(&course, i+1) + "\n")
		builder.Row(keyboard.Button(course.Number, ViewCourse+course.Number))
	}

	builder.AddPagination(CoursesPage, page, totalPages)

	return sb.String(), builder.Build()
}
