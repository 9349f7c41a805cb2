package api

import (
	"context"
	"fmt"
)

// GenerateSchedule запрашивает генерацию расписания для пользователя
func (c *Client) GenerateSchedule(ctx context.Context, userID int64) (*Schedule, error) {
	payload := generateScheduleRequest{UserID: userID}

	var schedule Schedule
	if err := c.post(ctx, "generate schedule", "/schedules/generate/", payload, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ListSchedules получает прошлые сгенерированные расписания пользователя
func (c *Client) ListSchedules(ctx context.Context, userID int64) ([]ScheduleInfo, error) {
	var resp schedulesListResponse
	if err := c.get(ctx, "list schedules", fmt.Sprintf("/schedules/%d/", userID), &resp); err != nil {
		return nil, err
	}
	return resp.Schedules, nil
}
