package api

import (
	"context"
	"fmt"
	"net/url"
)

// ListCompletions получает завершённые курсы пользователя
func (c *Client) ListCompletions(ctx context.Context, userID int64) ([]string, error) {
	var resp completionsResponse
	if err := c.get(ctx, "list completions", fmt.Sprintf("/users/%d/completions/", userID), &resp); err != nil {
		return nil, err
	}
	return resp.CompletedCourses, nil
}

// AddCompletion добавляет завершённый курс пользователю.
// Удаления API не поддерживает, только добавление по одному.
func (c *Client) AddCompletion(ctx context.Context, userID int64, courseNumber string) (*AddCompletionResponse, error) {
	payload := addCompletionRequest{CourseNumber: courseNumber}

	var resp AddCompletionResponse
	if err := c.post(ctx, "add completion", fmt.Sprintf("/users/%d/completions/", userID), payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CoreCourses получает номера обязательных (core) курсов
func (c *Client) CoreCourses(ctx context.Context) ([]string, error) {
	var resp coreCoursesResponse
	if err := c.get(ctx, "core courses", "/core-sets/", &resp); err != nil {
		return nil, err
	}
	return resp.Courses, nil
}

// ListCourses получает полный каталог курсов
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var resp coursesListResponse
	if err := c.get(ctx, "list courses", "/courses/", &resp); err != nil {
		return nil, err
	}
	return resp.Courses, nil
}

// GetCourse получает один курс по номеру
func (c *Client) GetCourse(ctx context.Context, number string) (*Course, error) {
	var course Course
	path := fmt.Sprintf("/courses/%s/", url.PathEscape(number))
	if err := c.get(ctx, "get course", path, &course); err != nil {
		return nil, err
	}
	return &course, nil
}
