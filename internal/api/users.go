package api

import (
	"context"
	"fmt"
)

// CreateUser создаёт нового пользователя по netid
func (c *Client) CreateUser(ctx context.Context, netid, graduationYear string, interests *string, availability string) (*User, error) {
	payload := createUserRequest{
		Netid:          netid,
		GraduationYear: graduationYear,
		Interests:      interests,
		Availability:   availability,
	}

	var user User
	if err := c.post(ctx, "create user", "/users/", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers получает всех пользователей
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var resp usersListResponse
	if err := c.get(ctx, "list users", "/users/", &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// GetUser получает пользователя по ID
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := c.get(ctx, "get user", fmt.Sprintf("/users/%d/", id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser обновляет профиль пользователя. Netid сервер по PATCH не меняет.
func (c *Client) UpdateUser(ctx context.Context, id int64, graduationYear string, interests *string, availability string) (*User, error) {
	payload := createUserRequest{
		GraduationYear: graduationYear,
		Interests:      interests,
		Availability:   availability,
	}

	var user User
	if err := c.patch(ctx, "update user", fmt.Sprintf("/users/%d/", id), payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
