package adminclient

import (
	"context"
	"net/http"
)

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
	Kind     int    `json:"kind,omitempty"`
}

// CreateUser registers a new user account.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (map[string]any, error) {
	return c.Do(ctx, http.MethodPost, "/api/users", req)
}
