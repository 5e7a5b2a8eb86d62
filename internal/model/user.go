package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// User is an employee or admin account managed through /users.
type User struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Role        string    `json:"role,omitempty"`
	Performance float64   `json:"performance"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// UnmarshalJSON decodes a user. Performance may be a numeric string and
// createdAt may use any layout ParseTimestamp accepts.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var w struct {
		plain
		Performance Amount   `json:"performance"`
		CreatedAt   wireTime `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode user: %w", err)
	}
	*u = User(w.plain)
	u.Performance = w.Performance.Float64()
	u.CreatedAt = w.CreatedAt.Time()
	return nil
}

// DisplayName returns the name, falling back to the email.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// UserInput is the payload for creating or updating a user.
type UserInput struct {
	Name        string   `json:"name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Role        string   `json:"role,omitempty"`
	Password    string   `json:"password,omitempty"`
	Performance *float64 `json:"performance,omitempty"`
}
