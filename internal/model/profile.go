package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// UserSettings holds notification preferences.
type UserSettings struct {
	EmailNotifications bool `json:"emailNotifications"`
	PushNotifications  bool `json:"pushNotifications"`
	MarketingEmails    bool `json:"marketingEmails"`
	SecurityAlerts     bool `json:"securityAlerts"`
}

// UserSocial holds social network handles.
type UserSocial struct {
	Facebook  *string `json:"facebook"`
	Twitter   *string `json:"twitter"`
	Instagram *string `json:"instagram"`
	LinkedIn  *string `json:"linkedin"`
}

// UserProfile is the profile of the signed-in account. ID and Email cannot be
// changed through the API.
type UserProfile struct {
	ID         ID           `json:"id"`
	Email      string       `json:"email"`
	FirstName  *string      `json:"firstName"`
	LastName   *string      `json:"lastName"`
	Avatar     *string      `json:"avatar"`
	Bio        *string      `json:"bio"`
	Job        *string      `json:"job"`
	Phone      *string      `json:"phone"`
	Country    *string      `json:"country"`
	City       *string      `json:"city"`
	PostalCode *string      `json:"postalCode"`
	Birthday   *string      `json:"birthday"`
	Settings   UserSettings `json:"settings"`
	Social     UserSocial   `json:"social"`
	CreatedAt  time.Time    `json:"createdAt,omitzero"`
	UpdatedAt  time.Time    `json:"updatedAt,omitzero"`
}

func (p *UserProfile) UnmarshalJSON(data []byte) error {
	type plain UserProfile
	var w struct {
		plain
		CreatedAt wireTime `json:"createdAt"`
		UpdatedAt wireTime `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode profile: %w", err)
	}
	*p = UserProfile(w.plain)
	p.CreatedAt = w.CreatedAt.Time()
	p.UpdatedAt = w.UpdatedAt.Time()
	return nil
}

// ProfileUpdate is a partial profile update. Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
	Bio        *string `json:"bio,omitempty"`
	Job        *string `json:"job,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Country    *string `json:"country,omitempty"`
	City       *string `json:"city,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	Birthday   *string `json:"birthday,omitempty"`
}

// SettingsUpdate is a partial settings update.
type SettingsUpdate struct {
	EmailNotifications *bool `json:"emailNotifications,omitempty"`
	PushNotifications  *bool `json:"pushNotifications,omitempty"`
	MarketingEmails    *bool `json:"marketingEmails,omitempty"`
	SecurityAlerts     *bool `json:"securityAlerts,omitempty"`
}

// SocialUpdate is a partial social handles update.
type SocialUpdate struct {
	Facebook  *string `json:"facebook,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
}
