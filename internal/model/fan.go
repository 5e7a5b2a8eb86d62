package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// FanStatus classifies a fan by spending behaviour.
type FanStatus string

const (
	FanStatusSpender    FanStatus = "Spender"
	FanStatusGoodBuyer  FanStatus = "Good buyer"
	FanStatusTimewaster FanStatus = "Timewaster"
)

// Valid reports whether s is one of the known statuses.
func (s FanStatus) Valid() bool {
	switch s {
	case FanStatusSpender, FanStatusGoodBuyer, FanStatusTimewaster:
		return true
	}
	return false
}

const defaultFanName = "User"

// Fan is a subscriber of a managed creator.
type Fan struct {
	ID           ID        `json:"id"`
	Name         string    `json:"nom"`
	Initial      string    `json:"initiale"`
	AvatarURL    string    `json:"urlAvatar,omitempty"`
	Status       FanStatus `json:"statut"`
	LastActivity time.Time `json:"derniereActivite,omitzero"`
	TotalSpent   Amount    `json:"totalDepense"`
}

type fanWire struct {
	ID           ID     `json:"id"`
	Nom          string `json:"nom"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Initiale     string `json:"initiale"`
	URLAvatar    string `json:"urlAvatar"`
	Avatar       string `json:"avatar"`
	Statut       string `json:"statut"`
	LastActivity string `json:"derniereActivite"`
	UpdatedAt    string `json:"updatedAt"`
	CreatedAt    string `json:"createdAt"`
	TotalDepense Amount `json:"totalDepense"`
}

// UnmarshalJSON decodes a fan, tolerating the alternative field names the
// backend has used over time.
func (f *Fan) UnmarshalJSON(data []byte) error {
	var w fanWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode fan: %w", err)
	}

	f.ID = w.ID
	f.Name = firstNonEmpty(w.Nom, w.Name, w.Email, defaultFanName)
	f.Initial = w.Initiale
	if f.Initial == "" {
		f.Initial = initialOf(firstNonEmpty(w.Nom, w.Name, "U"))
	}
	f.AvatarURL = firstNonEmpty(w.URLAvatar, w.Avatar)
	f.Status = FanStatus(w.Statut)
	if !f.Status.Valid() {
		f.Status = FanStatusTimewaster
	}
	f.LastActivity = ParseTimestamp(firstNonEmpty(w.LastActivity, w.UpdatedAt, w.CreatedAt))
	f.TotalSpent = w.TotalDepense
	return nil
}

// FanInput is the payload for creating a fan.
type FanInput struct {
	Name       string    `json:"nom"`
	Status     FanStatus `json:"statut,omitempty"`
	AvatarURL  string    `json:"urlAvatar,omitempty"`
	TotalSpent Amount    `json:"totalDepense"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseTimestamp parses the timestamp formats returned by the backend.
// Unparseable or empty input yields the zero time.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func initialOf(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "U"
	}
	return string(unicode.ToUpper(r))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
