package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ContentStatus is the publication state of a content item. On the wire it
// travels in the "titre" field.
type ContentStatus string

const (
	ContentStatusPurchased ContentStatus = "Acheté"
	ContentStatusPending   ContentStatus = "En attente"
	ContentStatusRejected  ContentStatus = "Refusé"
	ContentStatusFree      ContentStatus = "Gratuit"
	ContentStatusPublic    ContentStatus = "Public"
)

// ParseContentStatus maps free-form status text onto a known status.
// Anything unrecognised is Public.
func ParseContentStatus(s string) ContentStatus {
	t := strings.ToLower(strings.TrimSpace(s))
	switch {
	case t == "":
		return ContentStatusPublic
	case strings.Contains(t, "achet"):
		return ContentStatusPurchased
	case strings.Contains(t, "attente"):
		return ContentStatusPending
	case strings.Contains(t, "refus"):
		return ContentStatusRejected
	case strings.Contains(t, "grat"):
		return ContentStatusFree
	}
	return ContentStatusPublic
}

// Content is a media item offered to fans.
type Content struct {
	ID       ID            `json:"id"`
	Status   ContentStatus `json:"titre"`
	ImageURL string        `json:"urlImage,omitempty"`
	Price    Amount        `json:"prix"`
}

type contentWire struct {
	ID       ID     `json:"id"`
	Titre    string `json:"titre"`
	URLImage string `json:"urlImage"`
	URL      string `json:"url"`
	Prix     Amount `json:"prix"`
	Price    Amount `json:"price"`
}

// UnmarshalJSON decodes a content item and normalises its status.
func (c *Content) UnmarshalJSON(data []byte) error {
	var w contentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode content: %w", err)
	}
	c.ID = w.ID
	c.Status = ParseContentStatus(w.Titre)
	c.ImageURL = firstNonEmpty(w.URLImage, w.URL)
	c.Price = w.Prix
	if c.Price == 0 {
		c.Price = w.Price
	}
	return nil
}

// ContentInput is the payload for creating a content item.
type ContentInput struct {
	Status   ContentStatus `json:"titre"`
	ImageURL string        `json:"urlImage,omitempty"`
	Price    Amount        `json:"prix"`
}
