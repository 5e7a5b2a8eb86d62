package model

import "context"

// Collection names one of the four cached resource lists.
type Collection string

const (
	CollectionUsers   Collection = "users"
	CollectionFans    Collection = "fans"
	CollectionContent Collection = "content"
	CollectionImages  Collection = "images"
)

// Collections lists the cached collections in fetch order.
var Collections = []Collection{CollectionUsers, CollectionFans, CollectionContent, CollectionImages}

// CollectionStatus tells an empty collection apart from a failed one.
type CollectionStatus int

const (
	StatusIdle CollectionStatus = iota
	StatusLoading
	StatusOK
	StatusEmpty
	StatusFailed
)

func (s CollectionStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// UserReader lists users.
type UserReader interface {
	List(ctx context.Context) ([]User, error)
}

// FanReader lists fans.
type FanReader interface {
	List(ctx context.Context) ([]Fan, error)
}

// ContentReader lists content items.
type ContentReader interface {
	List(ctx context.Context) ([]Content, error)
}

// ImageReader lists images.
type ImageReader interface {
	List(ctx context.Context) ([]Image, error)
}
