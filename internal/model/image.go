package model

// Image is a media asset with a price tag.
type Image struct {
	ID           ID     `json:"id"`
	URL          string `json:"url"`
	Price        Amount `json:"price"`
	VersionTag   string `json:"versionTag,omitempty"`
	VersionColor string `json:"versionColor,omitempty"`
}

// ImageInput is the payload for creating an image.
type ImageInput struct {
	URL          string `json:"url"`
	Price        Amount `json:"price"`
	VersionTag   string `json:"versionTag,omitempty"`
	VersionColor string `json:"versionColor,omitempty"`
}
