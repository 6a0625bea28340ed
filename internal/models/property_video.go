package models

import (
	"fmt"

	"github.com/google/uuid"
)

type VideoPlatform string

const (
	VideoPlatformYouTube VideoPlatform = "YOUTUBE"
	VideoPlatformVimeo   VideoPlatform = "VIMEO"
)

func ParseVideoPlatform(s string) (VideoPlatform, error) {
	switch VideoPlatform(s) {
	case VideoPlatformYouTube, VideoPlatformVimeo:
		return VideoPlatform(s), nil
	default:
		return "", fmt.Errorf("invalid video platform: %q", s)
	}
}

type PropertyVideo struct {
	ID         uuid.UUID     `json:"id"`
	PropertyID uuid.UUID     `json:"property_id"`
	URL        string        `json:"url"`
	Platform   VideoPlatform `json:"platform"`
}
