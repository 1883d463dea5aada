package entity

import (
	"strings"
	"time"
)

// MediaType distinguishes stored attachment kinds.
type MediaType string

// Attachment kinds.
const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// MediaTypeFromMIME maps an upload's MIME type to an attachment kind.
// Anything that is not a video is stored as an image.
func MediaTypeFromMIME(mime string) MediaType {
	if strings.HasPrefix(mime, "video") {
		return MediaTypeVideo
	}

	return MediaTypeImage
}

// Media is a stored attachment belonging to an issue.
type Media struct {
	ID        string
	IssueID   string
	FileType  MediaType
	URL       string
	Filename  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
