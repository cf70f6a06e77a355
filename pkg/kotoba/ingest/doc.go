package ingest

import (
	"errors"
	"strings"
	"time"
)

// Doc represents a document ready for segmentation
type Doc struct {
	URL         string
	Title       string
	Outlet      string
	PublishedAt time.Time
	BodyText    string
}

// Validate checks if the document has required fields
func (d *Doc) Validate() error {
	if strings.TrimSpace(d.URL) == "" {
		return errors.New("doc URL is required")
	}

	if strings.TrimSpace(d.BodyText) == "" {
		return errors.New("doc body text is required")
	}

	return nil
}
