// Package corpus reads documents to ingest: JSONL item files and HTML
// bodies reduced to plain text.
package corpus

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Item represents one document line of a JSONL corpus
type Item struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Outlet      string    `json:"outlet"`
	PublishedAt time.Time `json:"published_at"`
	Body        string    `json:"text"`
	HTML        string    `json:"html"`
}

// Text returns the item body, extracted from HTML when no plain text is
// given.
func (it Item) Text() string {
	if strings.TrimSpace(it.Body) != "" || it.HTML == "" {
		return it.Body
	}
	return ExtractText(it.HTML)
}

// LoadFromJSONL loads items from a JSONL file. Malformed lines are logged
// and skipped.
func LoadFromJSONL(path string, logger *slog.Logger) ([]Item, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var items []Item
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			logger.Warn("skipping malformed JSON", "path", path, "line", i+1, "error", err)
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no valid items found in %s", path)
	}

	return items, nil
}
