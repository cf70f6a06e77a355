package ingest

import (
	"testing"
	"time"
)

func TestDocValidate(t *testing.T) {
	doc := Doc{
		URL:         "https://example.com/article",
		Title:       "猫の話",
		PublishedAt: time.Now(),
		BodyText:    "猫が来た。",
	}

	if err := doc.Validate(); err != nil {
		t.Errorf("Valid doc should pass validation, got %v", err)
	}
}

func TestDocValidateMissingFields(t *testing.T) {
	tests := []struct {
		name string
		doc  Doc
	}{
		{"missing URL", Doc{URL: " ", BodyText: "猫が来た。"}},
		{"missing body", Doc{URL: "https://example.com/a", BodyText: "\n\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.doc.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestDocTitleOptional(t *testing.T) {
	doc := Doc{URL: "https://example.com/a", BodyText: "猫"}
	if err := doc.Validate(); err != nil {
		t.Errorf("Title should be optional, got %v", err)
	}
}
