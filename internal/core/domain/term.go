package domain

import "time"

// Term represents a single glossary entry
type Term struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ShortDefinition string    `json:"short_definition"`
	LongDefinition  string    `json:"long_definition,omitempty"`
	CategoryID      string    `json:"category_id,omitempty"`
	CategoryName    string    `json:"category_name,omitempty"`
	ViewCount       int       `json:"view_count"`
	ContentHash     string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Category groups terms by subject area
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ImportSummary reports the outcome of a bulk term import
type ImportSummary struct {
	Processed  int           `json:"processed"`
	Imported   int           `json:"imported"`
	Skipped    int           `json:"skipped"`
	Failed     int           `json:"failed"`
	Categories int           `json:"categories"`
	Took       time.Duration `json:"took" swaggertype:"integer"`
}
