package patient

import (
	"time"

	"github.com/google/uuid"
)

// Fields is the schemaless body of a stroke record. Required clinical
// fields are enforced by validation, but extra fields submitted by the
// client are kept as-is.
type Fields map[string]interface{}

// Record is one stored patient stroke record.
type Record struct {
	ID        uuid.UUID `json:"id"`
	Fields    Fields    `json:"fields"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Stats summarizes the stored record population.
type Stats struct {
	Total      int            `json:"total"`
	Strokes    int            `json:"strokes"`
	StrokeRate float64        `json:"stroke_rate"`
	ByGender   map[string]int `json:"by_gender"`
}
