package models

import "time"

const (
	DestinationActive   = "active"
	DestinationInactive = "inactive"
)

// Regions - мягкий список пресетов, регион может быть произвольной строкой.
var Regions = []string{
	"Western Province",
	"Central Province",
	"Southern Province",
	"Northern Province",
	"Eastern Province",
	"North Western Province",
	"North Central Province",
	"Uva Province",
	"Sabaragamuwa Province",
	"Cultural Triangle",
	"Hill Country",
	"South Coast",
	"East Coast",
}

type Destination struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Region      string     `json:"region"`
	Lat         float64    `json:"lat"`
	Lng         float64    `json:"lng"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Status      string     `json:"status"`
	ThingsToDo  []Activity `json:"things_to_do"`
	Gallery     []string   `json:"gallery"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`

	// ToursCount вычисляется при чтении и никогда не сохраняется.
	ToursCount *int `json:"toursCount,omitempty"`
}

type Activity struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
}
