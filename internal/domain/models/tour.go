package models

import "time"

const (
	TourActive   = "active"
	TourDraft    = "draft"
	TourArchived = "archived"
)

type Tour struct {
	ID             ID            `json:"id"`
	Name           string        `json:"name"`
	Duration       string        `json:"duration"`
	Price          string        `json:"price,omitempty"`
	Style          string        `json:"style,omitempty"`
	Destinations   []string      `json:"destinations"`
	Highlights     []string      `json:"highlights"`
	KeyExperiences []string      `json:"keyExperiences"`
	Description    string        `json:"description"`
	Itinerary      []Day         `json:"itinerary"`
	Inclusions     []string      `json:"inclusions"`
	Exclusions     []string      `json:"exclusions"`
	ImportantInfo  ImportantInfo `json:"importantInfo"`
	Accommodation  []string      `json:"accommodation"`
	Transportation string        `json:"transportation"`
	Images         []string      `json:"images"`
	Status         string        `json:"status"`
	Featured       bool          `json:"featured"`
	// GroupSize и BestTime дублируются в ImportantInfo, см. normalizer.Tour.
	GroupSize string     `json:"groupSize,omitempty"`
	BestTime  string     `json:"bestTime,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Day is one itinerary entry. Day numbers are contiguous from 1.
type Day struct {
	Day            int      `json:"day"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Activities     []string `json:"activities"`
	Accommodation  string   `json:"accommodation"`
	Meals          []string `json:"meals"`
	Transportation string   `json:"transportation,omitempty"`
	TravelTime     string   `json:"travelTime,omitempty"`
	OvernightStay  string   `json:"overnightStay,omitempty"`
	Image          string   `json:"image,omitempty"`
}

type ImportantInfo struct {
	Requirements []Requirement `json:"requirements"`
	WhatToBring  []string      `json:"whatToBring"`
	GroupSize    string        `json:"groupSize,omitempty"`
	BestTime     string        `json:"bestTime,omitempty"`
}

type Requirement struct {
	Activity     string   `json:"activity"`
	Requirements []string `json:"requirements"`
}
