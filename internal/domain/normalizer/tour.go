package normalizer

import (
	"strings"

	"ceylon_travel/internal/domain/models"
)

var tourStatuses = []string{models.TourActive, models.TourDraft, models.TourArchived}

// Tour maps a raw row to the canonical tour.
//
// groupSize and bestTime may live at the top level or inside importantInfo
// (or the older "info" blob). The top level wins; the resolved value is
// written back to both places so either layout keeps reading correctly.
func Tour(raw map[string]any) models.Tour {
	if raw == nil {
		raw = map[string]any{}
	}

	info := object(pick(raw, "important_info", "importantInfo"))
	legacy := object(pick(raw, "info"))
	if info == nil {
		info = map[string]any{}
	}
	if legacy == nil {
		legacy = map[string]any{}
	}

	groupSize := str(firstOf(
		pick(raw, "group_size", "groupSize"),
		pick(info, "groupSize", "group_size"),
		pick(legacy, "groupSize", "group_size"),
	))
	bestTime := str(firstOf(
		pick(raw, "best_time", "bestTime"),
		pick(info, "bestTime", "best_time"),
		pick(legacy, "bestTime", "best_time"),
	))

	requirements := firstOf(pick(info, "requirements"), pick(legacy, "requirements"))
	whatToBring := firstOf(pick(info, "whatToBring", "what_to_bring"), pick(legacy, "whatToBring", "what_to_bring"))

	images := strList(pick(raw, "images", "gallery"))
	if len(images) == 0 {
		if single := strings.TrimSpace(str(pick(raw, "image"))); single != "" {
			images = []string{single}
		}
	}

	t := models.Tour{
		ID:             models.IDFromAny(pick(raw, "id")),
		Name:           strings.TrimSpace(str(pick(raw, "name", "title"))),
		Duration:       str(pick(raw, "duration")),
		Price:          str(pick(raw, "price")),
		Style:          str(pick(raw, "style", "tour_style", "tourStyle")),
		Destinations:   strList(pick(raw, "destinations")),
		Highlights:     strList(pick(raw, "highlights")),
		KeyExperiences: strList(pick(raw, "key_experiences", "keyExperiences")),
		Description:    str(pick(raw, "description")),
		Itinerary:      Itinerary(pick(raw, "itinerary", "days")),
		Inclusions:     strList(pick(raw, "inclusions")),
		Exclusions:     strList(pick(raw, "exclusions")),
		ImportantInfo: models.ImportantInfo{
			Requirements: requirementList(requirements),
			WhatToBring:  strList(whatToBring),
			GroupSize:    groupSize,
			BestTime:     bestTime,
		},
		Accommodation:  accommodation(pick(raw, "accommodation")),
		Transportation: str(pick(raw, "transportation")),
		Images:         images,
		Status:         oneOf(str(pick(raw, "status")), tourStatuses, models.TourActive),
		Featured:       boolean(pick(raw, "featured", "is_featured", "isFeatured")),
		GroupSize:      groupSize,
		BestTime:       bestTime,
		CreatedAt:      timestamp(pick(raw, "created_at", "createdAt")),
		UpdatedAt:      timestamp(pick(raw, "updated_at", "updatedAt")),
	}

	return t
}

// TourRow is the storage row for both backends.
func TourRow(t models.Tour) map[string]any {
	groupSize := t.GroupSize
	if groupSize == "" {
		groupSize = t.ImportantInfo.GroupSize
	}
	bestTime := t.BestTime
	if bestTime == "" {
		bestTime = t.ImportantInfo.BestTime
	}

	days := make([]any, 0, len(t.Itinerary))
	for i, d := range t.Itinerary {
		d.Day = i + 1
		days = append(days, dayRow(d))
	}

	reqs := make([]any, 0, len(t.ImportantInfo.Requirements))
	for _, r := range t.ImportantInfo.Requirements {
		reqs = append(reqs, map[string]any{
			"activity":     r.Activity,
			"requirements": nonNil(r.Requirements),
		})
	}

	info := map[string]any{
		"requirements": reqs,
		"whatToBring":  nonNil(t.ImportantInfo.WhatToBring),
	}
	if groupSize != "" {
		info["groupSize"] = groupSize
	}
	if bestTime != "" {
		info["bestTime"] = bestTime
	}

	row := map[string]any{
		"name":            t.Name,
		"duration":        t.Duration,
		"price":           t.Price,
		"style":           t.Style,
		"destinations":    nonNil(t.Destinations),
		"highlights":      nonNil(t.Highlights),
		"key_experiences": nonNil(t.KeyExperiences),
		"description":     t.Description,
		"itinerary":       days,
		"inclusions":      nonNil(t.Inclusions),
		"exclusions":      nonNil(t.Exclusions),
		"important_info":  info,
		"accommodation":   nonNil(t.Accommodation),
		"transportation":  t.Transportation,
		"images":          nonNil(t.Images),
		"status":          oneOf(t.Status, tourStatuses, models.TourActive),
		"featured":        t.Featured,
		"group_size":      groupSize,
		"best_time":       bestTime,
	}
	if t.ID.Valid() {
		row["id"] = string(t.ID)
	}
	putTimes(row, t.CreatedAt, t.UpdatedAt)

	return row
}

// Itinerary drops only null entries and renumbers every survivor to its
// 1-based position. A stored "day" value is never trusted. Entries that are
// not objects become empty days so the itinerary keeps its length and order.
func Itinerary(v any) []models.Day {
	items := list(v)
	days := make([]models.Day, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		d := day(object(item))
		d.Day = len(days) + 1
		days = append(days, d)
	}
	return days
}

// Renumber restores the contiguous day sequence after days were added or removed.
func Renumber(days []models.Day) []models.Day {
	out := make([]models.Day, len(days))
	for i, d := range days {
		d.Day = i + 1
		d.Activities = nonNil(d.Activities)
		d.Meals = nonNil(d.Meals)
		out[i] = d
	}
	return out
}

func day(m map[string]any) models.Day {
	if m == nil {
		return models.Day{Activities: []string{}, Meals: []string{}}
	}
	return models.Day{
		Title:          str(pick(m, "title")),
		Description:    str(pick(m, "description")),
		Activities:     strList(pick(m, "activities")),
		Accommodation:  str(pick(m, "accommodation")),
		Meals:          strList(pick(m, "meals")),
		Transportation: str(pick(m, "transportation")),
		TravelTime:     str(pick(m, "travelTime", "travel_time")),
		OvernightStay:  str(pick(m, "overnightStay", "overnight_stay")),
		Image:          str(pick(m, "image")),
	}
}

func dayRow(d models.Day) map[string]any {
	row := map[string]any{
		"day":           d.Day,
		"title":         d.Title,
		"description":   d.Description,
		"activities":    nonNil(d.Activities),
		"accommodation": d.Accommodation,
		"meals":         nonNil(d.Meals),
	}
	if d.Transportation != "" {
		row["transportation"] = d.Transportation
	}
	if d.TravelTime != "" {
		row["travelTime"] = d.TravelTime
	}
	if d.OvernightStay != "" {
		row["overnightStay"] = d.OvernightStay
	}
	if d.Image != "" {
		row["image"] = d.Image
	}
	return row
}

func requirementList(v any) []models.Requirement {
	items := list(v)
	out := make([]models.Requirement, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case nil:
			continue
		case string:
			if s := strings.TrimSpace(t); s != "" {
				out = append(out, models.Requirement{Activity: s, Requirements: []string{}})
			}
		default:
			m := object(t)
			if m == nil {
				continue
			}
			out = append(out, models.Requirement{
				Activity:     str(pick(m, "activity", "name")),
				Requirements: strList(pick(m, "requirements", "items")),
			})
		}
	}
	return out
}

// accommodation is a list in the current schema; older rows kept one string.
func accommodation(v any) []string {
	if s, ok := v.(string); ok && !strings.HasPrefix(strings.TrimSpace(s), "[") {
		if s = strings.TrimSpace(s); s != "" {
			return []string{s}
		}
		return []string{}
	}
	return strList(v)
}
