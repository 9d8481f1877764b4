package normalizer

import (
	"strings"

	"ceylon_travel/internal/domain/models"
)

// ExtensionColumns are destination fields the remote schema may not have yet.
// They fall back to the extras side-store.
var ExtensionColumns = []string{"things_to_do", "gallery"}

// Destination maps a raw row (remote row or file JSON object) to the canonical shape.
func Destination(raw map[string]any) models.Destination {
	if raw == nil {
		raw = map[string]any{}
	}

	coords := object(pick(raw, "coordinates", "location"))
	if coords == nil {
		coords = map[string]any{}
	}

	d := models.Destination{
		ID:          strings.TrimSpace(str(pick(raw, "id"))),
		Name:        strings.TrimSpace(str(pick(raw, "name", "title"))),
		Region:      strings.TrimSpace(str(pick(raw, "region", "province"))),
		Lat:         float(firstOf(pick(raw, "lat", "latitude"), pick(coords, "lat", "latitude"))),
		Lng:         float(firstOf(pick(raw, "lng", "longitude", "lon"), pick(coords, "lng", "longitude", "lon"))),
		Description: str(pick(raw, "description")),
		Image:       str(pick(raw, "image", "image_url", "imageUrl")),
		Status:      oneOf(str(pick(raw, "status")), []string{models.DestinationActive, models.DestinationInactive}, models.DestinationActive),
		ThingsToDo:  activities(pick(raw, "things_to_do", "thingsToDo")),
		Gallery:     gallery(pick(raw, "gallery", "gallery_images", "galleryImages")),
		CreatedAt:   timestamp(pick(raw, "created_at", "createdAt")),
		UpdatedAt:   timestamp(pick(raw, "updated_at", "updatedAt")),
	}

	return d
}

// DestinationRow is the storage row for both backends.
func DestinationRow(d models.Destination) map[string]any {
	things := make([]any, 0, len(d.ThingsToDo))
	for _, a := range d.ThingsToDo {
		things = append(things, activityRow(a))
	}

	row := map[string]any{
		"name":         d.Name,
		"region":       d.Region,
		"lat":          d.Lat,
		"lng":          d.Lng,
		"description":  d.Description,
		"image":        d.Image,
		"status":       oneOf(d.Status, []string{models.DestinationActive, models.DestinationInactive}, models.DestinationActive),
		"things_to_do": things,
		"gallery":      nonNil(d.Gallery),
	}
	if d.ID != "" {
		row["id"] = d.ID
	}
	putTimes(row, d.CreatedAt, d.UpdatedAt)

	return row
}

// MergeExtras overlays side-stored fields on a destination read from any backend.
// Extras only fill fields, they never blank out values the row already has.
func MergeExtras(d models.Destination, extras map[string]any) models.Destination {
	if len(extras) == 0 {
		return d
	}
	if v, ok := extras["things_to_do"]; ok {
		if things := activities(v); len(things) > 0 {
			d.ThingsToDo = things
		}
	}
	if v, ok := extras["gallery"]; ok {
		if g := gallery(v); len(g) > 0 {
			d.Gallery = g
		}
	}
	return d
}

func activities(v any) []models.Activity {
	items := list(v)
	out := make([]models.Activity, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case nil:
			continue
		case string:
			if name := strings.TrimSpace(t); name != "" {
				out = append(out, models.Activity{Name: name})
			}
		default:
			m := object(t)
			if m == nil {
				continue
			}
			a := models.Activity{
				Name:        strings.TrimSpace(str(pick(m, "name", "title"))),
				Description: str(pick(m, "description")),
				Duration:    str(pick(m, "duration")),
				Difficulty:  str(pick(m, "difficulty")),
			}
			if a.Name == "" && a.Description == "" {
				continue
			}
			out = append(out, a)
		}
	}
	return out
}

func activityRow(a models.Activity) map[string]any {
	row := map[string]any{"name": a.Name}
	if a.Description != "" {
		row["description"] = a.Description
	}
	if a.Duration != "" {
		row["duration"] = a.Duration
	}
	if a.Difficulty != "" {
		row["difficulty"] = a.Difficulty
	}
	return row
}

func gallery(v any) []string {
	items := list(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		url := str(item)
		if m := object(item); m != nil {
			url = str(pick(m, "url", "src", "image"))
		}
		if url = strings.TrimSpace(url); url != "" {
			out = append(out, url)
		}
	}
	return out
}

func firstOf(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// ToursCount counts, for every destination, the tours whose destination list
// names it. The result is attached to copies, nothing is written back.
func ToursCount(destinations []models.Destination, tours []models.Tour) []models.Destination {
	counts := make(map[string]int)
	for _, t := range tours {
		seen := make(map[string]bool, len(t.Destinations))
		for _, name := range t.Destinations {
			key := strings.ToLower(strings.TrimSpace(name))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			counts[key]++
		}
	}

	out := make([]models.Destination, len(destinations))
	for i, d := range destinations {
		n := counts[strings.ToLower(strings.TrimSpace(d.Name))]
		d.ToursCount = &n
		out[i] = d
	}
	return out
}
