package normalizer

import "ceylon_travel/internal/domain/models"

// SiteContent returns the persisted document as a section map.
// Sections that are not objects are dropped.
func SiteContent(raw map[string]any) models.SiteContent {
	out := models.SiteContent{}
	for k, v := range raw {
		if m := object(v); m != nil {
			out[k] = clone(m)
		}
	}
	return out
}

// DeepMerge overlays override on base and returns a new map. When both
// sides hold objects the merge recurses; otherwise the override wins
// outright, arrays included.
func DeepMerge(base, override map[string]any) map[string]any {
	out := clone(base)
	if out == nil {
		out = map[string]any{}
	}
	for k, ov := range override {
		om, overrideIsMap := asMap(ov)
		bm, baseIsMap := asMap(out[k])
		if overrideIsMap && baseIsMap {
			out[k] = DeepMerge(bm, om)
			continue
		}
		out[k] = cloneValue(ov)
	}
	return out
}

// WithDefaults merges a persisted document over the built-in defaults.
func WithDefaults(persisted models.SiteContent) models.SiteContent {
	return models.SiteContent(DeepMerge(models.DefaultSiteContent(), persisted))
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case models.SiteContent:
		return t, true
	default:
		return nil, false
	}
}

func clone(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return clone(t)
	case models.SiteContent:
		return clone(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
