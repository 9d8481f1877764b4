package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ceylon_travel/internal/domain/models"
)

func TestDeepMerge(t *testing.T) {
	base := map[string]any{
		"hero":  map[string]any{"title": "Default", "subtitle": "S"},
		"stats": map[string]any{"items": []any{"a", "b"}},
	}
	override := map[string]any{
		"hero":  map[string]any{"title": "X"},
		"stats": map[string]any{"items": []any{"c"}},
	}

	merged := DeepMerge(base, override)

	assert.Equal(t, map[string]any{"title": "X", "subtitle": "S"}, merged["hero"])
	assert.Equal(t, []any{"c"}, merged["stats"].(map[string]any)["items"], "arrays are replaced")
	assert.Equal(t, "Default", base["hero"].(map[string]any)["title"], "base is not modified")
}

func TestDeepMerge_ScalarOverridesObject(t *testing.T) {
	merged := DeepMerge(
		map[string]any{"cta": map[string]any{"title": "t"}},
		map[string]any{"cta": "disabled"},
	)

	assert.Equal(t, "disabled", merged["cta"])
}

func TestWithDefaults(t *testing.T) {
	persisted := models.SiteContent{"hero": map[string]any{"title": "X"}}

	content := WithDefaults(persisted)

	hero := content["hero"].(map[string]any)
	assert.Equal(t, "X", hero["title"])
	assert.Equal(t, models.DefaultSiteContent()["hero"].(map[string]any)["subtitle"], hero["subtitle"])
	for _, section := range models.SiteSections {
		assert.Contains(t, content, section)
	}
}

func TestSiteContent_DropsNonObjectSections(t *testing.T) {
	content := SiteContent(map[string]any{
		"hero":   map[string]any{"title": "X"},
		"footer": `{"copyright":"c"}`,
		"broken": 12,
	})

	assert.Contains(t, content, "hero")
	assert.Equal(t, map[string]any{"copyright": "c"}, content["footer"])
	assert.NotContains(t, content, "broken")
}
