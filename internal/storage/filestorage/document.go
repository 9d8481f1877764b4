package filestorage

import "context"

// Document is a single JSON object, used for the site content.
type Document struct {
	path string
}

// Load returns the persisted object, or an empty map when nothing was saved yet.
func (d *Document) Load(ctx context.Context) (map[string]any, error) {
	doc := map[string]any{}
	if err := readJSON(ctx, d.path, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

func (d *Document) Save(ctx context.Context, doc map[string]any) error {
	if doc == nil {
		doc = map[string]any{}
	}
	return writeJSON(ctx, d.path, doc)
}
