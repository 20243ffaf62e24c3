// Package validate holds per-entity gojsonschema schemas used to validate
// untrusted upstream webhook payloads before they reach a mirror's
// Add/Delete. Grounded on the croupier pack's direct
// github.com/xeipuuv/gojsonschema dependency (unused for CRUD in the
// teacher pack — wired here as the validation layer).
package validate

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Registry holds one compiled schema per entity name.
type Registry struct {
	schemas map[string]*gojsonschema.Schema
}

// schemaFor returns the minimal Apicalypse-entity JSON schema: an object
// carrying a numeric "id", everything else permitted (the mirror's
// Passthrough column absorbs unmodeled fields).
func schemaFor(idField string, required ...string) string {
	req := append([]string{idField}, required...)
	quoted := make([]string, len(req))
	for i, r := range req {
		quoted[i] = fmt.Sprintf("%q", r)
	}
	return fmt.Sprintf(`{
		"type": "object",
		"properties": {"%s": {"type": "number"}},
		"required": [%s]
	}`, idField, strings.Join(quoted, ", "))
}

// NewRegistry compiles the schema set for the five mirrored entities.
func NewRegistry() (*Registry, error) {
	defs := map[string]string{
		"games":              schemaFor("id"),
		"alternative_names":  schemaFor("id"),
		"external_games":     schemaFor("id"),
		"game_localizations": schemaFor("id"),
		"companies":          schemaFor("id"),
	}

	r := &Registry{schemas: make(map[string]*gojsonschema.Schema, len(defs))}
	for entity, raw := range defs {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", entity, err)
		}
		r.schemas[entity] = schema
	}
	return r, nil
}

// Validate checks body against the entity's registered schema.
func (r *Registry) Validate(entity string, body []byte) error {
	schema, ok := r.schemas[entity]
	if !ok {
		return fmt.Errorf("no schema registered for entity %q", entity)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return err
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}
