package items

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// DefaultTypeID is the type id reported for unknown or absent item types.
const DefaultTypeID = "default"

// ErrInvalidCatalog is returned when a pose catalog fails validation.
var ErrInvalidCatalog = errors.New("items: invalid pose catalog")

//go:embed poses.yaml
var posesYAML []byte

//go:embed pose.schema.json
var poseSchemaJSON []byte

const schemaURL = "pose.schema.json"

type catalogFile struct {
	Fallback string           `yaml:"fallback"`
	Items    []ItemPoseConfig `yaml:"items"`
}

// Registry is an immutable typeId -> ItemPoseConfig table.
// There is no way to add or remove entries after Parse.
type Registry struct {
	byID     map[string]ItemPoseConfig
	ids      []string
	fallback ItemPoseConfig
}

var builtin = MustParse(posesYAML)

// Default returns the registry built from the embedded catalog.
func Default() *Registry {
	return builtin
}

// Lookup resolves typeID against the embedded catalog.
func Lookup(typeID string) ItemPoseConfig {
	return builtin.Lookup(typeID)
}

// Lookup returns the config registered for typeID. Unknown ids and the empty
// (absent) id return the fallback melee config with TypeID "default".
func (r *Registry) Lookup(typeID string) ItemPoseConfig {
	if c, ok := r.byID[typeID]; ok {
		return c.clone()
	}
	return r.fallback.clone()
}

// Has reports whether typeID is registered.
func (r *Registry) Has(typeID string) bool {
	_, ok := r.byID[typeID]
	return ok
}

// TypeIDs returns the registered ids in sorted order.
func (r *Registry) TypeIDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Len returns the number of registered item types.
func (r *Registry) Len() int {
	return len(r.byID)
}

// MustParse is Parse for the embedded catalog. Panics on invalid data.
func MustParse(data []byte) *Registry {
	r, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return r
}

// Parse validates a YAML pose catalog against the pose schema and builds a
// registry from it.
func Parse(data []byte) (*Registry, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	r := &Registry{byID: make(map[string]ItemPoseConfig, len(file.Items))}
	for _, c := range file.Items {
		if _, dup := r.byID[c.TypeID]; dup {
			return nil, fmt.Errorf("%w: duplicate typeId %q", ErrInvalidCatalog, c.TypeID)
		}
		if c.TypeID == DefaultTypeID {
			return nil, fmt.Errorf("%w: typeId %q is reserved", ErrInvalidCatalog, DefaultTypeID)
		}
		r.byID[c.TypeID] = c
		r.ids = append(r.ids, c.TypeID)
	}
	sort.Strings(r.ids)

	base, ok := r.byID[file.Fallback]
	if !ok {
		return nil, fmt.Errorf("%w: fallback %q is not registered", ErrInvalidCatalog, file.Fallback)
	}
	if base.Category != CategoryMelee {
		return nil, fmt.Errorf("%w: fallback %q must be %s, got %s", ErrInvalidCatalog, file.Fallback, CategoryMelee, base.Category)
	}
	r.fallback = base.clone()
	r.fallback.TypeID = DefaultTypeID

	return r, nil
}

// validate checks the raw YAML document against the embedded JSON schema.
func validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	// Round-trip through JSON so the validator sees plain JSON values.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	schema, err := compileSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, bytes.NewReader(poseSchemaJSON)); err != nil {
		return nil, fmt.Errorf("pose schema: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("pose schema: %w", err)
	}
	return s, nil
}
