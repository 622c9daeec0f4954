// Package seed loads and validates the two external JSON payloads
// consumed on first bootstrap: the product list and the settings object.
//
// Payloads are checked against an embedded CUE schema before decoding.
// Validation failures carry the offending path, so a malformed seed file
// fails loudly at bootstrap instead of surfacing later as odd pricing.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/quayside/storefront/internal/schema"
)

//go:embed seed.cue
var schemaCUE string

//go:embed data/products.json
var defaultProductsJSON []byte

//go:embed data/settings.json
var defaultSettingsJSON []byte

// Products validates and decodes a seed product list.
func Products(data []byte) ([]schema.Product, error) {
	v, err := validated("products.json", data, "#Products")
	if err != nil {
		return nil, fmt.Errorf("seed products: %w", err)
	}

	var out []schema.Product
	if err := v.Decode(&out); err != nil {
		return nil, fmt.Errorf("seed products: decode: %w", err)
	}
	return out, nil
}

// Settings validates and decodes a seed settings object.
func Settings(data []byte) (schema.Settings, error) {
	v, err := validated("settings.json", data, "#Settings")
	if err != nil {
		return schema.Settings{}, fmt.Errorf("seed settings: %w", err)
	}

	var out schema.Settings
	if err := v.Decode(&out); err != nil {
		return schema.Settings{}, fmt.Errorf("seed settings: decode: %w", err)
	}
	return out, nil
}

// ProductsFile reads and validates a seed product list from disk.
func ProductsFile(path string) ([]schema.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed products: %w", err)
	}
	return Products(data)
}

// SettingsFile reads and validates a seed settings object from disk.
func SettingsFile(path string) (schema.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Settings{}, fmt.Errorf("seed settings: %w", err)
	}
	return Settings(data)
}

// Default returns the embedded seed data used when no seed files are
// supplied at bootstrap.
func Default() ([]schema.Product, schema.Settings, error) {
	products, err := Products(defaultProductsJSON)
	if err != nil {
		return nil, schema.Settings{}, err
	}
	settings, err := Settings(defaultSettingsJSON)
	if err != nil {
		return nil, schema.Settings{}, err
	}
	return products, settings, nil
}

// validated parses JSON data, unifies it with the named schema
// definition, and checks the result is concrete and consistent.
func validated(filename string, data []byte, definition string) (cue.Value, error) {
	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(schemaCUE, cue.Filename("seed.cue"))
	if err := schemaVal.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile schema: %w", err)
	}
	def := schemaVal.LookupPath(cue.ParsePath(definition))
	if err := def.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("lookup %s: %w", definition, err)
	}

	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return cue.Value{}, fmt.Errorf("parse json: %w", err)
	}

	unified := def.Unify(ctx.BuildExpr(expr))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cue.Value{}, fmt.Errorf("validate: %w", err)
	}
	return unified, nil
}
