// Package schemas embeds the JSON Schemas that guard every inbound payload:
// catalog records and neighborhood profiles are validated before the core
// ever sees them.
package schemas

import (
	"embed"
	"log"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed *.json
var schemaFS embed.FS

var (
	// Property validates a single catalog record.
	Property = mustCompile("property.schema.json")
	// Neighborhood validates a single district profile.
	Neighborhood = mustCompile("neighborhood.schema.json")
)

func mustCompile(name string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	f, err := schemaFS.Open(name)
	if err != nil {
		log.Fatalf("open embedded schema %s: %v", name, err)
	}
	defer f.Close()
	if err := compiler.AddResource(name, f); err != nil {
		log.Fatalf("add schema resource %s: %v", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		log.Fatalf("compile schema %s: %v", name, err)
	}
	return schema
}
