package model

import (
	"errors"
	"fmt"

	pkgopenapi "github.com/goliatone/go-workerform/pkg/openapi"
)

var (
	errComponentMissing = errors.New("model builder: component name is required")
	errNotAnObject      = errors.New("model builder: component schema must be an object")
)

func validateComponent(name string, schema pkgopenapi.Schema) error {
	if name == "" {
		return errComponentMissing
	}
	if schema.Type != "" && schema.Type != "object" {
		return errNotAnObject
	}
	if len(schema.Properties) == 0 {
		return fmt.Errorf("model builder: component %q declares no properties", name)
	}
	for property, nested := range schema.Properties {
		if err := validateSchema(nested); err != nil {
			return fmt.Errorf("model builder: property %q: %w", property, err)
		}
	}
	return nil
}

func validateSchema(schema pkgopenapi.Schema) error {
	if schema.Type == "array" && schema.Items == nil {
		return errors.New("array schema requires items")
	}
	if schema.Items != nil {
		return validateSchema(*schema.Items)
	}
	return nil
}
