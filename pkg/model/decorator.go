package model

import "fmt"

// Decorator enriches a form model after the schema-derived structure has been
// built, e.g. to attach a role catalogue loaded from configuration.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Decorate applies decorators in order, stopping at the first failure.
func Decorate(form *FormModel, decorators ...Decorator) error {
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return err
		}
	}
	return nil
}

// ItemOptions returns a decorator that sets the allowed values for the items
// of an array field. Prompts render such fields as multi-selects.
func ItemOptions(field string, options []string) Decorator {
	return DecoratorFunc(func(form *FormModel) error {
		if len(options) == 0 {
			return nil
		}
		for idx := range form.Fields {
			target := &form.Fields[idx]
			if target.Name != field {
				continue
			}
			if target.Type != FieldTypeArray || target.Items == nil {
				return fmt.Errorf("model: field %q is not an array", field)
			}
			enum := make([]any, 0, len(options))
			for _, option := range options {
				enum = append(enum, option)
			}
			target.Items.Enum = enum
			return nil
		}
		return fmt.Errorf("model: field %q not found", field)
	})
}
