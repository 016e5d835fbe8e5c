package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-workerform/pkg/form"
	"github.com/goliatone/go-workerform/pkg/model"
)

const defaultMaxAttempts = 5

// Options tunes Fill.
type Options struct {
	// Skip lists field names that are not prompted for.
	Skip []string
	// MaxAttempts bounds re-asks for an invalid field. Zero means the default.
	MaxAttempts int
}

// Fill prompts for every editable field of the form model, using the current
// value as the default, and writes each answer through the form state. An
// answer that leaves a field invalid is reported through Info and asked again.
func Fill(ctx context.Context, driver Driver, state *form.State, opts Options) error {
	if driver == nil {
		return ErrDriverRequired
	}
	if state == nil {
		return fmt.Errorf("prompt: form state is required")
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	skip := make(map[string]struct{}, len(opts.Skip))
	for _, name := range opts.Skip {
		skip[name] = struct{}{}
	}

	for _, field := range state.Model().Fields {
		if field.ReadOnly {
			continue
		}
		if _, ok := skip[field.Name]; ok {
			continue
		}
		if err := fillField(ctx, driver, state, field, attempts); err != nil {
			return err
		}
	}
	return nil
}

func fillField(ctx context.Context, driver Driver, state *form.State, field model.Field, attempts int) error {
	for attempt := 0; attempt < attempts; attempt++ {
		answer, err := ask(ctx, driver, state, field)
		if err != nil {
			return err
		}
		if err := state.Set(field.Name, answer); err != nil {
			return fmt.Errorf("prompt: %s: %w", field.Name, err)
		}
		if state.FieldValid(field.Name) {
			return nil
		}
		problems := state.Errors()[field.Name]
		if err := driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", displayLabel(field), strings.Join(problems, ", "))); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
}

func ask(ctx context.Context, driver Driver, state *form.State, field model.Field) (any, error) {
	current, _ := state.Value(field.Name)

	switch field.Type {
	case model.FieldTypeBoolean:
		def, _ := current.(bool)
		return driver.Confirm(ctx, ConfirmConfig{
			Message: displayLabel(field),
			Default: def,
			Help:    field.Description,
		})
	case model.FieldTypeArray:
		selected, _ := current.([]string)
		options := itemOptions(field, selected)
		if len(options) == 0 {
			raw, err := driver.Input(ctx, InputConfig{
				Message: displayLabel(field),
				Default: strings.Join(selected, ", "),
				Help:    helpText(field, "Comma separated"),
			})
			if err != nil {
				return nil, err
			}
			return splitList(raw), nil
		}
		indices, err := driver.MultiSelect(ctx, SelectConfig{
			Message:  displayLabel(field),
			Options:  options,
			Defaults: indicesOf(options, selected),
			Help:     field.Description,
		})
		if err != nil {
			return nil, err
		}
		return valuesAt(options, indices), nil
	default:
		def, _ := current.(string)
		answer, err := driver.Input(ctx, InputConfig{
			Message: displayLabel(field),
			Default: def,
			Help:    helpText(field, field.Placeholder),
		})
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(answer) == "" && field.Nullable {
			return nil, nil
		}
		return answer, nil
	}
}

// itemOptions merges the catalogue declared on the field items with the
// values already selected, so existing roles stay selectable.
func itemOptions(field model.Field, selected []string) []string {
	var options []string
	seen := make(map[string]struct{})
	if field.Items != nil {
		for _, value := range field.Items.Enum {
			str := fmt.Sprint(value)
			if _, ok := seen[str]; ok {
				continue
			}
			seen[str] = struct{}{}
			options = append(options, str)
		}
	}
	if len(options) == 0 {
		return nil
	}
	for _, value := range selected {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		options = append(options, value)
	}
	return options
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func helpText(field model.Field, fallback string) string {
	if field.Description != "" {
		return field.Description
	}
	return fallback
}
