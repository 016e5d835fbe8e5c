package form

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-workerform/pkg/model"
	"github.com/goliatone/go-workerform/pkg/worker"
)

var (
	// ErrUnknownField is returned by Set for names the form does not manage.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrReadOnlyField is returned by Set for fields that cannot be edited.
	ErrReadOnlyField = errors.New("form: field is read-only")
	// ErrFieldType is returned by Set when the value has the wrong type.
	ErrFieldType = errors.New("form: unsupported value type")
)

// State is the editable worker form. It is not safe for concurrent use; the
// owning controller serialises access.
type State struct {
	model    model.FormModel
	rules    map[string]fieldRules
	sanitize Sanitizer

	values       worker.Record
	fieldErrors  map[string][]string
	serverErrors map[string][]string
	formErrors   []string
}

// Generate builds a State. A non-nil existing record seeds every field
// verbatim, only filling an empty id and a nil role slice. Values() then
// reports an empty, non-nil Role for a record whose Role was nil, so it is
// not reflect.DeepEqual to that record. Without a record the defaults are a
// fresh id, no name, no roles and active.
//
// The name field is always required, whatever model is in use; model rules
// add to it.
func Generate(existing *worker.Record, opts ...Option) *State {
	cfg := resolveOptions(opts)

	var values worker.Record
	if existing != nil {
		values = existing.Clone()
	} else {
		values = worker.Record{
			Name:   nil,
			Role:   []string{},
			Active: true,
		}
	}
	if values.ID == "" {
		values.ID = cfg.ids.NewID()
	}

	s := &State{
		model:    *cfg.model,
		rules:    make(map[string]fieldRules, len(cfg.model.Fields)),
		sanitize: cfg.sanitizer,
		values:   values,
	}
	for _, field := range s.model.Fields {
		s.rules[field.Name] = collectRules(field)
	}
	s.rules[worker.FieldName] = nameRules(s.model)
	s.revalidate()
	return s
}

// Values returns a copy of the current field values.
func (s *State) Values() worker.Record {
	return s.values.Clone()
}

// Model returns a copy of the form model the state validates against.
func (s *State) Model() model.FormModel {
	return model.Clone(s.model)
}

// Valid reports whether every required-field rule passes.
func (s *State) Valid() bool {
	return len(s.fieldErrors) == 0
}

// FieldValid reports whether the named field passes its rules.
func (s *State) FieldValid(name string) bool {
	_, failing := s.fieldErrors[name]
	return !failing
}

// Errors returns the validation problems keyed by field name.
func (s *State) Errors() map[string][]string {
	return cloneErrors(s.fieldErrors)
}

// Invalid lists the failing fields in alphabetical order.
func (s *State) Invalid() []string {
	if len(s.fieldErrors) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.fieldErrors))
	for name := range s.fieldErrors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetName assigns the worker name.
func (s *State) SetName(name string) {
	clean := s.sanitize.Sanitize(name)
	s.values.Name = &clean
	s.changed(worker.FieldName)
}

// ClearName resets the name to absent.
func (s *State) ClearName() {
	s.values.Name = nil
	s.changed(worker.FieldName)
}

// SetRoles replaces the assigned roles. Blank entries are dropped.
func (s *State) SetRoles(roles []string) {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		clean := s.sanitize.Sanitize(role)
		if strings.TrimSpace(clean) == "" {
			continue
		}
		out = append(out, clean)
	}
	s.values.Role = out
	s.changed(worker.FieldRole)
}

// AddRole appends role unless it is already assigned or blank.
func (s *State) AddRole(role string) {
	clean := s.sanitize.Sanitize(role)
	if strings.TrimSpace(clean) == "" || s.values.HasRole(clean) {
		return
	}
	s.values.Role = append(s.values.Role, clean)
	s.changed(worker.FieldRole)
}

// RemoveRole drops every occurrence of role.
func (s *State) RemoveRole(role string) {
	out := s.values.Role[:0:0]
	for _, assigned := range s.values.Role {
		if assigned != role {
			out = append(out, assigned)
		}
	}
	s.values.Role = out
	s.changed(worker.FieldRole)
}

// SetActive toggles the active flag.
func (s *State) SetActive(active bool) {
	s.values.Active = active
	s.changed(worker.FieldActive)
}

// Value returns the current value of a field as it appears in payloads.
func (s *State) Value(field string) (any, bool) {
	switch field {
	case worker.FieldID:
		return s.values.ID, true
	case worker.FieldName:
		if s.values.Name == nil {
			return nil, true
		}
		return *s.values.Name, true
	case worker.FieldRole:
		return append([]string{}, s.values.Role...), true
	case worker.FieldActive:
		return s.values.Active, true
	default:
		return nil, false
	}
}

// Set assigns a field from a loosely typed value, as produced by prompts,
// query strings, or decoded payloads.
func (s *State) Set(field string, value any) error {
	switch field {
	case worker.FieldID:
		return fmt.Errorf("%w: %s", ErrReadOnlyField, field)
	case worker.FieldName:
		switch typed := value.(type) {
		case nil:
			s.ClearName()
		case string:
			s.SetName(typed)
		case *string:
			if typed == nil {
				s.ClearName()
			} else {
				s.SetName(*typed)
			}
		default:
			return fmt.Errorf("%w: %s expects a string, got %T", ErrFieldType, field, value)
		}
	case worker.FieldRole:
		roles, err := toStrings(value)
		if err != nil {
			return fmt.Errorf("%w: %s %v", ErrFieldType, field, err)
		}
		s.SetRoles(roles)
	case worker.FieldActive:
		switch typed := value.(type) {
		case bool:
			s.SetActive(typed)
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
			if err != nil {
				return fmt.Errorf("%w: %s expects a boolean, got %q", ErrFieldType, field, typed)
			}
			s.SetActive(parsed)
		default:
			return fmt.Errorf("%w: %s expects a boolean, got %T", ErrFieldType, field, value)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// ApplyServerErrors records errors reported by the save service. Messages for
// known fields are kept until that field is edited; the rest become form-level
// errors. Server errors never change Valid.
func (s *State) ApplyServerErrors(payload map[string][]string) ErrorMapping {
	mapping := MapErrorPayload(s.model, payload)
	s.serverErrors = cloneErrors(mapping.Fields)
	s.formErrors = append([]string(nil), mapping.Form...)
	return mapping
}

// ServerErrors returns the field errors reported by the save service.
func (s *State) ServerErrors() map[string][]string {
	return cloneErrors(s.serverErrors)
}

// FormErrors returns the form-level errors reported by the save service.
func (s *State) FormErrors() []string {
	return append([]string(nil), s.formErrors...)
}

func (s *State) changed(field string) {
	delete(s.serverErrors, field)
	s.revalidate()
}

func (s *State) revalidate() {
	s.fieldErrors = validate(s.model, s.rules, s.values)
}

func toStrings(value any) ([]string, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return typed, nil
	case string:
		return []string{typed}, nil
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expects strings, got %T", item)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expects a list of strings, got %T", value)
	}
}

func cloneErrors(src map[string][]string) map[string][]string {
	if len(src) == 0 {
		return map[string][]string{}
	}
	out := make(map[string][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}
	return out
}
