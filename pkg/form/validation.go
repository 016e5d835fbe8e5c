package form

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-workerform/pkg/model"
	"github.com/goliatone/go-workerform/pkg/worker"
)

type fieldRules struct {
	required bool
	minLen   *int
	maxLen   *int
	pattern  *regexp.Regexp
	items    *fieldRules
}

func collectRules(field model.Field) fieldRules {
	rules := fieldRules{required: field.Required && !field.ReadOnly}
	for _, v := range field.Validations {
		switch v.Kind {
		case model.ValidationRuleRequired:
			rules.required = !field.ReadOnly
		case model.ValidationRuleMinLength:
			if val, ok := parseInt(v.Params["value"]); ok {
				rules.minLen = &val
			}
		case model.ValidationRuleMaxLength:
			if val, ok := parseInt(v.Params["value"]); ok {
				rules.maxLen = &val
			}
		case model.ValidationRulePattern:
			if expr := v.Params["pattern"]; expr != "" {
				if re, err := regexp.Compile(expr); err == nil {
					rules.pattern = re
				}
			}
		}
	}
	if field.Items != nil {
		items := collectRules(*field.Items)
		rules.items = &items
	}
	return rules
}

func (r fieldRules) validateString(value *string) []string {
	if value == nil || strings.TrimSpace(*value) == "" {
		if r.required {
			return []string{"required"}
		}
		return nil
	}

	var problems []string
	length := utf8.RuneCountInString(*value)
	if r.minLen != nil && length < *r.minLen {
		problems = append(problems, fmt.Sprintf("min length %d", *r.minLen))
	}
	if r.maxLen != nil && length > *r.maxLen {
		problems = append(problems, fmt.Sprintf("max length %d", *r.maxLen))
	}
	if r.pattern != nil && !r.pattern.MatchString(*value) {
		problems = append(problems, "does not match required pattern")
	}
	return problems
}

func (r fieldRules) validateArray(values []string) []string {
	if len(values) == 0 {
		if r.required {
			return []string{"required"}
		}
		return nil
	}

	var problems []string
	if r.minLen != nil && len(values) < *r.minLen {
		problems = append(problems, fmt.Sprintf("min items %d", *r.minLen))
	}
	if r.maxLen != nil && len(values) > *r.maxLen {
		problems = append(problems, fmt.Sprintf("max items %d", *r.maxLen))
	}
	if r.items != nil {
		for idx := range values {
			for _, problem := range r.items.validateString(&values[idx]) {
				problems = append(problems, fmt.Sprintf("item %d: %s", idx, problem))
			}
		}
	}
	return problems
}

// nameRules returns the rules for the name field. A worker needs a name
// whatever the model says, so required is always set and model rules only
// add length and pattern checks.
func nameRules(form model.FormModel) fieldRules {
	var r fieldRules
	for _, field := range form.Fields {
		if field.Name == worker.FieldName {
			r = collectRules(field)
			break
		}
	}
	r.required = true
	return r
}

// validate evaluates the record against the rules and returns the problems
// keyed by field name. Fields without problems are absent. The name field is
// checked even when the model does not list it.
func validate(form model.FormModel, rules map[string]fieldRules, values worker.Record) map[string][]string {
	out := make(map[string][]string)
	if problems := rules[worker.FieldName].validateString(values.Name); len(problems) > 0 {
		out[worker.FieldName] = problems
	}
	for _, field := range form.Fields {
		if field.ReadOnly || field.Name == worker.FieldName {
			continue
		}
		r, ok := rules[field.Name]
		if !ok {
			continue
		}

		var problems []string
		switch field.Name {
		case worker.FieldRole:
			problems = r.validateArray(values.Role)
		}
		if len(problems) > 0 {
			out[field.Name] = problems
		}
	}
	return out
}

func parseInt(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	return val, err == nil
}
