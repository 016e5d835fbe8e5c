package worker

// Record is the worker entity edited by the form. Name stays nil until a value
// is supplied so the serialised payload keeps the `null` the backend expects.
type Record struct {
	ID     string   `json:"id" yaml:"id"`
	Name   *string  `json:"name" yaml:"name"`
	Role   []string `json:"role" yaml:"role"`
	Active bool     `json:"active" yaml:"active"`
}

// Field names as they appear in payloads and form models.
const (
	FieldID     = "id"
	FieldName   = "name"
	FieldRole   = "role"
	FieldActive = "active"
)

// Clone returns a deep copy of the record. Role is always non-nil in the copy.
func (r Record) Clone() Record {
	out := Record{
		ID:     r.ID,
		Active: r.Active,
		Role:   make([]string, len(r.Role)),
	}
	copy(out.Role, r.Role)
	if r.Name != nil {
		name := *r.Name
		out.Name = &name
	}
	return out
}

// DisplayName returns the name or an empty string when unset.
func (r Record) DisplayName() string {
	if r.Name == nil {
		return ""
	}
	return *r.Name
}

// HasRole reports whether role is assigned to the record.
func (r Record) HasRole(role string) bool {
	for _, assigned := range r.Role {
		if assigned == role {
			return true
		}
	}
	return false
}

// StringPtr is a small helper for building records in literals.
func StringPtr(value string) *string {
	return &value
}
