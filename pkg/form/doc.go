// Package form holds the editable state of a worker form. Generate seeds a
// State from an optional existing record (or defaults), every edit re-runs the
// schema-derived validation rules, and Values returns the record that a save
// service should receive.
package form
