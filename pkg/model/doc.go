// Package model defines the typed form model the worker form is validated
// against. Builders reside in internal/model but return the types defined
// here. Validation rules expose canonical identifiers (required, min/max,
// minLength/maxLength, pattern) with string parameters so callers can map
// them onto prompts or runtime validators while keeping JSON snapshots
// deterministic. Entries under the `x-workerform` schema extension flow into
// Field metadata; `label` and `placeholder` also populate the matching Field
// attributes.
package model
