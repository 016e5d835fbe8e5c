// Package service provides concrete collaborators for the worker form
// controller: save services that persist a worker over HTTP or to YAML files,
// a loader that logs busy transitions, and a dialog service that writes
// messages to a stream.
package service
