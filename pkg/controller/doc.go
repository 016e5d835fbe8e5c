// Package controller drives the worker form lifecycle: Init seeds the form
// from the record handed in by the owner, Submit validates it and hands the
// values to the save service while the loader flag is raised. Collaborators
// are injected as narrow interfaces so hosts (CLI, HTTP handlers, tests) can
// supply their own.
package controller
