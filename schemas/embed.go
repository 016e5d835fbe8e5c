// Package schemas embeds the canonical Worker OpenAPI document.
package schemas

import "embed"

// WorkerDocument is the name of the embedded Worker document inside FS.
const WorkerDocument = "worker.yaml"

// WorkerComponent is the component schema describing the worker record.
const WorkerComponent = "Worker"

//go:embed worker.yaml
var FS embed.FS
