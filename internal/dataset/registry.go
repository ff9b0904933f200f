// Package dataset maps dataset labels to the files they are read from.
//
// Descriptors are registered once at init time and never mutated. Lookup is
// by label, which must be unique across the registry.
package dataset

import (
	"fmt"
	"sync"
)

// Format identifies how a dataset file is encoded on disk.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatCSVGz Format = "csv.gz"
	FormatXLSX  Format = "xlsx"
)

// Descriptor describes a single dataset file.
type Descriptor struct {
	File   string `json:"file" yaml:"file"`
	Dir    string `json:"dir" yaml:"dir"`
	Label  string `json:"label" yaml:"label"`
	Format Format `json:"format" yaml:"format"`
}

var (
	registry   []Descriptor
	registryMu sync.RWMutex
)

// Register adds a descriptor to the registry.
// Panics if a dataset with the same label is already registered.
func Register(d Descriptor) {
	registryMu.Lock()
	defer registryMu.Unlock()

	for _, existing := range registry {
		if existing.Label == d.Label {
			panic(fmt.Sprintf("dataset already registered: %s", d.Label))
		}
	}
	registry = append(registry, d)
}

// Get returns the descriptor for label.
// Returns false if not found.
func Get(label string) (Descriptor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, d := range registry {
		if d.Label == label {
			return d, true
		}
	}
	return Descriptor{}, false
}

// FilePath returns the file path registered for label, or an
// *UnknownLabelError listing every valid label.
func FilePath(label string) (string, error) {
	if d, ok := Get(label); ok {
		return d.File, nil
	}
	return "", &UnknownLabelError{Label: label, Options: Labels()}
}

// All returns every registered descriptor in registration order.
func All() []Descriptor {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// Labels returns the registered labels in registration order.
func Labels() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	labels := make([]string, len(registry))
	for i, d := range registry {
		labels[i] = d.Label
	}
	return labels
}

// Count returns the number of registered datasets.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
