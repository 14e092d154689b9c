package store

import "fmt"

// DefaultPath is where the collection lives unless configured otherwise.
const DefaultPath = "./data/db.json"

// Backend names accepted by OpenMedium.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Medium is the persistent home of the collection. It only supports
// whole-collection reads and replacements.
type Medium interface {
	// Read returns the full persisted collection in insertion order.
	Read() ([]Person, error)
	// Write replaces the persisted collection with people.
	Write(people []Person) error
	// Init creates an empty collection if the medium holds none.
	Init() error
	Close() error
}

// OpenMedium opens the medium for backend at path.
func OpenMedium(backend, path string) (Medium, error) {
	switch backend {
	case BackendJSON, "":
		return NewJSONFile(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
