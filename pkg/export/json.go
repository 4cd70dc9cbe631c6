package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lucasem/list-routines/pkg/engine"
)

// ExportJSON serializes a dataset to pretty-printed JSON.
func ExportJSON(ds *engine.Dataset) ([]byte, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset cannot be nil")
	}
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling dataset: %w", err)
	}
	return append(data, '\n'), nil
}

// SaveJSONToFile writes the dataset JSON to the given path.
func SaveJSONToFile(ds *engine.Dataset, path string) error {
	data, err := ExportJSON(ds)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
