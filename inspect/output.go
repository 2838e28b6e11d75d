package inspect

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned by Marshal for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Marshal renders res as json, yaml or csv.
func Marshal(res InspectResult, format string) ([]byte, error) {
	switch format {
	case "", "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(res)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return data, nil
	case "csv":
		return NodesCSV(res, true)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
