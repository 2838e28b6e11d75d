package report

import (
	"encoding/json"
	"fmt"
	"io"
)

type jsonReport struct {
	*Report
	Summary Summary `json:"summary"`
}

// WriteJSON writes the report and its summary as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	files := r.Files
	if files == nil {
		files = []FileResult{}
	}
	out := jsonReport{Report: &Report{RunID: r.RunID, Files: files}, Summary: r.Summary()}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')

	_, err = w.Write(data)
	return err
}
