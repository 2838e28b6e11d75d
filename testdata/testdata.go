// Package testdata embeds the acceptance test fixtures.
//
// Each directory under acceptancetests is one case named with three digits
// and a title. It holds input.js or input.md, and either expected.js /
// expected.md with the rewritten source or expected_error.txt with the name
// of the expected error kind. An optional config.yaml overrides the defaults.
package testdata

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"
)

//go:embed acceptancetests
var AcceptanceTests embed.FS

// GetFS returns the embedded filesystem
func GetFS() embed.FS {
	return AcceptanceTests
}

// Case is one acceptance test.
type Case struct {
	Name string
	// InputName is the input file name, which selects the pipeline.
	InputName     string
	Input         string
	Expected      string
	ExpectedError string
	Config        []byte
}

var caseDir = regexp.MustCompile(`^[0-9]{3}.*$`)

// AcceptanceCases loads every acceptance test case in name order.
func AcceptanceCases() ([]Case, error) {
	entries, err := fs.ReadDir(AcceptanceTests, "acceptancetests")
	if err != nil {
		return nil, fmt.Errorf("failed to read acceptancetests directory: %w", err)
	}

	var cases []Case
	for _, entry := range entries {
		if !entry.IsDir() || !caseDir.MatchString(entry.Name()) {
			continue
		}
		c, err := loadCase(path.Join("acceptancetests", entry.Name()))
		if err != nil {
			return nil, err
		}
		c.Name = entry.Name()
		cases = append(cases, c)
	}

	return cases, nil
}

func loadCase(dir string) (Case, error) {
	var c Case

	files, err := fs.ReadDir(AcceptanceTests, dir)
	if err != nil {
		return c, err
	}

	for _, file := range files {
		data, err := fs.ReadFile(AcceptanceTests, path.Join(dir, file.Name()))
		if err != nil {
			return c, err
		}

		switch name := file.Name(); {
		case strings.HasPrefix(name, "input."):
			c.InputName = name
			c.Input = string(data)
		case strings.HasPrefix(name, "expected."):
			c.Expected = string(data)
		case name == "expected_error.txt":
			c.ExpectedError = strings.TrimSpace(string(data))
		case name == "config.yaml":
			c.Config = data
		}
	}

	if c.InputName == "" {
		return c, fmt.Errorf("%s: missing input file", dir)
	}
	return c, nil
}
