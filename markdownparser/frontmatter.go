package markdownparser

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
)

// parseFrontMatter decodes a leading YAML front matter block and returns the
// offset where the Markdown body starts.
func parseFrontMatter(content []byte) (map[string]any, int, error) {
	if !bytes.HasPrefix(content, []byte("---\n")) {
		return map[string]any{}, 0, nil
	}

	endIndex := bytes.Index(content[4:], []byte("\n---"))
	if endIndex == -1 {
		return nil, 0, ErrInvalidFrontMatter
	}
	endIndex += 4

	var frontMatter map[string]any

	err := yaml.Unmarshal(content[4:endIndex], &frontMatter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}
	if frontMatter == nil {
		frontMatter = map[string]any{}
	}

	// skip the closing delimiter line
	offset := endIndex + 4
	if newline := bytes.IndexByte(content[offset:], '\n'); newline >= 0 {
		offset += newline + 1
	} else {
		offset = len(content)
	}

	return frontMatter, offset, nil
}
