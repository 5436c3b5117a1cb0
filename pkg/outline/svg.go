package outline

import (
	"bytes"
	"fmt"

	"github.com/JoshVarga/svgparser"
)

// SelectPath returns the d attribute of a <path> element in an SVG document.
// With an empty id the first path in document order is used.
func SelectPath(doc []byte, id string) (string, error) {
	root, err := svgparser.Parse(bytes.NewReader(doc), false)
	if err != nil {
		return "", fmt.Errorf("parse svg document: %w", err)
	}

	var paths []*svgparser.Element
	if root.Name == "path" {
		paths = append(paths, root)
	}
	paths = append(paths, root.FindAll("path")...)

	for _, el := range paths {
		if id == "" || el.Attributes["id"] == id {
			return el.Attributes["d"], nil
		}
	}
	if id == "" {
		return "", ErrPathNotFound
	}
	return "", fmt.Errorf("path id %q: %w", id, ErrPathNotFound)
}
