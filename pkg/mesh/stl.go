package mesh

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
)

// SaveSTL writes m to path as a binary STL file.
func SaveSTL(path string, m *Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := render.SaveSTL(path, m.Triangles()); err != nil {
		return fmt.Errorf("save stl %s: %w", path, err)
	}
	return nil
}
