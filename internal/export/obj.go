// Package export writes generated meshes to Wavefront OBJ files.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Faultbox/trackribbon/internal/engine/mesh"
)

// Object is a named mesh written as one OBJ object.
type Object struct {
	Name string
	Mesh mesh.Mesh
}

// WriteOBJ writes objects to w. Vertices carry their color as the
// "v x y z r g b" extension understood by most viewers. Triangle meshes
// become faces and line meshes become "l" elements. Indices are 1-based
// and global across objects.
func WriteOBJ(w io.Writer, header string, objects []Object) error {
	bw := bufio.NewWriter(w)

	if header != "" {
		fmt.Fprintf(bw, "# %s\n", header)
	}

	base := 1
	for _, o := range objects {
		m := o.Mesh
		if err := m.Validate(); err != nil {
			return fmt.Errorf("object %q: %w", o.Name, err)
		}

		fmt.Fprintf(bw, "o %s\n", o.Name)
		for i := 0; i < m.VertexCount(); i++ {
			p, c := m.Position(i), m.Color(i)
			fmt.Fprintf(bw, "v %s %s %s %s %s %s\n",
				ftoa(p.X), ftoa(p.Y), ftoa(p.Z),
				ftoa(c.X), ftoa(c.Y), ftoa(c.Z))
		}

		per := m.Mode.IndicesPerPrimitive()
		prefix := "f"
		if m.Mode == mesh.Lines {
			prefix = "l"
		}
		for i := 0; i < len(m.Indices); i += per {
			bw.WriteString(prefix)
			for _, idx := range m.Indices[i : i+per] {
				bw.WriteByte(' ')
				bw.WriteString(strconv.Itoa(base + int(idx)))
			}
			bw.WriteByte('\n')
		}

		base += m.VertexCount()
	}

	return bw.Flush()
}

// SaveOBJ writes objects to the file at path.
func SaveOBJ(path, header string, objects []Object) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteOBJ(f, header, objects); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
