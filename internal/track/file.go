package track

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/trackribbon/pkg/math"
)

// fileTrack is the YAML layout of a track file:
//
//	name: test loop
//	points:
//	  - position: [0, 0, 0]
//	    forward: [0, 0, 10]
//	  - position: [-10, 20, 20]
//	    forward: [-10, 0, 0]
//	    up: [0, 1, -0.5]
//
// Colors are not stored; they are assigned in file order on load.
type fileTrack struct {
	Name   string      `yaml:"name,omitempty"`
	Points []filePoint `yaml:"points"`
}

type filePoint struct {
	Position [3]float32  `yaml:"position,flow"`
	Forward  [3]float32  `yaml:"forward,flow"`
	Up       *[3]float32 `yaml:"up,omitempty,flow"`
}

// Load reads a track file.
func Load(path string) (Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Track{}, err
	}
	t, err := Parse(data)
	if err != nil {
		return Track{}, fmt.Errorf("loading track from %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a YAML track document. Points get DefaultPalette colors in
// order; points without up use WorldUp. Values such as .nan or .inf are
// rejected with ErrNonFinite.
func Parse(data []byte) (Track, error) {
	var ft fileTrack
	if err := yaml.Unmarshal(data, &ft); err != nil {
		return Track{}, err
	}

	b := NewBuilder()
	for i, fp := range ft.Points {
		up := WorldUp
		if fp.Up != nil {
			up = vec(*fp.Up)
		}
		p := b.AddWithUp(vec(fp.Position), vec(fp.Forward), up)
		if err := p.Check(); err != nil {
			return Track{}, fmt.Errorf("point %d: %w", i, err)
		}
	}

	t := b.Track()
	t.Name = ft.Name
	return t, nil
}

// Marshal encodes the track as a YAML document readable by Parse.
// Up vectors equal to WorldUp are omitted.
func (t Track) Marshal() ([]byte, error) {
	ft := fileTrack{
		Name:   t.Name,
		Points: make([]filePoint, len(t.Points)),
	}
	for i, p := range t.Points {
		fp := filePoint{
			Position: p.Position.Array(),
			Forward:  p.Forward.Array(),
		}
		if p.Up != WorldUp {
			up := p.Up.Array()
			fp.Up = &up
		}
		ft.Points[i] = fp
	}
	return yaml.Marshal(&ft)
}

// Save writes the track to path.
func (t Track) Save(path string) error {
	data, err := t.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
