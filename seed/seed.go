// Package seed populates a roster with demonstration data, either the fixed
// built-in sample or a YAML file.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"frontdesk-go/db"
)

// ErrInvalidSeed marks seed content that cannot be applied
var ErrInvalidSeed = errors.New("invalid seed")

// File is the YAML seed layout
type File struct {
	Teachers []Teacher `yaml:"teachers"`
	Students []Student `yaml:"students"`
}

type Teacher struct {
	Name       string `yaml:"name"`
	Speciality string `yaml:"speciality"`
}

type Student struct {
	Name        string   `yaml:"name"`
	Instruments []string `yaml:"instruments"`
}

// Sample adds the built-in demonstration roster: three teachers and three
// students, one of them enrolled in two instruments. Calling it again adds
// another copy under new IDs.
func Sample(w db.RosterWriter, logger zerolog.Logger) {
	logger.Info().Msg("generating sample data")

	w.CreateProvider("Dr. Keys", "Piano")
	w.CreateProvider("Ms. Fret", "Guitar")
	w.CreateProvider("Mr. Bow", "Violin")

	alice := register(w, "Alice Johnson", "Piano")
	w.Enroll(alice, "Violin")

	register(w, "Bob Smith", "Guitar")
	register(w, "Charlie Brown", "Drums")

	logger.Info().Int("teachers", 3).Int("students", 3).Msg("sample data generated")
}

func register(w db.RosterWriter, name, instrument string) int {
	id := w.CreateRecipient(name)
	w.Enroll(id, instrument)
	return id
}

// LoadFile reads and parses a YAML seed file
func LoadFile(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes YAML seed content. Unknown keys are rejected.
func Parse(b []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil // empty file
		}
		return File{}, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return f, nil
}

// Apply creates every teacher and student in f, in file order, and returns
// how many of each were added.
func Apply(w db.RosterWriter, f File) (teachers, students int) {
	for _, t := range f.Teachers {
		w.CreateProvider(t.Name, t.Speciality)
		teachers++
	}
	for _, s := range f.Students {
		id := w.CreateRecipient(s.Name)
		for _, instrument := range s.Instruments {
			w.Enroll(id, instrument)
		}
		students++
	}
	return teachers, students
}
