// Package templates loads and renders the Mustache views of the device web UI.
package templates

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/spf13/afero"
)

var (
	// ErrTemplateNotFound is returned when a view file does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrPartialNotFound is returned when a partial referenced by a view
	// does not exist.
	ErrPartialNotFound = errors.New("partial not found")
)

// Ext is the file extension of every view and partial.
const Ext = ".mst"

// specialPartials maps partial names that do not live in the generic
// partials directory to their path below the language directory.
var specialPartials = map[string]string{
	"mqttTextField": "views/mqtt/_text_field" + Ext,
}

// Store reads template text from a frontend tree:
//
//	<lang>/views/<name>.mst
//	<lang>/partials/<name>.mst
//	statics/<file>
//
// Nothing is cached; every call goes to the filesystem.
type Store struct {
	fs   afero.Fs
	lang string
}

// NewStore returns a Store reading from fs, which should be rooted at the
// frontend directory.
func NewStore(fs afero.Fs, lang string) *Store {
	return &Store{fs: fs, lang: lang}
}

// NewOsStore returns a Store rooted at dir on the local disk.
func NewOsStore(dir, lang string) *Store {
	return NewStore(afero.NewBasePathFs(afero.NewOsFs(), dir), lang)
}

// ViewPath returns the path of the named view.
func (s *Store) ViewPath(name string) string {
	return path.Join(s.lang, "views", name+Ext)
}

// PartialPath returns the path of the named partial. Names in the
// exception table win over the generic partials directory.
func (s *Store) PartialPath(name string) string {
	if p, ok := specialPartials[name]; ok {
		return path.Join(s.lang, p)
	}
	return path.Join(s.lang, "partials", name+Ext)
}

// StaticPath returns the path of a file in the statics directory.
func (s *Store) StaticPath(name string) string {
	return path.Join("statics", name)
}

// View reads the named view.
func (s *Store) View(name string) (string, error) {
	p := s.ViewPath(name)
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("view %q (%s): %w", name, p, ErrTemplateNotFound)
		}
		return "", fmt.Errorf("read view %q: %w", name, err)
	}
	return string(data), nil
}

// Partial reads the named partial.
func (s *Store) Partial(name string) (string, error) {
	p := s.PartialPath(name)
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("partial %q (%s): %w", name, p, ErrPartialNotFound)
		}
		return "", fmt.Errorf("read partial %q: %w", name, err)
	}
	return string(data), nil
}

// Static reads a file from the statics directory unmodified.
func (s *Store) Static(name string) ([]byte, error) {
	return afero.ReadFile(s.fs, s.StaticPath(name))
}
