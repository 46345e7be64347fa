// File-backed standard dictionary registry.
//
// A registry is a directory of <id>.json files, each a flat
// token->pattern object. It sits between the built-in table and the
// remote resolver: teams pin their shared dictionaries locally and
// only unknown ids ever reach the network. Access goes through
// os.Root so a hostile id like "../../etc/passwd" cannot escape the
// directory.
package marqant

import (
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
)

// Registry reads and writes standard dictionaries in a directory.
type Registry struct {
	root *os.Root
}

// OpenRegistry opens dir as a dictionary registry. The directory must
// exist.
func OpenRegistry(dir string) (*Registry, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	return &Registry{root: root}, nil
}

// Close releases the directory handle.
func (r *Registry) Close() error {
	return r.root.Close()
}

// Lookup loads the dictionary for id. A missing file is a miss
// (nil, nil); an unreadable or malformed file is an error.
func (r *Registry) Lookup(id string) (Dictionary, error) {
	name, err := fileName(id)
	if err != nil {
		return nil, err
	}

	f, err := r.root.Open(name)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var dict Dictionary
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("dictionary file %s: %w", name, err)
	}
	if len(dict) == 0 {
		return nil, fmt.Errorf("dictionary file %s is empty", name)
	}
	return dict, nil
}

// Put stores dict under id, replacing any existing entry.
func (r *Registry) Put(id string, dict Dictionary) error {
	name, err := fileName(id)
	if err != nil {
		return err
	}

	data, err := dict.marshalJSON()
	if err != nil {
		return err
	}

	f, err := r.root.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fileName maps an id to its registry file, rejecting ids that could
// name anything outside the directory.
func fileName(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return "", fmt.Errorf("invalid dictionary id %q", id)
	}
	return id + ".json", nil
}
