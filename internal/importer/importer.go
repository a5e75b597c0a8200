// Package importer loads a tap's cask manifests into the catalogue.
//
// A tap directory holds one YAML manifest per cask under Casks/:
//
//	Casks/google-chrome.yaml
//	  name: [Google Chrome]
//	  version: "120.0"
//	  homepage: https://www.google.com/chrome/
//
// The token defaults to the file's base name.
package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jpl-au/caskfind/internal/log"
	"github.com/jpl-au/caskfind/internal/progress"
	"github.com/jpl-au/caskfind/internal/service"
	"github.com/jpl-au/caskfind/internal/store"
	"github.com/jpl-au/caskfind/internal/validate"
)

// CasksDir is the manifest directory inside a tap.
const CasksDir = "Casks"

var (
	// ErrNoManifests is returned when a tap directory has no manifests.
	ErrNoManifests = errors.New("no cask manifests")
	// ErrDuplicateToken is returned when two manifests declare one token.
	ErrDuplicateToken = errors.New("duplicate cask token")
)

// Options configures an import.
type Options struct {
	DryRun  bool // Show what would be imported without importing
	Hidden  bool // Include hidden manifests
	Replace bool // Remove an existing tap of the same name first
}

// Result is the outcome of an import.
type Result struct {
	Tap      string   `json:"tap"`
	Imported int      `json:"imported"`
	Tokens   []string `json:"tokens"` // Tokens that were or would be imported
}

// Manifest is the on-disk description of a cask.
type Manifest struct {
	Token    string `yaml:"token"`
	Name     Names  `yaml:"name"`
	Version  string `yaml:"version"`
	Homepage string `yaml:"homepage"`
	Desc     string `yaml:"desc"`
}

// Names accepts either a single name or a list.
type Names []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Names) UnmarshalYAML(v *yaml.Node) error {
	if v.Kind == yaml.ScalarNode {
		*n = Names{v.Value}
		return nil
	}
	var s []string
	if err := v.Decode(&s); err != nil {
		return err
	}
	*n = s
	return nil
}

// Run registers tap from the directory src and imports its manifests.
// Every manifest is parsed and validated before anything is written; if a
// write fails the tap is removed again.
func Run(ctx context.Context, w io.Writer, svc service.Service, tap, src string, opts Options) (Result, error) {
	name, err := validate.Tap(tap)
	if err != nil {
		return Result{}, err
	}
	res := Result{Tap: name, Tokens: []string{}}

	root, err := os.OpenRoot(src)
	if err != nil {
		return res, fmt.Errorf("opening tap directory: %w", err)
	}
	defer root.Close()

	files, err := scan(root, opts.Hidden)
	if err != nil {
		return res, fmt.Errorf("scanning %s: %w", src, err)
	}
	if len(files) == 0 {
		return res, fmt.Errorf("%w in %s", ErrNoManifests, path.Join(src, CasksDir))
	}

	casks := make([]store.Cask, 0, len(files))
	seen := make(map[string]string, len(files))
	for _, rel := range files {
		m, err := readManifest(root, rel)
		if err != nil {
			return res, fmt.Errorf("%s: %w", rel, err)
		}
		c, err := m.cask(name, rel)
		if err != nil {
			return res, fmt.Errorf("%s: %w", rel, err)
		}
		if prev, ok := seen[c.Token]; ok {
			return res, fmt.Errorf("%w: %s in %s and %s", ErrDuplicateToken, c.Token, prev, rel)
		}
		seen[c.Token] = rel
		casks = append(casks, c)
		res.Tokens = append(res.Tokens, c.Token)
	}

	if opts.DryRun {
		for i, c := range casks {
			fmt.Fprintf(w, "Would import: %s -> %s/%s\n", files[i], name, c.Token)
		}
		return res, nil
	}

	abs, err := filepath.Abs(src)
	if err != nil {
		return res, err
	}
	if opts.Replace {
		if _, err := svc.RemoveTap(ctx, name); err != nil && !errors.Is(err, store.ErrTapNotFound) {
			return res, err
		}
	}
	if _, err := svc.AddTap(ctx, name, abs); err != nil {
		return res, err
	}

	prog := progress.New("Importing", len(casks))
	defer prog.Done()

	for _, c := range casks {
		if err := svc.PutCask(ctx, c); err != nil {
			if _, rerr := svc.RemoveTap(ctx, name); rerr != nil {
				log.Event("import:rollback", "tap").Target(name).Write(rerr)
			}
			return Result{Tap: name, Tokens: res.Tokens}, fmt.Errorf("importing %s: %w", c.Token, err)
		}
		res.Imported++
		prog.Step()
	}
	return res, nil
}

// cask validates m and converts it for the store. rel supplies the token
// when the manifest does not.
func (m Manifest) cask(tap, rel string) (store.Cask, error) {
	token := strings.TrimSpace(m.Token)
	if token == "" {
		base := path.Base(rel)
		token = strings.TrimSuffix(base, path.Ext(base))
	}
	if err := validate.Token(token); err != nil {
		return store.Cask{}, err
	}

	names := make([]string, 0, len(m.Name))
	for _, n := range m.Name {
		n, err := validate.Name(n)
		if err != nil {
			return store.Cask{}, err
		}
		names = append(names, n)
	}
	return store.Cask{
		Tap:      tap,
		Token:    token,
		Names:    names,
		Version:  strings.TrimSpace(m.Version),
		Homepage: strings.TrimSpace(m.Homepage),
		Desc:     strings.TrimSpace(m.Desc),
	}, nil
}

// scan lists manifest files in the Casks directory of root, sorted by name.
func scan(root *os.Root, hidden bool) ([]string, error) {
	f, err := root.Open(CasksDir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || (!hidden && strings.HasPrefix(name, ".")) {
			continue
		}
		switch strings.ToLower(path.Ext(name)) {
		case ".yaml", ".yml":
			files = append(files, path.Join(CasksDir, name))
		}
	}
	slices.Sort(files)
	return files, nil
}

// readManifest decodes one manifest. Unknown keys are rejected; an empty
// file is an empty manifest.
func readManifest(root *os.Root, rel string) (Manifest, error) {
	var m Manifest
	data, err := root.ReadFile(rel)
	if err != nil {
		return m, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return m, err
	}
	return m, nil
}
