package scenario

import (
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/eaburns/link/loc"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// A Loader loads scenario files and the files they include.
type Loader struct {
	rootDir string
	files   map[string]*File
}

// NewLoader returns a new Loader that loads included files from a root directory.
func NewLoader(rootDir string) *Loader {
	return &Loader{
		rootDir: rootDir,
		files:   make(map[string]*File),
	}
}

// Load returns the scenario file at a path relative to the root directory
// and the files it includes, transitively.
func (ld *Loader) Load(path string) (*File, error) {
	return ld.load([]string{}, make(map[string]bool), path)
}

func (ld *Loader) load(path []string, onPath map[string]bool, filePath string) (*File, error) {
	path = append(path, filePath)
	defer func() { path = path[:len(path)-1] }()
	if onPath[filePath] {
		return nil, fmt.Errorf("include cycle: %v", path)
	}
	onPath[filePath] = true
	defer func() { delete(onPath, filePath) }()

	if f, ok := ld.files[filePath]; ok {
		return f, nil
	}
	fullPath := filepath.Join(ld.rootDir, filePath)
	data, err := ioutil.ReadFile(fullPath)
	if err != nil {
		return nil, err
	}
	f, err := Decode(fullPath, data)
	if err != nil {
		return nil, err
	}
	f.Path = filePath
	ld.files[filePath] = f
	for _, inc := range f.Include {
		dep, err := ld.load(path, onPath, inc)
		if err != nil {
			return nil, err
		}
		f.Deps = append(f.Deps, dep)
	}
	return f, nil
}

// Decode decodes a scenario file.
// The format is chosen by the extension of the path:
// .yaml or .yml for YAML, .toml for TOML.
func Decode(path string, data []byte) (*File, error) {
	var f *File
	var err error
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		f, err = decodeYAML(path, data)
	case ".toml":
		f, err = decodeTOML(path, data)
	default:
		return nil, fmt.Errorf("%s: unknown scenario format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	f.FullPath = path
	return f, nil
}

func decodeYAML(path string, data []byte) (*File, error) {
	src := loc.NewSource(path, string(data))
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	f := &File{src: src}
	if len(doc.Content) == 0 {
		return f, nil
	}
	if err := doc.Content[0].Decode(f); err != nil {
		return nil, err
	}
	root := doc.Content[0]
	f.pos.features = yamlOffsets(src, root, "features")
	f.pos.calls = yamlOffsets(src, root, "calls")
	return f, nil
}

// yamlOffsets returns the offsets of the items of a top-level sequence.
func yamlOffsets(src *loc.Source, root *yaml.Node, key string) []int {
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != key {
			continue
		}
		var offs []int
		for _, item := range root.Content[i+1].Content {
			offs = append(offs, offset(src, item.Line, item.Column))
		}
		return offs
	}
	return nil
}

func decodeTOML(path string, data []byte) (*File, error) {
	src := loc.NewSource(path, string(data))
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	f := &File{src: src}
	if err := tree.Unmarshal(f); err != nil {
		return nil, err
	}
	f.pos.features = tomlOffsets(src, tree, "features")
	f.pos.calls = tomlOffsets(src, tree, "calls")
	return f, nil
}

// tomlOffsets returns the offsets of the tables of a top-level array of tables.
func tomlOffsets(src *loc.Source, tree *toml.Tree, key string) []int {
	ts, ok := tree.Get(key).([]*toml.Tree)
	if !ok {
		return nil
	}
	var offs []int
	for _, t := range ts {
		p := t.Position()
		offs = append(offs, offset(src, p.Line, p.Col))
	}
	return offs
}

// offset returns the byte offset of a 1-based line and column,
// or -1 if it is out of range.
func offset(src *loc.Source, line, col int) int {
	if line <= 0 || col <= 0 {
		return -1
	}
	start := 0
	if line > 1 {
		nls := src.NewLines()
		if line-2 >= len(nls) {
			return -1
		}
		start = nls[line-2] + 1
	}
	o := start + col - 1
	if o > src.Len() {
		return -1
	}
	return o
}

// Files returns the sources of f and the files it includes, transitively,
// with included files first. Each file appears once.
func (f *File) Files() []*File {
	var files []*File
	seen := make(map[*File]bool)
	var walk func(*File)
	walk = func(f *File) {
		if seen[f] {
			return
		}
		seen[f] = true
		for _, d := range f.Deps {
			walk(d)
		}
		files = append(files, f)
	}
	walk(f)
	return files
}

// Source returns the text of the file.
func (f *File) Source() *loc.Source { return f.src }
