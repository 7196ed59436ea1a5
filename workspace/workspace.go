// Package workspace holds a mutable set of mapping files and keeps a class
// index over the ones that parse.
package workspace

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/FabricCore/yarn-wrapper-gen/filetree"
	"github.com/FabricCore/yarn-wrapper-gen/index"
	"github.com/FabricCore/yarn-wrapper-gen/mapping"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("wrapgen.workspace")

// Ext is the extension ScanAll picks up.
const Ext = ".mapping"

type Workspace struct {
	mu       sync.RWMutex
	rootDir  string
	files    map[string]*File
	index    *index.Index
	indexErr error
}

type File struct {
	Path     string
	Content  string
	Classes  []*mapping.Class
	ParseErr error
}

func New(rootDir string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		files:   make(map[string]*File),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// ScanAll replaces the file set with every mapping file below the root
// directory.
func (w *Workspace) ScanAll(ctx context.Context) error {
	tree, err := filetree.Scan(ctx, w.rootDir)
	if err != nil {
		return err
	}
	parent := filepath.Dir(filepath.Clean(w.rootDir))

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files = make(map[string]*File, len(tree))
	for _, entry := range tree {
		if filepath.Ext(entry.Path()) != Ext {
			continue
		}
		path := filepath.Join(append([]string{parent}, entry.Segments...)...)
		w.files[path] = parseFile(path, entry.Text)
	}
	w.rebuildIndexLocked()
	return nil
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, string(content))
	return nil
}

// UpdateFile reparses one file and rebuilds the index. It returns the new
// state of the file.
func (w *Workspace) UpdateFile(path, content string) *File {
	f := parseFile(path, content)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = f
	w.rebuildIndexLocked()
	return f
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.files[path]; !ok {
		return
	}
	delete(w.files, path)
	w.rebuildIndexLocked()
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns every known file ordered by path.
func (w *Workspace) Files() []*File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	files := make([]*File, 0, len(w.files))
	for _, f := range w.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// Index returns the index over all files that parse. When two files declare
// the same class the previous index is kept and the conflict is returned.
func (w *Workspace) Index() (*index.Index, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.index, w.indexErr
}

// ClassPaths returns the indexed obfuscated paths starting with prefix.
func (w *Workspace) ClassPaths(prefix string) []string {
	x, _ := w.Index()
	var paths []string
	for _, c := range x.Classes() {
		if name := c.ObfuscatedName(); strings.HasPrefix(name, prefix) {
			paths = append(paths, name)
		}
	}
	return paths
}

func (w *Workspace) rebuildIndexLocked() {
	sources := make([]index.Source, 0, len(w.files))
	for _, f := range w.files {
		if f.ParseErr == nil {
			sources = append(sources, index.Source{Path: f.Path, Classes: f.Classes})
		}
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })

	x, err := index.BuildSources(sources)
	w.indexErr = err
	if err != nil {
		log.Warningf("keeping previous index: %s", err)
		return
	}
	w.index = x
	log.Debugf("indexed %d classes from %d files", x.Len(), len(sources))
}

func parseFile(path, content string) *File {
	classes, err := mapping.ParseUnits(content)
	if err != nil {
		log.Debugf("%s: %s", path, err)
	}
	return &File{Path: path, Content: content, Classes: classes, ParseErr: err}
}
