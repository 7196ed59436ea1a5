// Package index maps obfuscated class paths to their parsed mapping units.
package index

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/FabricCore/yarn-wrapper-gen/filetree"
	"github.com/FabricCore/yarn-wrapper-gen/mapping"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("wrapgen.index")

var ErrDuplicateClassPath = errors.New("duplicate class path")

type DuplicateClassPathError struct {
	Path   string
	First  string
	Second string
}

func (e *DuplicateClassPathError) Error() string {
	if e.First == "" && e.Second == "" {
		return fmt.Sprintf("%v %s", ErrDuplicateClassPath, e.Path)
	}
	return fmt.Sprintf("%v %s: declared in %s and %s", ErrDuplicateClassPath, e.Path, e.First, e.Second)
}

func (e *DuplicateClassPathError) Is(target error) bool {
	return target == ErrDuplicateClassPath
}

// Index is read-only once built and safe for concurrent lookups.
type Index struct {
	classes map[string]*mapping.Class
	sorted  []*mapping.Class
}

// Build indexes classes by obfuscated path. Two classes sharing a path is an
// error.
func Build(classes []*mapping.Class) (*Index, error) {
	b := newBuilder()
	for _, c := range classes {
		if err := b.add(c, ""); err != nil {
			return nil, err
		}
	}
	return b.finish(), nil
}

// Source is the set of classes parsed from one file.
type Source struct {
	Path    string
	Classes []*mapping.Class
}

// BuildSources is Build with each class's file recorded for duplicate
// reports.
func BuildSources(sources []Source) (*Index, error) {
	b := newBuilder()
	for _, src := range sources {
		for _, c := range src.Classes {
			if err := b.add(c, src.Path); err != nil {
				return nil, err
			}
		}
	}
	return b.finish(), nil
}

// FromTree parses every unit of every file in tree and indexes the result.
func FromTree(tree filetree.Tree) (*Index, error) {
	b := newBuilder()
	for _, entry := range tree {
		classes, err := mapping.ParseUnits(entry.Text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Path(), err)
		}
		for _, c := range classes {
			if err := b.add(c, entry.Path()); err != nil {
				return nil, err
			}
		}
	}
	x := b.finish()
	log.Infof("indexed %d classes from %d files", x.Len(), len(tree))
	return x, nil
}

type builder struct {
	classes map[string]*mapping.Class
	origins map[string]string
}

func newBuilder() *builder {
	return &builder{
		classes: make(map[string]*mapping.Class),
		origins: make(map[string]string),
	}
}

func (b *builder) add(c *mapping.Class, origin string) error {
	key := c.ObfuscatedName()
	if _, ok := b.classes[key]; ok {
		return &DuplicateClassPathError{Path: key, First: b.origins[key], Second: origin}
	}
	b.classes[key] = c
	b.origins[key] = origin
	return nil
}

func (b *builder) finish() *Index {
	sorted := make([]*mapping.Class, 0, len(b.classes))
	for _, c := range b.classes {
		sorted = append(sorted, c)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ObfuscatedName() < sorted[j].ObfuscatedName()
	})
	return &Index{classes: b.classes, sorted: sorted}
}

// Get looks a class up by its obfuscated path segments.
func (x *Index) Get(path []string) *mapping.Class {
	return x.GetString(strings.Join(path, "/"))
}

// GetString looks a class up by its slash-delimited obfuscated path, the form
// used inside descriptors.
func (x *Index) GetString(path string) *mapping.Class {
	if x == nil {
		return nil
	}
	return x.classes[path]
}

// Classes returns every class ordered by obfuscated path.
func (x *Index) Classes() []*mapping.Class {
	if x == nil {
		return nil
	}
	return x.sorted
}

func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.sorted)
}
