// Package filetree collects the text of every file below a directory.
package filetree

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("wrapgen.filetree")

// Entry is one file. Segments starts with the name of the scanned root
// directory and ends with the file name.
type Entry struct {
	Segments []string
	Text     string
}

func (e Entry) Path() string {
	return strings.Join(e.Segments, "/")
}

// Tree is sorted by path.
type Tree []Entry

// Scan reads every regular file below root. Hidden files and directories are
// skipped. Any unreadable file fails the whole scan.
func Scan(ctx context.Context, root string) (Tree, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(paths)

	rootName := filepath.Base(root)
	tree := make(Tree, len(paths))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			segments := append([]string{rootName}, strings.Split(filepath.ToSlash(rel), "/")...)
			tree[i] = Entry{Segments: segments, Text: string(content)}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	log.Infof("read %d files below %s", len(tree), root)
	return tree, nil
}
