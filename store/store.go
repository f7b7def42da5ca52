// Package store writes fetched basis sets to disk, one file per requested
// output format.
package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/qbanex/basq/basis"
	"github.com/qbanex/basq/errors"
	"github.com/qbanex/basq/logger"
	"github.com/qbanex/basq/render"
)

// Result describes one attempted file write.
type Result struct {
	Path    string
	Format  render.FormatTag
	Skipped bool // the file existed already and was left untouched
}

// Filename returns the file name for a set rendered in the given format:
// the set name lower-cased, path separators turned into "I" and spaces into
// underscores, plus the format's extension.
func Filename(setName string, tag render.FormatTag) (string, error) {
	ext, err := render.Extension(tag)
	if err != nil {
		return "", err
	}
	name := strings.ToLower(setName)
	name = strings.ReplaceAll(name, "/", "I")
	name = strings.ReplaceAll(name, " ", "_")
	return name + "." + ext, nil
}

// Write renders the set in every requested format under dir, creating the
// directory if needed. All formats are resolved against the registry before
// anything touches the filesystem. A file that already exists is skipped
// with a warning, never rewritten; the returned results cover every format,
// written or skipped.
func Write(dir string, set *basis.Set, tags []render.FormatTag) ([]Result, error) {
	renderers := make([]render.Renderer, len(tags))
	for i, tag := range tags {
		r, err := render.Lookup(tag)
		if err != nil {
			return nil, err
		}
		renderers[i] = r
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", dir)
	}

	results := make([]Result, 0, len(tags))
	for i, tag := range tags {
		text, err := renderers[i].Render(set)
		if err != nil {
			return results, errors.Wrapf(err, "rendering %q as %s", set.Name, tag)
		}

		name, err := Filename(set.Name, tag)
		if err != nil {
			return results, err
		}
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if os.IsExist(err) {
			logger.Warnw("skipping existing file", "path", path)
			results = append(results, Result{Path: path, Format: tag, Skipped: true})
			continue
		}
		if err != nil {
			return results, errors.Wrapf(err, "creating %s", path)
		}

		_, werr := f.WriteString(text)
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			return results, errors.Wrapf(werr, "writing %s", path)
		}
		results = append(results, Result{Path: path, Format: tag})
	}
	return results, nil
}
