package site

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docsite-commonmark/internal/foundation/errors"
)

var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdown":    true,
	".mkdn":     true,
	".mkd":      true,
}

// File is one file below docs_dir and where it ends up in the built site.
type File struct {
	// SrcPath is slash separated and relative to docs_dir.
	SrcPath    string
	AbsSrcPath string
	// DestPath is slash separated and relative to site_dir.
	DestPath string
	// URL is the site-relative URL of the file ("./" for the home page with
	// directory URLs).
	URL string
}

// IsDocumentation reports whether the file is a Markdown page.
func (f *File) IsDocumentation() bool {
	return markdownExtensions[strings.ToLower(path.Ext(f.SrcPath))]
}

// IsIndex reports whether the page is a directory index.
func (f *File) IsIndex() bool {
	return path.Base(f.DestPath) == "index.html"
}

// URLRelativeTo returns f's URL relative to the page other.
func (f *File) URLRelativeTo(other *File) string {
	return RelativeURL(f.URL, other.URL)
}

// NewFile computes destination and URL for a source path relative to docsDir.
func NewFile(srcPath, docsDir string, useDirectoryURLs bool) *File {
	src := filepath.ToSlash(srcPath)
	f := &File{
		SrcPath:    src,
		AbsSrcPath: filepath.Join(docsDir, filepath.FromSlash(src)),
	}
	if !f.IsDocumentation() {
		f.DestPath = src
		f.URL = src
		return f
	}

	dir, name := path.Split(src)
	stem := strings.TrimSuffix(name, path.Ext(name))
	isIndex := stem == "index" || strings.EqualFold(stem, "readme")

	switch {
	case isIndex:
		f.DestPath = dir + "index.html"
	case useDirectoryURLs:
		f.DestPath = dir + stem + "/index.html"
	default:
		f.DestPath = dir + stem + ".html"
	}

	f.URL = f.DestPath
	if useDirectoryURLs && f.IsIndex() {
		f.URL = strings.TrimSuffix(f.DestPath, "index.html")
		if f.URL == "" {
			f.URL = "./"
		}
	}
	return f
}

// Files is the set of all files of a site.
type Files struct {
	files []*File
	bySrc map[string]*File
}

// NewFiles indexes files by source path. Later duplicates replace earlier ones.
func NewFiles(files []*File) *Files {
	set := &Files{bySrc: make(map[string]*File, len(files))}
	for _, f := range files {
		if _, dup := set.bySrc[f.SrcPath]; !dup {
			set.files = append(set.files, f)
		}
		set.bySrc[f.SrcPath] = f
	}
	return set
}

// Get returns the file with the given source path.
func (s *Files) Get(srcPath string) *File {
	if s == nil {
		return nil
	}
	return s.bySrc[srcPath]
}

// All returns every file in discovery order.
func (s *Files) All() []*File {
	if s == nil {
		return nil
	}
	return s.files
}

// Documentation returns the Markdown pages.
func (s *Files) Documentation() []*File {
	var out []*File
	for _, f := range s.All() {
		if f.IsDocumentation() {
			out = append(out, f)
		}
	}
	return out
}

// Static returns everything that is copied as-is.
func (s *Files) Static() []*File {
	var out []*File
	for _, f := range s.All() {
		if !f.IsDocumentation() {
			out = append(out, f)
		}
	}
	return out
}

// Len returns the number of files.
func (s *Files) Len() int {
	return len(s.All())
}

// Discover walks docsDir. Hidden files and directories are skipped. When a
// directory has both index.md and README.md, README.md is dropped.
func Discover(docsDir string, useDirectoryURLs bool) (*Files, error) {
	var found []*File
	err := filepath.WalkDir(docsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != docsDir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(docsDir, p)
		if err != nil {
			return err
		}
		found = append(found, NewFile(rel, docsDir, useDirectoryURLs))
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to discover docs").
			WithContext("docs_dir", docsDir).
			Build()
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].SrcPath < found[j].SrcPath
	})
	return NewFiles(dropShadowedReadmes(found)), nil
}

func dropShadowedReadmes(files []*File) []*File {
	hasIndex := make(map[string]bool)
	for _, f := range files {
		if f.IsDocumentation() && strings.HasPrefix(path.Base(f.SrcPath), "index.") {
			hasIndex[path.Dir(f.SrcPath)] = true
		}
	}
	out := files[:0]
	for _, f := range files {
		base := strings.ToLower(path.Base(f.SrcPath))
		if f.IsDocumentation() && strings.HasPrefix(base, "readme.") && hasIndex[path.Dir(f.SrcPath)] {
			continue
		}
		out = append(out, f)
	}
	return out
}
