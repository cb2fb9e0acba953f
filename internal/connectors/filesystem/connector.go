// Package filesystem discovers documentation files in a local directory.
//
// Every top-level file is its own source, named after the file. Every
// top-level directory is one source, named after the directory, whose
// files are read recursively in lexical path order. Hidden files and
// directories are ignored.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
	"github.com/custodia-labs/manuals/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.DocumentSource = (*Connector)(nil)

// extMIMETypes maps extensions the extractors care about.
var extMIMETypes = map[string]string{
	".pdf":      domain.MIMETypePDF,
	".html":     domain.MIMETypeHTML,
	".htm":      domain.MIMETypeHTML,
	".xhtml":    "application/xhtml+xml",
	".md":       domain.MIMETypeMarkdown,
	".markdown": domain.MIMETypeMarkdown,
	".txt":      domain.MIMETypePlainText,
	".text":     domain.MIMETypePlainText,
	".rst":      "text/x-rst",
	".py":       "text/x-python",
	".log":      "text/x-log",
}

// Connector reads documentation from a directory tree.
type Connector struct {
	rootPath string
	accept   map[string]bool
}

// Option configures the connector.
type Option func(*Connector)

// WithMIMETypes restricts discovery to files of the given MIME types.
// Without it every regular file is returned.
func WithMIMETypes(types []string) Option {
	return func(c *Connector) {
		c.accept = make(map[string]bool, len(types))
		for _, t := range types {
			c.accept[t] = true
		}
	}
}

// New creates a connector rooted at rootPath.
func New(rootPath string, opts ...Option) *Connector {
	c := &Connector{rootPath: rootPath}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Root returns the documentation directory.
func (c *Connector) Root() string {
	return c.rootPath
}

// Discover lists and reads every documentation file. Files or directories
// that cannot be read are returned as skipped units. An error means the
// root itself is unreadable.
func (c *Connector) Discover(ctx context.Context) ([]domain.RawDocument, []domain.SkippedUnit, error) {
	entries, err := os.ReadDir(c.rootPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w: %w", c.rootPath, domain.ErrSourceUnreadable, err)
	}

	var (
		docs    []domain.RawDocument
		skipped []domain.SkippedUnit
	)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if isHidden(entry.Name()) {
			continue
		}

		path := filepath.Join(c.rootPath, entry.Name())
		if entry.IsDir() {
			d, s, err := c.walkSource(ctx, entry.Name(), path)
			if err != nil {
				return nil, nil, err
			}
			docs = append(docs, d...)
			skipped = append(skipped, s...)
			continue
		}
		if !entry.Type().IsRegular() || !c.accepts(path) {
			continue
		}

		doc, err := readDocument(entry.Name(), path)
		if err != nil {
			skipped = append(skipped, skip(entry.Name(), path, err))
			continue
		}
		docs = append(docs, doc)
	}

	logger.Debug("Discovered %d files under %s (%d unreadable)", len(docs), c.rootPath, len(skipped))
	return docs, skipped, nil
}

// walkSource reads every accepted file beneath dir as part of one source.
func (c *Connector) walkSource(ctx context.Context, sourceID, dir string) ([]domain.RawDocument, []domain.SkippedUnit, error) {
	var (
		docs    []domain.RawDocument
		skipped []domain.SkippedUnit
	)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			skipped = append(skipped, skip(sourceID, path, walkErr))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() || !c.accepts(path) {
			return nil
		}

		doc, err := readDocument(sourceID, path)
		if err != nil {
			skipped = append(skipped, skip(sourceID, path, err))
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return docs, skipped, nil
}

func (c *Connector) accepts(path string) bool {
	if c.accept == nil {
		return true
	}
	return c.accept[detectMIMEType(path)]
}

func readDocument(sourceID, path string) (domain.RawDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.RawDocument{}, err
	}

	metadata := map[string]any{
		"filename":  filepath.Base(path),
		"extension": strings.TrimPrefix(filepath.Ext(path), "."),
		"size":      len(content),
	}
	if info, err := os.Stat(path); err == nil {
		metadata["modified"] = info.ModTime()
	}

	return domain.RawDocument{
		SourceID: sourceID,
		URI:      path,
		MIMEType: detectMIMEType(path),
		Content:  content,
		Metadata: metadata,
	}, nil
}

func skip(sourceID, path string, err error) domain.SkippedUnit {
	return domain.SkippedUnit{
		SourceID: sourceID,
		URI:      path,
		Reason:   fmt.Sprintf("%v: %v", domain.ErrSourceUnreadable, err),
	}
}

// detectMIMEType determines the MIME type from file extension.
func detectMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return domain.MIMETypePlainText
	}
	if t, ok := extMIMETypes[ext]; ok {
		return t
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "application/octet-stream"
	}
	// Strip charset and other parameters.
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	return mimeType
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "" && part != "." && part != ".." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
