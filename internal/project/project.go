// Package project discovers project files under a directory and reads or
// rewrites their <Version> element.
package project

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	apperrors "github.com/autover/autover/internal/errors"
	"github.com/spf13/afero"
)

const (
	// Extension is the file extension of project files.
	Extension = ".csproj"
	// VersionElement is the XML element holding a project's version.
	VersionElement = "Version"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Definition is one discovered project file.
type Definition struct {
	// Path is the absolute path of the project file.
	Path string
	// Version is the text of the first <Version> element, or "" when absent.
	Version string

	content []byte
	element *elementSpan
}

// elementSpan locates the first <Version> element inside content.
type elementSpan struct {
	tagStart    int
	textStart   int
	textEnd     int
	selfClosing bool
}

// HasVersionElement reports whether the project file has a <Version> element.
func (d *Definition) HasVersionElement() bool {
	return d.element != nil
}

// Discover returns every project file under root, in walk order. root may
// also name a single project file. A missing root or a root without project
// files fails with a "no valid project" error.
func Discover(fs afero.Fs, root string) ([]*Definition, error) {
	paths, err := findProjectFiles(fs, root)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, apperrors.NoValidProject(root, Extension)
	}

	defs := make([]*Definition, 0, len(paths))
	for _, p := range paths {
		if filepath.Ext(p) != Extension {
			return nil, apperrors.InvalidProjectExtension(p, Extension)
		}
		def, err := Load(fs, p)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	logDebug("[project] discovered %d project(s) under %s", len(defs), root)
	return defs, nil
}

func findProjectFiles(fs afero.Fs, root string) ([]string, error) {
	if root == "" {
		return nil, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	info, err := fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("inspecting %s: %w", abs, err)
	}
	if !info.IsDir() {
		return []string{abs}, nil
	}

	var paths []string
	err = afero.Walk(fs, abs, func(p string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if fi.IsDir() {
			if fi.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match("*"+Extension, fi.Name()); ok {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", abs, err)
	}
	return paths, nil
}

// Load reads a single project file and locates its version element.
func Load(fs afero.Fs, p string) (*Definition, error) {
	content, err := afero.ReadFile(fs, p)
	if err != nil {
		return nil, fmt.Errorf("reading project file %s: %w", p, err)
	}

	def := &Definition{Path: p, content: content}
	if err := def.scan(); err != nil {
		return nil, fmt.Errorf("parsing project file %s: %w", p, err)
	}
	return def, nil
}

// scan walks the XML tokens and records the first <Version> element.
func (d *Definition) scan() error {
	d.element = nil
	d.Version = ""

	offset := 0
	body := d.content
	if bytes.HasPrefix(body, utf8BOM) {
		offset = len(utf8BOM)
		body = body[offset:]
	}

	dec := xml.NewDecoder(bytes.NewReader(body))
	var (
		span  *elementSpan
		depth int
		text  strings.Builder
	)

	for {
		before := int(dec.InputOffset())
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if span != nil {
				depth++
				continue
			}
			if t.Name.Local == VersionElement {
				after := int(dec.InputOffset())
				span = &elementSpan{
					tagStart:    offset + before,
					textStart:   offset + after,
					selfClosing: bytes.HasSuffix(body[before:after], []byte("/>")),
				}
			}
		case xml.CharData:
			if span != nil && depth == 0 {
				text.Write(t)
			}
		case xml.EndElement:
			if span == nil {
				continue
			}
			if depth > 0 {
				depth--
				continue
			}
			span.textEnd = offset + before
			if span.selfClosing {
				span.textEnd = span.textStart
			}
			d.element = span
			d.Version = strings.TrimSpace(text.String())
			return nil
		}
	}
}

// setVersion replaces the text of the version element, leaving every other
// byte of the file untouched.
func (d *Definition) setVersion(v string) error {
	if d.element == nil {
		return apperrors.NoVersionElement(d.Path, VersionElement)
	}

	var escaped bytes.Buffer
	if err := xml.EscapeText(&escaped, []byte(v)); err != nil {
		return fmt.Errorf("escaping version %q: %w", v, err)
	}

	var buf bytes.Buffer
	if d.element.selfClosing {
		buf.Write(d.content[:d.element.tagStart])
		fmt.Fprintf(&buf, "<%s>%s</%s>", VersionElement, escaped.String(), VersionElement)
		buf.Write(d.content[d.element.textStart:])
	} else {
		buf.Write(d.content[:d.element.textStart])
		buf.Write(escaped.Bytes())
		buf.Write(d.content[d.element.textEnd:])
	}

	d.content = buf.Bytes()
	return d.scan()
}

// Name derives a project name from its file path by stripping the extension
// of the final path segment. Both '/' and '\' are treated as separators.
func Name(projectPath string) (string, error) {
	normalized := strings.ReplaceAll(projectPath, `\`, "/")
	base := path.Base(normalized)
	ext := path.Ext(base)
	if base == "" || base == "." || base == "/" || ext == "" || ext == base {
		return "", apperrors.InvalidProjectName(projectPath)
	}
	return strings.TrimSuffix(base, ext), nil
}

// NormalizePath makes a path comparable regardless of separator style.
func NormalizePath(p string) string {
	return path.Clean(strings.ReplaceAll(p, `\`, "/"))
}
