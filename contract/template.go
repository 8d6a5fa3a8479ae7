package contract

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gofill/roster"
)

// Template is a contract template held in memory: a docx archive kept part
// by part, or a single html body. One Template fills any number of
// records; every Fill writes an independent document.
type Template struct {
	path  string
	ext   string
	parts []part
}

type part struct {
	name string
	body []byte
	fill bool
}

// Open loads the template at path, dispatching on its extension.
func Open(path string) (*Template, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".docx":
		return openDocx(path, ext)
	case ".html":
		return openHTML(path, ext)
	default:
		return nil, fmt.Errorf("unsupported template format %s: use .docx or .html", path)
	}
}

// Ext reports the template's extension, which filled documents share.
func (t *Template) Ext() string {
	return t.ext
}

// openDocx reads the whole archive. The body parts (document, headers,
// footers) are the ones placeholder substitution applies to; everything
// else is carried through byte for byte.
func openDocx(path, ext string) (*Template, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", path, err)
	}
	defer reader.Close()

	t := &Template{path: path, ext: ext}
	hasDocument := false
	for _, entry := range reader.File {
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("read template part %s: %w", entry.Name, err)
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read template part %s: %w", entry.Name, err)
		}
		if entry.Name == "word/document.xml" {
			hasDocument = true
		}
		t.parts = append(t.parts, part{name: entry.Name, body: body, fill: isBodyPart(entry.Name)})
	}
	if !hasDocument {
		return nil, fmt.Errorf("template %s is not a docx document", path)
	}
	return t, nil
}

func openHTML(path, ext string) (*Template, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", path, err)
	}
	return &Template{
		path:  path,
		ext:   ext,
		parts: []part{{body: body, fill: true}},
	}, nil
}

// Fill writes a copy of the template to outPath with every {key}
// occurrence in the fillable parts replaced by the record's value. Keys
// the record does not carry stay as literal placeholders.
func (t *Template) Fill(rec roster.Record, outPath string) error {
	if t.ext == ".html" {
		if err := os.WriteFile(outPath, substitute(t.parts[0].body, rec), 0o644); err != nil {
			return fmt.Errorf("write document %s: %w", outPath, err)
		}
		return nil
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create document %s: %w", outPath, err)
	}

	writer := zip.NewWriter(out)
	for _, p := range t.parts {
		target, err := writer.Create(p.name)
		if err != nil {
			out.Close()
			return fmt.Errorf("write document part %s: %w", p.name, err)
		}
		body := p.body
		if p.fill {
			body = substitute(body, rec)
		}
		if _, err := target.Write(body); err != nil {
			out.Close()
			return fmt.Errorf("write document part %s: %w", p.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finish document %s: %w", outPath, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close document %s: %w", outPath, err)
	}
	return nil
}

func isBodyPart(name string) bool {
	if name == "word/document.xml" {
		return true
	}
	if !strings.HasSuffix(name, ".xml") {
		return false
	}
	return strings.HasPrefix(name, "word/header") || strings.HasPrefix(name, "word/footer")
}

// xmlEscaper covers the five markup metacharacters, which is the right
// escaping for both the docx XML parts and html bodies.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func substitute(body []byte, rec roster.Record) []byte {
	text := string(body)
	for key, value := range rec {
		placeholder := "{" + key + "}"
		if !strings.Contains(text, placeholder) {
			continue
		}
		text = strings.ReplaceAll(text, placeholder, xmlEscaper.Replace(roster.Text(value)))
	}
	return []byte(text)
}
