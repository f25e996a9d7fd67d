package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LineEnding is the line terminator a document is saved with.
type LineEnding uint8

const (
	LineEndingLF LineEnding = iota
	LineEndingCRLF
)

// String returns the terminator name.
func (le LineEnding) String() string {
	if le == LineEndingCRLF {
		return "CRLF"
	}
	return "LF"
}

// Document represents the file being edited.
type Document struct {
	// Path is the file path (empty for scratch buffers).
	Path string

	// Name is the display name (filename or "Untitled").
	Name string

	// ReadOnly indicates the document cannot be saved.
	ReadOnly bool

	// LineEnding is restored on save. The buffer always holds LF.
	LineEnding LineEnding

	mode fs.FileMode
}

// NewScratchDocument creates a new scratch (unsaved) document.
func NewScratchDocument() *Document {
	return &Document{Name: "Untitled", mode: 0o644}
}

// OpenDocument reads path and returns the document with its text
// normalized to LF. A missing file yields an empty document that is
// created on first save.
func OpenDocument(path string, readOnly bool) (*Document, string, error) {
	doc := &Document{
		Path:     path,
		Name:     filepath.Base(path),
		ReadOnly: readOnly,
		mode:     0o644,
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return doc, "", nil
	case err != nil:
		return nil, "", NewOperationError("open", path, err)
	case info.IsDir():
		return nil, "", NewOperationError("open", path, errors.New("is a directory"))
	}
	doc.mode = info.Mode().Perm()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", NewOperationError("open", path, err)
	}

	text := string(data)
	doc.LineEnding = detectLineEnding(text)
	return doc, normalizeLineEndings(text), nil
}

// IsScratch returns true if this is a scratch buffer (no file path).
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// Save writes text, restoring the document's line ending.
func (d *Document) Save(text string) error {
	if d.IsScratch() {
		return ErrNoFilePath
	}
	if d.ReadOnly {
		return NewOperationError("save", d.Path, ErrReadOnly)
	}

	if d.LineEnding == LineEndingCRLF {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	if err := os.WriteFile(d.Path, []byte(text), d.mode); err != nil {
		return NewOperationError("save", d.Path, err)
	}
	return nil
}

// detectLineEnding reports CRLF when the first terminator is CRLF.
func detectLineEnding(text string) LineEnding {
	i := strings.IndexByte(text, '\n')
	if i > 0 && text[i-1] == '\r' {
		return LineEndingCRLF
	}
	return LineEndingLF
}

func normalizeLineEndings(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
