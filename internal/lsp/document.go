package lsp

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/calloutls/internal/suggest"
)

// Document is an open text document held as an editor buffer.
type Document struct {
	URI        DocumentURI
	LanguageID string
	Version    int

	editor *suggest.MemoryEditor
}

// Text returns the document content.
func (d *Document) Text() string {
	return d.editor.Text()
}

// Line returns line n of the document.
func (d *Document) Line(n int) string {
	return d.editor.Line(n)
}

// apply applies one content change. A change without a range replaces the
// whole document.
func (d *Document) apply(change TextDocumentContentChangeEvent) error {
	if change.Range == nil {
		d.editor.SetText(change.Text)
		return nil
	}
	start := d.position(change.Range.Start)
	end := d.position(change.Range.End)
	return d.editor.ReplaceRange(change.Text, start, end)
}

// position converts an LSP position to an editor position, clamping
// positions past the end of the document to its end.
func (d *Document) position(pos Position) suggest.Position {
	if pos.Line < 0 {
		return suggest.Position{}
	}
	if last := d.editor.LineCount() - 1; pos.Line > last {
		return suggest.Position{Line: last, Col: utf8.RuneCountInString(d.editor.Line(last))}
	}
	return toEditorPosition(d.editor.Line(pos.Line), pos)
}

// documentStore tracks open documents. It is owned by the server's message
// loop and is not safe for concurrent use.
type documentStore struct {
	docs map[DocumentURI]*Document
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: make(map[DocumentURI]*Document)}
}

// open adds or replaces a document.
func (s *documentStore) open(item TextDocumentItem) *Document {
	doc := &Document{
		URI:        item.URI,
		LanguageID: item.LanguageID,
		Version:    item.Version,
		editor:     suggest.NewMemoryEditor(item.Text),
	}
	s.docs[item.URI] = doc
	return doc
}

func (s *documentStore) get(uri DocumentURI) (*Document, error) {
	doc, ok := s.docs[uri]
	if !ok {
		return nil, fmt.Errorf("%s: %w", uri, ErrDocumentNotOpen)
	}
	return doc, nil
}

// change applies changes in order and records the new version.
func (s *documentStore) change(params DidChangeTextDocumentParams) error {
	doc, err := s.get(params.TextDocument.URI)
	if err != nil {
		return err
	}
	for _, change := range params.ContentChanges {
		if err := doc.apply(change); err != nil {
			return fmt.Errorf("%s: %w", doc.URI, err)
		}
	}
	doc.Version = params.TextDocument.Version
	return nil
}

func (s *documentStore) close(uri DocumentURI) error {
	if _, ok := s.docs[uri]; !ok {
		return fmt.Errorf("%s: %w", uri, ErrDocumentNotOpen)
	}
	delete(s.docs, uri)
	return nil
}

func (s *documentStore) len() int {
	return len(s.docs)
}
