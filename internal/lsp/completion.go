package lsp

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/calloutls/internal/suggest"
)

// completion runs the trigger on the cursor line and returns one item per
// matching callout type. A line that does not trigger yields an empty list.
func (s *Server) completion(params CompletionParams) (*CompletionList, error) {
	doc, err := s.docs.get(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	line := doc.Line(params.Position.Line)
	cursor := toEditorPosition(line, params.Position)
	span, ok := s.session.OnTrigger(cursor, line)
	if !ok {
		return &CompletionList{Items: []CompletionItem{}}, nil
	}

	tctx, _ := s.session.Context()
	rng := editRange(line, tctx)

	entries := s.session.Suggestions(span.Query)
	items := make([]CompletionItem, 0, len(entries))
	for i, entry := range entries {
		items = append(items, completionItem(s.session.Render(entry), rng, i))
	}
	return &CompletionList{Items: items}, nil
}

// editRange converts the trigger span to an LSP range on the original
// line, putting back the indentation the trigger stripped.
func editRange(line string, tctx suggest.Context) Range {
	start := tctx.Span.Start + tctx.Indent
	end := tctx.Span.End + tctx.Indent
	if end < start {
		start, end = end, start
	}
	if n := utf8.RuneCountInString(line); end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return Range{
		Start: toLSPPosition(line, tctx.Line, start),
		End:   toLSPPosition(line, tctx.Line, end),
	}
}

// completionItem renders one suggestion. Items keep catalog order through
// SortText; the documentation is the hex color so clients that render
// color swatches show one.
func completionItem(row suggest.Row, rng Range, index int) CompletionItem {
	return CompletionItem{
		Label:  row.Label,
		Kind:   CompletionItemKindColor,
		Detail: row.CSSColor(),
		Documentation: &MarkupContent{
			Kind:  MarkupKindPlainText,
			Value: row.Color.Hex(),
		},
		SortText:   fmt.Sprintf("%04d", index),
		FilterText: row.Label,
		TextEdit:   &TextEdit{Range: rng, NewText: row.Label},
	}
}
