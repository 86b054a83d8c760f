package lsp

import "github.com/dshills/calloutls/internal/suggest"

// LSP columns count UTF-16 code units; the editor and trigger code count
// runes. These helpers translate between the two for a single line.

// toEditorPosition converts an LSP position on line to an editor position.
func toEditorPosition(line string, pos Position) suggest.Position {
	return suggest.Position{Line: pos.Line, Col: utf16ToRuneOffset(line, pos.Character)}
}

// toLSPPosition converts a rune column on line to an LSP position.
func toLSPPosition(line string, lineNum, col int) Position {
	return Position{Line: lineNum, Character: runeToUTF16Offset(line, col)}
}

// utf16LenForString returns the length in UTF-16 code units.
func utf16LenForString(s string) int {
	count := 0
	for _, r := range s {
		if r >= 0x10000 {
			count += 2 // Surrogate pair
		} else {
			count++
		}
	}
	return count
}

// runeToUTF16Offset converts a rune offset to UTF-16 offset within a string.
func runeToUTF16Offset(s string, runeOff int) int {
	if runeOff <= 0 {
		return 0
	}

	runeCount := 0
	utf16Off := 0
	for _, r := range s {
		if runeCount >= runeOff {
			break
		}
		if r >= 0x10000 {
			utf16Off += 2
		} else {
			utf16Off++
		}
		runeCount++
	}
	return utf16Off
}

// utf16ToRuneOffset converts a UTF-16 offset to rune offset within a string.
func utf16ToRuneOffset(s string, utf16Off int) int {
	if utf16Off <= 0 {
		return 0
	}

	utf16Count := 0
	runeOff := 0
	for _, r := range s {
		if utf16Count >= utf16Off {
			break
		}
		if r >= 0x10000 {
			utf16Count += 2
		} else {
			utf16Count++
		}
		runeOff++
	}
	return runeOff
}
