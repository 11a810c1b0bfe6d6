// Package reader turns a script file into an ordered, unclassified
// token stream. It strips the UTF-8 BOM, handles block and end-of-line
// comments, and leaves classification to package parser.
package reader

import (
	"os"
	"strings"

	"github.com/scriptrt/scriptrt/script"
)

const (
	bom               = "\xef\xbb\xbf"
	blockCommentOpen  = "---"
	blockCommentClose = "!--"
	eolComment        = "#"
)

// Read loads path and returns one script.Item per surviving line, all
// with Kind == script.KindNone. Line order is preserved; comments and
// blank lines are dropped before the Parser ever sees them.
func Read(path string) ([]*script.Item, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrIOFailure{Path: path, Cause: err}
	}
	return ReadString(string(raw)), nil
}

// ReadString runs the Reader over in-memory content, primarily for
// tests and for hosts that already have the script bytes loaded.
func ReadString(content string) []*script.Item {
	content = strings.TrimPrefix(content, bom)
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	items := make([]*script.Item, 0, len(lines))
	inBlockComment := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inBlockComment {
			if strings.HasSuffix(trimmed, blockCommentClose) {
				inBlockComment = false
			}
			continue
		}

		if strings.HasPrefix(trimmed, blockCommentOpen) {
			inBlockComment = true
			continue
		}

		if trimmed == "" || strings.HasPrefix(trimmed, eolComment) {
			continue
		}

		if idx := strings.IndexByte(trimmed, '#'); idx >= 0 {
			trimmed = strings.TrimSpace(trimmed[:idx])
		}

		if trimmed == "" {
			continue
		}

		items = append(items, &script.Item{Line: trimmed, Kind: script.KindNone})
	}

	return items
}
