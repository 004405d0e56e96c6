package markdown

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// CheckFences scans a Markdown document for a fenced code block that is opened
// but never closed. Goldmark tolerates the truncation and renders everything
// after the opener as code, which silently swallows the rest of the post, so
// the pipeline rejects the document instead.
func CheckFences(source []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(source))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		openMarker byte
		openLength int
		openLine   int
		lineNo     int
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t")
		trimmed := strings.TrimLeft(line, " ")

		// Indented by four or more spaces means an indented code block,
		// not a fence marker.
		if len(line)-len(trimmed) >= 4 {
			continue
		}

		marker, length := fenceMarker(trimmed)
		if length < 3 {
			continue
		}

		if openMarker == 0 {
			openMarker = marker
			openLength = length
			openLine = lineNo
			continue
		}

		// A closing fence must use the same marker, be at least as long as
		// the opener, and carry no info string.
		if marker == openMarker && length >= openLength && len(trimmed) == length {
			openMarker = 0
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan markdown: %w", err)
	}

	if openMarker != 0 {
		return fmt.Errorf("unterminated code fence opened on line %d", openLine)
	}
	return nil
}

func fenceMarker(line string) (byte, int) {
	if line == "" {
		return 0, 0
	}
	marker := line[0]
	if marker != '`' && marker != '~' {
		return 0, 0
	}
	length := 0
	for length < len(line) && line[length] == marker {
		length++
	}
	// Backtick fences cannot contain backticks in the info string.
	if marker == '`' && strings.ContainsRune(line[length:], '`') {
		return 0, 0
	}
	return marker, length
}
