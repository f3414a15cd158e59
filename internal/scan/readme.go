package scan

import (
	"bufio"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// readmeMaxLines caps how much of a readme is captured as the excerpt.
const readmeMaxLines = 100

// readmeExcerpt returns at most the first maxLines lines of the file,
// verbatim apart from trimmed surrounding whitespace. No markdown parsing
// happens here; the excerpt is raw source text.
func readmeExcerpt(path string, maxLines int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for len(lines) < maxLines && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// firstHeading parses the excerpt and returns the text of its first
// heading, used as a title fallback when neither descriptor nor manifest
// provide one.
func firstHeading(excerpt string) string {
	if excerpt == "" {
		return ""
	}
	src := []byte(excerpt)
	root := goldmark.New().Parser().Parse(gmtext.NewReader(src))

	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok {
			title = headingText(h, src)
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	return title
}

func headingText(h *gmast.Heading, src []byte) string {
	var sb strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gmast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
	}
	return strings.TrimSpace(sb.String())
}
