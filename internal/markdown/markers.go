package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Rule bodies mark their example sections with a short phrase in either
// Chinese or English. Each semantic role resolves to a small set of accepted
// literals so additional languages can be added without touching callers.
var (
	incorrectMarkers = []string{"错误示例", "Incorrect"}
	correctMarkers   = []string{"正确示例", "Correct"}
)

// FindIncorrectMarker returns the byte offset of the first incorrect-example
// marker within body, or -1 when none is present.
func FindIncorrectMarker(body []byte) int {
	return findMarker(body, incorrectMarkers)
}

// FindCorrectMarker returns the byte offset of the first correct-example
// marker within body, or -1 when none is present.
func FindCorrectMarker(body []byte) int {
	return findMarker(body, correctMarkers)
}

func findMarker(body []byte, markers []string) int {
	first := -1
	for _, marker := range markers {
		if idx := bytes.Index(body, []byte(marker)); idx >= 0 && (first < 0 || idx < first) {
			first = idx
		}
	}
	return first
}

// FenceDelimiterCount counts fence delimiter occurrences in body. A well
// formed document opens and closes every fence, so the count must be even and
// at least two for a document carrying examples.
func FenceDelimiterCount(body []byte) int {
	return strings.Count(string(body), "```")
}

// Fence describes a fenced code block located within a Markdown body.
type Fence struct {
	// Language is the info-string tag on the opening fence, e.g. "js".
	Language string
	// Code is the raw content between the delimiters.
	Code string
	// Offset is the byte position of the block's first content line within
	// the body, used to associate fences with marker spans.
	Offset int
}

// Fences locates every fenced code block in body using the goldmark AST in
// document order.
func Fences(body []byte) []Fence {
	engine := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := engine.Parser().Parse(text.NewReader(body))

	var fences []Fence
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var buf bytes.Buffer
		offset := -1
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			segment := lines.At(i)
			if offset < 0 {
				offset = segment.Start
			}
			buf.Write(segment.Value(body))
		}
		if offset < 0 && block.Info != nil {
			// Empty block: fall back to the info string position.
			offset = block.Info.Segment.Start
		}

		var language string
		if lang := block.Language(body); lang != nil {
			language = string(lang)
		}

		fences = append(fences, Fence{
			Language: language,
			Code:     buf.String(),
			Offset:   offset,
		})
		return ast.WalkContinue, nil
	})

	return fences
}

// FencesBetween returns the fences whose content begins at or after start and
// strictly before end. A negative end means "until the end of body".
func FencesBetween(fences []Fence, start, end int) []Fence {
	var out []Fence
	for _, fence := range fences {
		if fence.Offset < start {
			continue
		}
		if end >= 0 && fence.Offset >= end {
			continue
		}
		out = append(out, fence)
	}
	return out
}
