// Package validation checks document content against the structural
// template of a context type, and tracks correction guidance across
// repeated failures.
//
// A template's structure is its markdown heading outline. Content is valid
// when every template heading appears at the same level and in the same
// relative order; text between headings is unconstrained.
package validation

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

// markdownParser is initialized once and reused. The parser configuration
// never changes and the goldmark parser is safe to share; parsing creates
// per-call state via Parse(reader).
var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New()
	})
	return markdownParser
}

// Heading is one entry in a document's heading outline.
type Heading struct {
	Level int
	Text  string
}

// String renders the heading the way it appears in markdown source.
func (h Heading) String() string {
	return strings.Repeat("#", h.Level) + " " + h.Text
}

// templateCacheSize bounds the parsed-outline cache. Templates are small
// and few per deployment; the bound only guards against unbounded growth
// when projects carry many local template edits.
const templateCacheSize = 64

// Validator checks content against template heading outlines. Parsed
// template outlines are cached by content hash, so validating many
// documents against the same template parses it once.
type Validator struct {
	templates *lru.Cache[string, []Heading]
}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	cache, _ := lru.New[string, []Heading](templateCacheSize)
	return &Validator{templates: cache}
}

// Validate checks content against templateText and reports every
// structural deviation. Empty content is invalid without parsing anything.
func (v *Validator) Validate(content, templateText string) types.ValidationResult {
	if strings.TrimSpace(content) == "" {
		return types.ValidationResult{Errors: []string{"Content is empty"}}
	}

	required := v.templateOutline(templateText)
	if len(required) == 0 {
		// A template with no headings imposes no structure.
		return types.ValidationResult{IsValid: true}
	}

	got := Outline(content)
	errs := matchOutline(required, got)
	if len(errs) > 0 {
		return types.ValidationResult{Errors: errs}
	}
	return types.ValidationResult{IsValid: true}
}

// templateOutline returns the template's heading outline, consulting the
// cache first.
func (v *Validator) templateOutline(templateText string) []Heading {
	key := contentHash(templateText)
	if outline, ok := v.templates.Get(key); ok {
		return outline
	}
	outline := Outline(templateText)
	v.templates.Add(key, outline)
	return outline
}

// matchOutline checks that required is a subsequence of got: every required
// heading present, at its level, in order. One error line per deviation.
func matchOutline(required, got []Heading) []string {
	var errs []string
	cursor := 0
	for _, want := range required {
		idx := findHeading(got, want, cursor)
		if idx >= 0 {
			cursor = idx + 1
			continue
		}
		if findHeading(got, want, 0) >= 0 {
			errs = append(errs, fmt.Sprintf("heading %q is out of order", want.String()))
			continue
		}
		errs = append(errs, fmt.Sprintf("missing required heading %q", want.String()))
	}
	return errs
}

// findHeading returns the index of the first heading at or after from that
// matches want, or -1. Matching compares the level exactly and the text
// case-insensitively with surrounding whitespace ignored.
func findHeading(got []Heading, want Heading, from int) int {
	for i := from; i < len(got); i++ {
		if got[i].Level == want.Level && strings.EqualFold(got[i].Text, want.Text) {
			return i
		}
	}
	return -1
}

// Outline extracts the heading outline of a markdown document.
func Outline(source string) []Heading {
	src := []byte(source)
	doc := getMarkdownParser().Parser().Parse(text.NewReader(src))

	var outline []Heading
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || node.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		heading := node.(*ast.Heading)
		outline = append(outline, Heading{
			Level: heading.Level,
			Text:  strings.TrimSpace(headingText(heading, src)),
		})
		return ast.WalkSkipChildren, nil
	})
	return outline
}

// headingText collects the plain text of a heading's inline children.
// Styled heading text (emphasis, code spans) contributes its nested text.
func headingText(heading *ast.Heading, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(heading, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Text:
			sb.Write(n.Segment.Value(src))
		case *ast.String:
			sb.Write(n.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// contentHash keys the template cache by content, so edited project-local
// templates never collide with the shipped defaults.
func contentHash(text string) string {
	h := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%x", h[:16])
}
