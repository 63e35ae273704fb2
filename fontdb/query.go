package fontdb

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	xfont "golang.org/x/image/font"
	"golang.org/x/text/cases"

	"github.com/gogpu/imagetext/text"
)

// ParsedQuery is the attribute form of a query string.
type ParsedQuery struct {
	// Families holds the case-folded family terms.
	Families []string

	Weight    xfont.Weight
	HasWeight bool

	Style    xfont.Style
	HasStyle bool

	// Size is the numeric term, if any. It is reported but not matched.
	Size float64
}

// ParseQuery splits q on whitespace and commas. Weight words (thin,
// extralight, light, regular, normal, book, medium, semibold, bold,
// extrabold, black, with optional hyphen or space: "semi bold"), style words
// (italic, oblique) and one number are attributes; every other word is a
// family term.
func ParseQuery(q string) ParsedQuery {
	var p ParsedQuery
	fold := cases.Fold()
	words := strings.FieldsFunc(q, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	for i := 0; i < len(words); i++ {
		w := words[i]
		if size, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(w), "px"), 64); err == nil && size > 0 {
			p.Size = size
			continue
		}
		if s, ok := text.ParseStyle(w); ok {
			p.Style, p.HasStyle = s, true
			continue
		}
		if i+1 < len(words) {
			if wt, ok := text.ParseWeight(w + words[i+1]); ok {
				p.Weight, p.HasWeight = wt, true
				i++
				continue
			}
		}
		if wt, ok := text.ParseWeight(w); ok {
			p.Weight, p.HasWeight = wt, true
			continue
		}
		p.Families = append(p.Families, fold.String(w))
	}
	return p
}

// candidate is a registered font scored against a query.
type candidate struct {
	name     string
	src      *text.FontSource
	coverage int  // family terms found
	exact    bool // folded family equals the joined terms
	style    int  // 0 exact, 1 italic/oblique swap, 2 mismatch
	weight   int  // absolute weight distance
}

func (p ParsedQuery) score(name string, src *text.FontSource) (candidate, bool) {
	fold := cases.Fold()
	family := fold.String(src.Family())
	haystack := fold.String(name) + "\x00" + family + "\x00" + fold.String(src.FullName())

	c := candidate{name: name, src: src}
	for _, term := range p.Families {
		if strings.Contains(haystack, term) {
			c.coverage++
		}
	}
	if len(p.Families) > 0 && c.coverage == 0 {
		return c, false
	}
	c.exact = len(p.Families) > 0 && family == strings.Join(p.Families, " ")

	wantStyle := xfont.StyleNormal
	if p.HasStyle {
		wantStyle = p.Style
	}
	switch got := src.Style(); {
	case got == wantStyle:
	case got != xfont.StyleNormal && wantStyle != xfont.StyleNormal:
		c.style = 1
	default:
		c.style = 2
	}

	wantWeight := xfont.WeightNormal
	if p.HasWeight {
		wantWeight = p.Weight
	}
	c.weight = int(src.Weight() - wantWeight)
	if c.weight < 0 {
		c.weight = -c.weight
	}
	return c, true
}

// rank orders candidates best first: more family terms, exact family, style
// distance, weight distance, then name for stability.
func rank(cs []candidate) {
	slices.SortFunc(cs, func(a, b candidate) int {
		if c := cmp.Compare(b.coverage, a.coverage); c != 0 {
			return c
		}
		if a.exact != b.exact {
			if a.exact {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(a.style, b.style); c != 0 {
			return c
		}
		if c := cmp.Compare(a.weight, b.weight); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})
}
