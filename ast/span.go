package ast

import (
	"fmt"
	"sort"
)

// Span is a half-open byte-offset range [Start, End) into the original
// component source.
type Span struct {
	Start int
	End   int
}

func NewSpan(start, end int) Span { return Span{Start: start, End: end} }

// IsZero reports whether the span is the zero value.
func (s Span) IsZero() bool { return s.Start == 0 && s.End == 0 }

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Slice returns the source text covered by the span.
func (s Span) Slice(source string) string {
	if s.Start < 0 || s.End > len(source) || s.Start > s.End {
		return ""
	}
	return source[s.Start:s.End]
}

func (s Span) String() string { return fmt.Sprintf("[%d,%d)", s.Start, s.End) }

// SourceLocation marks the byte range of a name within its node, such as
// the tag name inside an opening tag.
type SourceLocation struct {
	Start int
	End   int
}

// Position is a resolved line/column for display. Line is 1-based, Column
// is a 0-based byte column.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Locator converts byte offsets into line/column positions. Build one per
// source string; lookups are O(log n) over the line starts.
type Locator struct {
	lineStarts []int
}

func NewLocator(source string) *Locator {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Locator{lineStarts: starts}
}

// Locate returns the position of the given byte offset.
func (l *Locator) Locate(offset int) Position {
	line := sort.Search(len(l.lineStarts), func(i int) bool {
		return l.lineStarts[i] > offset
	})
	start := l.lineStarts[line-1]
	return Position{Line: line, Column: offset - start, Offset: offset}
}
