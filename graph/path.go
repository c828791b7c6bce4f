package graph

import (
	"strconv"
	"strings"
)

// Root is the path of the top level object
const Root = "#"

var escaper = strings.NewReplacer("~", "~0", "/", "~1")

// Index returns collection element segment
func Index(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// Escape escapes segment as JSON pointer token
func Escape(segment string) string {
	return escaper.Replace(segment)
}

type pathStack struct {
	segments []string
}

func (p *pathStack) push(segment string) {
	p.segments = append(p.segments, segment)
}

func (p *pathStack) pop(segment string) error {
	if len(p.segments) == 0 {
		return errUnderflow(segment)
	}
	last := p.segments[len(p.segments)-1]
	if last != segment {
		return errMismatch(last, segment)
	}
	p.segments = p.segments[:len(p.segments)-1]
	return nil
}

func (p *pathStack) depth() int {
	return len(p.segments)
}

// path renders current location; the first segment always denotes the root
func (p *pathStack) path() string {
	if len(p.segments) <= 1 {
		return Root
	}
	builder := strings.Builder{}
	builder.WriteString(Root)
	for _, segment := range p.segments[1:] {
		builder.WriteByte('/')
		builder.WriteString(Escape(segment))
	}
	return builder.String()
}

// Child returns path of segment nested under the current location
func (p *pathStack) child(segment string) string {
	if len(p.segments) == 0 {
		return Root
	}
	return p.path() + "/" + Escape(segment)
}
