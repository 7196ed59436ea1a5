package mapping

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FabricCore/yarn-wrapper-gen/descriptor"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("wrapgen.mapping")

// commentTarget says which slot the pending COMMENT lines belong to. Comments
// in a mapping file follow the line they describe.
type commentTarget int

const (
	awaitingClassComment commentTarget = iota
	awaitingMemberComment
	awaitingArgComment
)

func (t commentTarget) String() string {
	switch t {
	case awaitingClassComment:
		return "class"
	case awaitingMemberComment:
		return "member"
	case awaitingArgComment:
		return "argument"
	default:
		return "unknown"
	}
}

type parser struct {
	class   *Class
	target  commentTarget
	pending []string
}

// Parse reads the first mapping unit in text. Parsing stops at the next CLASS
// line; everything after it is left for the caller.
func Parse(text string) (*Class, error) {
	return parseUnit(splitLines(text), 1)
}

// ParseUnits reads every top-level unit in text. A top-level unit starts with
// an unindented CLASS line; indented CLASS blocks are nested classes and end
// the member list of the unit they appear in.
func ParseUnits(text string) ([]*Class, error) {
	lines := splitLines(text)

	var classes []*Class
	start := -1
	for i, line := range lines {
		if isTopLevelHeader(line) {
			if start >= 0 {
				c, err := parseUnit(lines[start:i], start+1)
				if err != nil {
					return nil, err
				}
				classes = append(classes, c)
			}
			start = i
			continue
		}
		if start < 0 && strings.TrimSpace(line) != "" {
			return nil, &ParseError{Line: i + 1, Err: fmt.Errorf("%w: %q before the first CLASS line", ErrMalformedHeader, line)}
		}
	}
	if start >= 0 {
		c, err := parseUnit(lines[start:], start+1)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, nil
}

func parseUnit(lines []string, firstLine int) (*Class, error) {
	if len(lines) == 0 {
		return nil, &ParseError{Line: firstLine, Err: fmt.Errorf("%w: empty unit", ErrMalformedHeader)}
	}
	obfuscated, name, err := parseHeader(lines[0])
	if err != nil {
		return nil, &ParseError{Line: firstLine, Err: err}
	}

	p := &parser{class: &Class{Obfuscated: obfuscated, Name: name, Line: firstLine}}
	lastLine := firstLine

	for i, raw := range lines[1:] {
		lineNo := firstLine + 1 + i
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lastLine = lineNo

		kind, rest, _ := strings.Cut(line, " ")
		if kind == "CLASS" {
			break
		}

		var err error
		switch kind {
		case "COMMENT":
			p.pending = append(p.pending, rest)
		case "FIELD":
			err = p.field(rest, lineNo)
		case "METHOD":
			err = p.method(rest, lineNo)
		case "ARG":
			err = p.arg(rest, lineNo)
		default:
			err = fmt.Errorf("%w %q", ErrUnrecognizedLineVariant, kind)
		}
		if err != nil {
			return nil, p.errorAt(lineNo, err)
		}
	}

	// Comments still waiting for the class when the unit ends were never
	// claimed by a member line and are dropped.
	if p.target == awaitingClassComment {
		p.pending = nil
	}
	if err := p.flush(); err != nil {
		return nil, p.errorAt(lastLine, err)
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return p.class, nil
}

func parseHeader(line string) (obfuscated, name []string, err error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "CLASS" {
		return nil, nil, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
	}
	readable := fields[1]
	if len(fields) > 2 {
		readable = fields[2]
	}
	return strings.Split(fields[1], "/"), strings.Split(readable, "/"), nil
}

func (p *parser) field(rest string, line int) error {
	if err := p.flush(); err != nil {
		return err
	}

	f := &Field{Line: line}
	// Unmapped fields carry only an obfuscated name and stay label-less.
	if parts := strings.Fields(rest); len(parts) >= 3 {
		f.Obfuscated = parts[0]
		f.Label = parts[1]
		f.Descriptor = descriptor.Normalize(parts[2])
	}

	p.class.Members = append(p.class.Members, f)
	p.target = awaitingMemberComment
	return nil
}

func (p *parser) method(rest string, line int) error {
	if err := p.flush(); err != nil {
		return err
	}

	m := &Method{Line: line}
	var sig string
	switch parts := strings.Fields(rest); len(parts) {
	case 3:
		m.Obfuscated, m.Label, sig = parts[0], parts[1], parts[2]
	case 2:
		// Constructors and methods without a readable name.
		m.Obfuscated, m.Label, sig = parts[0], parts[0], parts[1]
	}
	if sig != "" {
		params, ret, err := descriptor.ParseMethod(sig)
		if err != nil {
			return err
		}
		m.Params, m.Return = params, ret
	}

	p.class.Members = append(p.class.Members, m)
	p.target = awaitingMemberComment
	return nil
}

func (p *parser) arg(rest string, line int) error {
	m, ok := p.lastMember().(*Method)
	if !ok {
		return ErrArgWithoutMethod
	}
	if err := p.flush(); err != nil {
		return err
	}

	parts := strings.Fields(rest)
	if len(parts) < 2 {
		return fmt.Errorf("%w: %q", ErrMalformedArgument, rest)
	}
	slot, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("%w: slot %q is not a number", ErrMalformedArgument, parts[0])
	}

	m.Parameters = append(m.Parameters, Parameter{Slot: slot, Name: parts[1], Line: line})
	p.target = awaitingArgComment
	return nil
}

// flush hands the pending comments to the slot selected by the current
// target.
func (p *parser) flush() error {
	if len(p.pending) == 0 {
		return nil
	}
	comments := p.pending
	p.pending = nil

	switch p.target {
	case awaitingClassComment:
		p.class.Comment = comments
	case awaitingMemberComment:
		switch m := p.lastMember().(type) {
		case *Field:
			m.Comment = comments
		case *Method:
			m.Comment = comments
		}
	case awaitingArgComment:
		switch m := p.lastMember().(type) {
		case *Method:
			m.Parameters[len(m.Parameters)-1].Comment = comments
		default:
			return ErrCommentOnField
		}
	}
	return nil
}

// finish drops label-less members and methods that declare parameters but
// name none of them, then checks the remaining members' descriptors.
func (p *parser) finish() error {
	members := p.class.Members[:0]
	for _, member := range p.class.Members {
		switch m := member.(type) {
		case *Field:
			if m.Label == "" {
				log.Debugf("%s:%d: dropping unmapped field", p.class.ObfuscatedName(), m.Line)
				continue
			}
			if _, err := descriptor.Parse(m.Descriptor); err != nil {
				return p.errorAt(m.Line, err)
			}
		case *Method:
			if m.Label == "" {
				log.Debugf("%s:%d: dropping malformed method", p.class.ObfuscatedName(), m.Line)
				continue
			}
			tokens, err := descriptor.Split(m.Params)
			if err != nil {
				return p.errorAt(m.Line, err)
			}
			for _, token := range tokens {
				if _, err := descriptor.Parse(token); err != nil {
					return p.errorAt(m.Line, err)
				}
			}
			if _, err := descriptor.Parse(m.Return); err != nil {
				return p.errorAt(m.Line, err)
			}
			if len(m.Parameters) == 0 && len(tokens) > 0 {
				log.Debugf("%s:%d: dropping %s, no parameter names", p.class.ObfuscatedName(), m.Line, m.Label)
				continue
			}
			if len(m.Parameters) != len(tokens) {
				return p.errorAt(m.Line, fmt.Errorf("%w: %s has %d names for %d parameters",
					ErrAmbiguousArgumentCount, m.Label, len(m.Parameters), len(tokens)))
			}
		}
		members = append(members, member)
	}
	p.class.Members = members
	return nil
}

func (p *parser) lastMember() Member {
	if len(p.class.Members) == 0 {
		return nil
	}
	return p.class.Members[len(p.class.Members)-1]
}

func (p *parser) errorAt(line int, err error) error {
	return &ParseError{Unit: p.class.ObfuscatedName(), Line: line, Err: err}
}

func isTopLevelHeader(line string) bool {
	return line == "CLASS" || strings.HasPrefix(line, "CLASS ")
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
