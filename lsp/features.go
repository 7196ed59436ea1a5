package lsp

import (
	"errors"
	"strings"

	"github.com/FabricCore/yarn-wrapper-gen/descriptor"
	"github.com/FabricCore/yarn-wrapper-gen/index"
	"github.com/FabricCore/yarn-wrapper-gen/mapping"
	"github.com/FabricCore/yarn-wrapper-gen/workspace"
	"github.com/FabricCore/yarn-wrapper-gen/wrapper"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// diagnostics always returns a non-nil slice so that publishing it clears
// stale entries on the client.
func diagnostics(file *workspace.File, indexErr error) []protocol.Diagnostic {
	lines := strings.Split(file.Content, "\n")
	out := []protocol.Diagnostic{}

	if file.ParseErr != nil {
		line, message := 1, file.ParseErr.Error()
		var perr *mapping.ParseError
		if errors.As(file.ParseErr, &perr) {
			line, message = perr.Line, perr.Err.Error()
		}
		out = append(out, diagnostic(lines, line, message))
	}

	var dup *index.DuplicateClassPathError
	if errors.As(indexErr, &dup) && (dup.First == file.Path || dup.Second == file.Path) {
		for _, c := range file.Classes {
			if c.ObfuscatedName() == dup.Path {
				out = append(out, diagnostic(lines, c.Line, dup.Error()))
			}
		}
	}
	return out
}

// diagnostic spans the whole of the 1-based line.
func diagnostic(lines []string, line int, message string) protocol.Diagnostic {
	if line < 1 {
		line = 1
	}
	var end int
	if line <= len(lines) {
		end = len(strings.TrimRight(lines[line-1], "\r"))
	}
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: protocol.UInteger(line - 1)},
			End:   protocol.Position{Line: protocol.UInteger(line - 1), Character: protocol.UInteger(end)},
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

// hoverText renders what the generator emits for the declaration on line.
// ARG lines show their method.
func hoverText(gen *wrapper.Generator, file *workspace.File, line int) (string, bool) {
	for _, c := range file.Classes {
		if c.Line == line {
			decl := "public class " + c.SimpleName()
			if pkg := gen.Resolver().WrapperPackage(c); pkg != "" {
				decl = "package " + pkg + ";\n\n" + decl
			}
			return decl, true
		}
		for _, m := range c.Members {
			if !declares(m, line) {
				continue
			}
			text, err := gen.RenderMember(c, m)
			if err != nil {
				log.Debugf("hover %s:%d: %s", file.Path, line, err)
				return "", false
			}
			return text, true
		}
	}
	return "", false
}

func declares(m mapping.Member, line int) bool {
	if m.DeclaredAt() == line {
		return true
	}
	if method, ok := m.(*mapping.Method); ok {
		for _, p := range method.Parameters {
			if p.Line == line {
				return true
			}
		}
	}
	return false
}

// classPrefixAt reports the partial class path being typed at the 1-based
// line and 0-based column, when the cursor is inside the descriptor of a
// FIELD or METHOD line right after an L.
func classPrefixAt(content string, line, col int) (string, bool) {
	lines := strings.Split(content, "\n")
	if line < 1 || line > len(lines) {
		return "", false
	}
	text := strings.TrimRight(lines[line-1], "\r")
	if col > len(text) {
		col = len(text)
	}

	start := col
	for start > 0 && !isDescriptorBoundary(text[start-1]) {
		start--
	}

	before := strings.Fields(text[:start])
	if len(before) < 2 || (before[0] != "FIELD" && before[0] != "METHOD") {
		return "", false
	}

	token := text[start:col]
	for i := 0; i < len(token); {
		switch c := token[i]; {
		case c == '[':
			i++
		case c == 'L':
			end := strings.IndexByte(token[i:], ';')
			if end < 0 {
				return token[i+1:], true
			}
			i += end + 1
		default:
			if _, ok := descriptor.PrimitiveName(c); !ok {
				return "", false
			}
			i++
		}
	}
	return "", false
}

func isDescriptorBoundary(c byte) bool {
	return c == ' ' || c == '\t' || c == '(' || c == ')'
}
