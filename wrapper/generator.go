// Package wrapper generates Java wrapper classes from mapping units. A wrapper
// holds an instance of the mapped class in wrapperContained and forwards to
// it, converting between wrappers and raw values for every type that belongs
// to the wrapped namespace.
package wrapper

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/FabricCore/yarn-wrapper-gen/descriptor"
	"github.com/FabricCore/yarn-wrapper-gen/mapping"
	"github.com/Masterminds/sprig/v3"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("wrapgen.wrapper")

const unitSource = `package {{ .Package }};
{{ with .Doc }}
{{ . }}{{ end }}
public class {{ .SimpleName }} {
    public {{ .Original }} wrapperContained;

    public {{ .SimpleName }}({{ .Original }} wrapperContained) { this.wrapperContained = wrapperContained; }
{{- range .Members }}

{{ indent 4 . }}
{{- end }}
}
`

var unitTemplate = template.Must(template.New("unit").Funcs(sprig.TxtFuncMap()).Parse(unitSource))

type unitData struct {
	Package    string
	SimpleName string
	Original   string
	Doc        string
	Members    []string
}

type Options struct {
	// Package prefixes every generated package.
	Package string
	// Namespace is the readable path prefix of classes that get wrapped,
	// e.g. ["net", "minecraft"].
	Namespace        []string
	Repackage        []Rule
	SegmentRepackage bool
	Javadoc          bool
}

type Generator struct {
	opts     Options
	resolver *Resolver
}

// NewGenerator returns a generator resolving cross references through lookup.
// lookup must not change while the generator is in use.
func NewGenerator(lookup ClassLookup, opts Options) *Generator {
	return &Generator{
		opts: opts,
		resolver: &Resolver{
			Lookup:     lookup,
			Namespace:  opts.Namespace,
			Package:    opts.Package,
			Repackager: NewRepackager(opts.Repackage, opts.SegmentRepackage),
		},
	}
}

func (g *Generator) Resolver() *Resolver {
	return g.resolver
}

// Generate renders the compilation unit of the wrapper for c.
func (g *Generator) Generate(c *mapping.Class) ([]byte, error) {
	data := unitData{
		Package:    g.resolver.WrapperPackage(c),
		SimpleName: c.SimpleName(),
		Original:   c.SourceName(),
	}
	if g.opts.Javadoc {
		data.Doc = javadoc(c.Comment, nil)
	}

	for _, m := range c.Members {
		text, err := g.RenderMember(c, m)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %s: %w", c.ObfuscatedName(), m.DeclaredAt(), m.Name(), err)
		}
		data.Members = append(data.Members, text)
	}

	var buf bytes.Buffer
	if err := unitTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%s: %w", c.ObfuscatedName(), err)
	}
	return buf.Bytes(), nil
}

// OutputPath is the wrapper's file path relative to the output root.
func (g *Generator) OutputPath(c *mapping.Class) string {
	parts := strings.Split(g.resolver.WrapperPackage(c), ".")
	return filepath.Join(append(parts, c.SimpleName()+".java")...)
}

// RenderMember renders the wrapper code for one member of c, preceded by its
// doc comment when Javadoc is enabled.
func (g *Generator) RenderMember(c *mapping.Class, m mapping.Member) (string, error) {
	var code, doc string
	var err error
	switch m := m.(type) {
	case *mapping.Field:
		code, err = g.renderField(m)
		doc = javadoc(m.Comment, nil)
	case *mapping.Method:
		code, err = g.renderMethod(c, m)
		doc = javadoc(m.Comment, m.Parameters)
	default:
		return "", fmt.Errorf("unsupported member %T", m)
	}
	if err != nil {
		return "", err
	}
	if g.opts.Javadoc && doc != "" {
		return doc + "\n" + code, nil
	}
	return code, nil
}

func (g *Generator) renderField(f *mapping.Field) (string, error) {
	t, err := g.resolver.Resolve(f.Descriptor, true)
	if err != nil {
		return "", err
	}
	log.Debugf("field %s: %s (wrapped=%t)", f.Label, t.Name, t.Wrapped)

	if t.Wrapped {
		return fmt.Sprintf("public %[1]s %[2]s() { return new %[1]s(wrapperContained.%[2]s); }\n"+
			"public void %[2]s(%[1]s value) { wrapperContained.%[2]s = value.wrapperContained; }", t.Name, f.Label), nil
	}
	return fmt.Sprintf("public %[1]s %[2]s() { return wrapperContained.%[2]s; }\n"+
		"public void %[2]s(%[1]s value) { wrapperContained.%[2]s = value; }", t.Name, f.Label), nil
}

func (g *Generator) renderMethod(c *mapping.Class, m *mapping.Method) (string, error) {
	tokens, err := descriptor.Split(m.Params)
	if err != nil {
		return "", err
	}
	if len(tokens) != len(m.Parameters) {
		return "", fmt.Errorf("%w: %d names for %d parameters", mapping.ErrAmbiguousArgumentCount, len(m.Parameters), len(tokens))
	}

	params := make([]string, len(tokens))
	args := make([]string, len(tokens))
	for i, token := range tokens {
		t, err := g.resolver.Resolve(token, true)
		if err != nil {
			return "", err
		}
		name := m.Parameters[i].Name
		params[i] = t.Name + " " + name
		args[i] = name
		if t.Wrapped {
			args[i] = name + ".wrapperContained"
		}
	}
	paramList := strings.Join(params, ", ")
	argList := strings.Join(args, ", ")

	if m.IsConstructor() {
		return fmt.Sprintf("public %s(%s) { this.wrapperContained = new %s(%s); }",
			c.SimpleName(), paramList, c.SourceName(), argList), nil
	}

	ret, err := g.resolver.Resolve(m.Return, true)
	if err != nil {
		return "", err
	}
	log.Debugf("method %s(%s): %s (wrapped=%t)", m.Label, paramList, ret.Name, ret.Wrapped)

	call := fmt.Sprintf("wrapperContained.%s(%s)", m.Label, argList)
	var body string
	switch {
	case ret.IsVoid():
		body = call + ";"
	case ret.Wrapped:
		body = fmt.Sprintf("return new %s(%s);", ret.Name, call)
	default:
		body = "return " + call + ";"
	}
	return fmt.Sprintf("public %s %s(%s) { %s }", ret.Name, m.Label, paramList, body), nil
}
