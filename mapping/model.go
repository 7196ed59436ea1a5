// Package mapping parses mapping units: the block of lines that maps one
// obfuscated class, and its fields, methods and parameters, to readable names.
package mapping

import "strings"

// ConstructorName is the label a mapping file gives instance initializers.
const ConstructorName = "<init>"

// Class is one parsed mapping unit. It is built once by Parse and only read
// afterwards.
type Class struct {
	Obfuscated []string
	Name       []string
	Comment    []string
	Members    []Member
	Line       int
}

// ObfuscatedName returns the slash-delimited obfuscated path, the form class
// references take inside descriptors.
func (c *Class) ObfuscatedName() string {
	return strings.Join(c.Obfuscated, "/")
}

// SourceName returns the dotted readable name.
func (c *Class) SourceName() string {
	return strings.Join(c.Name, ".")
}

func (c *Class) SimpleName() string {
	if len(c.Name) == 0 {
		return ""
	}
	return c.Name[len(c.Name)-1]
}

func (c *Class) Package() string {
	if len(c.Name) < 2 {
		return ""
	}
	return strings.Join(c.Name[:len(c.Name)-1], ".")
}

// HasPrefix reports whether the readable path starts with the given segments.
func (c *Class) HasPrefix(prefix []string) bool {
	if len(prefix) > len(c.Name) {
		return false
	}
	for i, seg := range prefix {
		if c.Name[i] != seg {
			return false
		}
	}
	return true
}

func (c *Class) Fields() []*Field {
	var fields []*Field
	for _, m := range c.Members {
		if f, ok := m.(*Field); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

func (c *Class) Methods() []*Method {
	var methods []*Method
	for _, m := range c.Members {
		if mm, ok := m.(*Method); ok {
			methods = append(methods, mm)
		}
	}
	return methods
}

// Member is either a *Field or a *Method.
type Member interface {
	Name() string
	ObfuscatedName() string
	Doc() []string
	DeclaredAt() int
	isMember()
}

type Field struct {
	Obfuscated string
	Label      string
	Descriptor string
	Comment    []string
	Line       int
}

func (f *Field) Name() string           { return f.Label }
func (f *Field) ObfuscatedName() string { return f.Obfuscated }
func (f *Field) Doc() []string          { return f.Comment }
func (f *Field) DeclaredAt() int        { return f.Line }
func (*Field) isMember()                {}

// Method keeps its parameter descriptors undecoded; Params is the text
// between the parentheses and Return the normalized return descriptor.
type Method struct {
	Obfuscated string
	Label      string
	Params     string
	Return     string
	Parameters []Parameter
	Comment    []string
	Line       int
}

func (m *Method) Name() string           { return m.Label }
func (m *Method) ObfuscatedName() string { return m.Obfuscated }
func (m *Method) Doc() []string          { return m.Comment }
func (m *Method) DeclaredAt() int        { return m.Line }
func (*Method) isMember()                {}

func (m *Method) IsConstructor() bool {
	return m.Label == ConstructorName
}

// ParameterNames returns the declared names in declaration order.
func (m *Method) ParameterNames() []string {
	names := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		names[i] = p.Name
	}
	return names
}

type Parameter struct {
	Slot    int
	Name    string
	Comment []string
	Line    int
}
