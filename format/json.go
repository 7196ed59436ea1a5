package format

import (
	"encoding/json"
	"io"

	"github.com/FabricCore/yarn-wrapper-gen/descriptor"
	"github.com/FabricCore/yarn-wrapper-gen/mapping"
)

type JSONEncoder struct {
	w     io.Writer
	class *mapping.Class
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(class *mapping.Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildClassData()
	return json.MarshalIndent(data, "", "  ")
}

type jsonClass struct {
	Obfuscated string       `json:"obfuscated"`
	Name       string       `json:"name"`
	SimpleName string       `json:"simpleName"`
	Package    string       `json:"package,omitempty"`
	Line       int          `json:"line"`
	Comment    []string     `json:"comment,omitempty"`
	Fields     []jsonField  `json:"fields,omitempty"`
	Methods    []jsonMethod `json:"methods,omitempty"`
}

type jsonField struct {
	Obfuscated string   `json:"obfuscated"`
	Name       string   `json:"name"`
	Type       jsonType `json:"type"`
	Line       int      `json:"line"`
	Comment    []string `json:"comment,omitempty"`
}

type jsonMethod struct {
	Obfuscated  string          `json:"obfuscated"`
	Name        string          `json:"name"`
	Constructor bool            `json:"constructor,omitempty"`
	ReturnType  jsonType        `json:"returnType"`
	Parameters  []jsonParameter `json:"parameters,omitempty"`
	Line        int             `json:"line"`
	Comment     []string        `json:"comment,omitempty"`
}

type jsonParameter struct {
	Slot    int      `json:"slot"`
	Name    string   `json:"name"`
	Type    jsonType `json:"type"`
	Comment []string `json:"comment,omitempty"`
}

type jsonType struct {
	Descriptor string `json:"descriptor"`
	Name       string `json:"name,omitempty"`
	ArrayDepth int    `json:"arrayDepth,omitempty"`
}

func (e *JSONEncoder) buildClassData() jsonClass {
	c := e.class
	data := jsonClass{
		Obfuscated: c.ObfuscatedName(),
		Name:       c.SourceName(),
		SimpleName: c.SimpleName(),
		Package:    c.Package(),
		Line:       c.Line,
		Comment:    c.Comment,
	}

	for _, f := range c.Fields() {
		data.Fields = append(data.Fields, jsonField{
			Obfuscated: f.Obfuscated,
			Name:       f.Label,
			Type:       buildTypeData(f.Descriptor),
			Line:       f.Line,
			Comment:    f.Comment,
		})
	}

	for _, m := range c.Methods() {
		jm := jsonMethod{
			Obfuscated:  m.Obfuscated,
			Name:        m.Label,
			Constructor: m.IsConstructor(),
			ReturnType:  buildTypeData(m.Return),
			Line:        m.Line,
			Comment:     m.Comment,
		}
		tokens, _ := descriptor.Split(m.Params)
		for i, p := range m.Parameters {
			jp := jsonParameter{Slot: p.Slot, Name: p.Name, Comment: p.Comment}
			if i < len(tokens) {
				jp.Type = buildTypeData(tokens[i])
			}
			jm.Parameters = append(jm.Parameters, jp)
		}
		data.Methods = append(data.Methods, jm)
	}

	return data
}

// buildTypeData keeps the raw descriptor even when it does not decode.
func buildTypeData(token string) jsonType {
	t := jsonType{Descriptor: token}
	ft, err := descriptor.Parse(token)
	if err != nil {
		return t
	}
	t.Name = ft.String()
	t.ArrayDepth = ft.ArrayDepth
	return t
}
