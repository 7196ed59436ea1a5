package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/FabricCore/yarn-wrapper-gen/mapping"
)

// LineEncoder writes one tab-separated record per class, field, method and
// parameter, in declaration order.
type LineEncoder struct {
	w     io.Writer
	class *mapping.Class
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(class *mapping.Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class

	fmt.Fprintf(&sb, "class\t%s\t%s\t%s\n", c.ObfuscatedName(), c.SourceName(), commentStr(c.Comment))

	for _, m := range c.Members {
		switch m := m.(type) {
		case *mapping.Field:
			fmt.Fprintf(&sb, "field\t%s\t%s\t%s\t%s\n",
				m.Obfuscated,
				m.Label,
				m.Descriptor,
				commentStr(m.Comment),
			)
		case *mapping.Method:
			fmt.Fprintf(&sb, "method\t%s\t%s\t(%s)%s\t%s\n",
				m.Obfuscated,
				m.Label,
				m.Params,
				m.Return,
				commentStr(m.Comment),
			)
			for _, p := range m.Parameters {
				fmt.Fprintf(&sb, "arg\t%d\t%s\t%s\n", p.Slot, p.Name, commentStr(p.Comment))
			}
		}
	}

	return []byte(sb.String()), nil
}

func commentStr(lines []string) string {
	return orDash(strings.Join(lines, `\n`))
}
