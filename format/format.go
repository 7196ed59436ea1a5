// Package format renders parsed mapping units for inspection.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/FabricCore/yarn-wrapper-gen/mapping"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(class *mapping.Class) error
}

// Names lists the formats accepted by New.
var Names = []string{"line", "json", "spew"}

func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "line", "":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "spew":
		return NewSpewEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %v)", name, Names)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
