package format

import (
	"bytes"
	"io"

	"github.com/FabricCore/yarn-wrapper-gen/mapping"
	"github.com/davecgh/go-spew/spew"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// SpewEncoder dumps the parsed record verbatim, Go types included.
type SpewEncoder struct {
	w     io.Writer
	class *mapping.Class
}

func NewSpewEncoder(w io.Writer) *SpewEncoder {
	return &SpewEncoder{w: w}
}

func (e *SpewEncoder) Encode(class *mapping.Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *SpewEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	spewConfig.Fdump(&buf, e.class)
	return buf.Bytes(), nil
}
