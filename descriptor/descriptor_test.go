package descriptor

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"I", []string{"I"}},
		{"IJZ", []string{"I", "J", "Z"}},
		{"Ljava/lang/String;", []string{"Ljava/lang/String;"}},
		{"ILjava/lang/String;Z", []string{"I", "Ljava/lang/String;", "Z"}},
		{"[I", []string{"[I"}},
		{"[[ILa/b;", []string{"[[I", "La/b;"}},
		{"[La/b;D", []string{"[La/b;", "D"}},
		// B, C, D... inside a class name belong to the object token
		{"LBCD/Foo;B", []string{"LBCD/Foo;", "B"}},
		{"La/b$1;", []string{"La/b$1;"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Split(tt.in)
			if err != nil {
				t.Fatalf("Split(%q) error: %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if joined := strings.Join(got, ""); joined != tt.in {
				t.Errorf("tokens of %q rejoin to %q", tt.in, joined)
			}
		})
	}
}

func TestSplitErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"X", ErrUnknownToken},
		{"IQ", ErrUnknownToken},
		{"La/b", ErrMalformed},
		{"[", ErrMalformed},
		{"I[[", ErrMalformed},
		{"L;", ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Split(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("Split(%q) error = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("primitive", func(t *testing.T) {
		ft, err := Parse("J")
		if err != nil {
			t.Fatal(err)
		}
		if !ft.IsPrimitive() || ft.BaseType != "long" {
			t.Errorf("Parse(J) = %+v, want primitive long", ft)
		}
	})

	t.Run("object", func(t *testing.T) {
		ft, err := Parse("Ljava/util/List;")
		if err != nil {
			t.Fatal(err)
		}
		if ft.ClassName != "java/util/List" {
			t.Errorf("ClassName = %q, want %q", ft.ClassName, "java/util/List")
		}
		if got := ft.String(); got != "java.util.List" {
			t.Errorf("String() = %q, want %q", got, "java.util.List")
		}
	})

	t.Run("nested array", func(t *testing.T) {
		ft, err := Parse("[[La/b$C;")
		if err != nil {
			t.Fatal(err)
		}
		if ft.ArrayDepth != 2 || !ft.IsNested() || !ft.IsReference() {
			t.Errorf("Parse([[La/b$C;) = %+v", ft)
		}
		if got := ft.String(); got != "a.b$C[][]" {
			t.Errorf("String() = %q, want %q", got, "a.b$C[][]")
		}
	})

	t.Run("void", func(t *testing.T) {
		ft, err := Parse("V")
		if err != nil {
			t.Fatal(err)
		}
		if !ft.IsVoid() {
			t.Error("Expected IsVoid() to be true")
		}
		if _, err := Parse("[V"); !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse([V) error = %v, want ErrMalformed", err)
		}
	})

	t.Run("more than one token", func(t *testing.T) {
		if _, err := Parse("II"); !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse(II) error = %v, want ErrMalformed", err)
		}
	})
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		sig        string
		wantParams string
		wantRet    string
	}{
		{"()V", "", "V"},
		{"(I)V;", "I", "V"},
		{"(ILa/b;)La/c;", "ILa/b;", "La/c;"},
		{"([I)La/c", "[I", "La/c;"},
	}

	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			params, ret, err := ParseMethod(tt.sig)
			if err != nil {
				t.Fatalf("ParseMethod(%q) error: %v", tt.sig, err)
			}
			if params != tt.wantParams || ret != tt.wantRet {
				t.Errorf("ParseMethod(%q) = (%q, %q), want (%q, %q)", tt.sig, params, ret, tt.wantParams, tt.wantRet)
			}
		})
	}

	for _, bad := range []string{"I)V", "(I", "(I)", "(I);"} {
		if _, _, err := ParseMethod(bad); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseMethod(%q) error = %v, want ErrMalformed", bad, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"I;":                 "I",
		"I":                  "I",
		"Ljava/lang/String;": "Ljava/lang/String;",
		"Ljava/lang/String":  "Ljava/lang/String;",
		"[[La/b;;":           "[[La/b;",
		" Z; ":               "Z",
		"":                   "",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
