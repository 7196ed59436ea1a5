// Package descriptor decodes JVM field and method descriptors as they appear
// in mapping files.
package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownToken = errors.New("unknown descriptor token")
	ErrMalformed    = errors.New("malformed descriptor")
)

// InnerClassSeparator joins an outer class name to a nested or synthetic one.
const InnerClassSeparator = '$'

var primitives = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
	'V': "void",
}

// PrimitiveName returns the Java keyword for a base type character.
func PrimitiveName(c byte) (string, bool) {
	name, ok := primitives[c]
	return name, ok
}

type FieldType struct {
	BaseType   string
	ClassName  string
	ArrayDepth int
}

func (ft *FieldType) String() string {
	var sb strings.Builder
	if ft.BaseType != "" {
		sb.WriteString(ft.BaseType)
	} else if ft.ClassName != "" {
		sb.WriteString(InternalToSourceName(ft.ClassName))
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (ft *FieldType) IsArray() bool {
	return ft.ArrayDepth > 0
}

func (ft *FieldType) IsPrimitive() bool {
	return ft.BaseType != "" && ft.ArrayDepth == 0
}

func (ft *FieldType) IsVoid() bool {
	return ft.BaseType == "void" && ft.ArrayDepth == 0
}

func (ft *FieldType) IsReference() bool {
	return ft.ClassName != "" || ft.ArrayDepth > 0
}

// IsNested reports whether the type names a nested or synthetic class.
func (ft *FieldType) IsNested() bool {
	return strings.IndexByte(ft.ClassName, InnerClassSeparator) >= 0
}

// Split breaks a run of descriptors, such as a parameter list without its
// parentheses, into one token per type. Object tokens span from L to the
// next semicolon; an array token is its [ prefix plus one element token.
func Split(s string) ([]string, error) {
	var tokens []string
	for i := 0; i < len(s); {
		n, err := tokenLen(s, i)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, s[i:i+n])
		i += n
	}
	return tokens, nil
}

// Parse decodes exactly one descriptor token.
func Parse(token string) (*FieldType, error) {
	n, err := tokenLen(token, 0)
	if err != nil {
		return nil, err
	}
	if n != len(token) {
		return nil, fmt.Errorf("%w: trailing %q after %q", ErrMalformed, token[n:], token[:n])
	}

	ft := &FieldType{}
	i := 0
	for token[i] == '[' {
		ft.ArrayDepth++
		i++
	}
	if token[i] == 'L' {
		ft.ClassName = token[i+1 : len(token)-1]
		return ft, nil
	}
	ft.BaseType = primitives[token[i]]
	if ft.BaseType == "void" && ft.ArrayDepth > 0 {
		return nil, fmt.Errorf("%w: array of void %q", ErrMalformed, token)
	}
	return ft, nil
}

// ParseMethod splits "(params)return" into its parameter run and its
// normalized return descriptor.
func ParseMethod(sig string) (params, ret string, err error) {
	if !strings.HasPrefix(sig, "(") {
		return "", "", fmt.Errorf("%w: method descriptor %q does not start with (", ErrMalformed, sig)
	}
	params, ret, ok := strings.Cut(sig[1:], ")")
	if !ok {
		return "", "", fmt.Errorf("%w: method descriptor %q has no )", ErrMalformed, sig)
	}
	ret = Normalize(ret)
	if ret == "" {
		return "", "", fmt.Errorf("%w: method descriptor %q has no return type", ErrMalformed, sig)
	}
	return params, ret, nil
}

// Normalize turns a descriptor as written in a mapping line into canonical
// form. Mapping lines may close any descriptor with a semicolon, or drop the
// one an object descriptor needs.
func Normalize(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), ";")
	if strings.HasPrefix(strings.TrimLeft(s, "["), "L") {
		s += ";"
	}
	return s
}

func tokenLen(s string, start int) (int, error) {
	i := start
	for i < len(s) && s[i] == '[' {
		i++
	}
	if i >= len(s) {
		return 0, fmt.Errorf("%w: %q ends inside an array prefix", ErrMalformed, s)
	}

	c := s[i]
	if _, ok := primitives[c]; ok {
		return i - start + 1, nil
	}
	if c != 'L' {
		return 0, fmt.Errorf("%w %q in %q", ErrUnknownToken, c, s)
	}
	semicolon := strings.IndexByte(s[i:], ';')
	if semicolon == -1 {
		return 0, fmt.Errorf("%w: unterminated object type in %q", ErrMalformed, s)
	}
	if semicolon == 1 {
		return 0, fmt.Errorf("%w: empty class name in %q", ErrMalformed, s)
	}
	return i - start + semicolon + 1, nil
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
