package wrapper

import (
	"fmt"
	"strings"

	"github.com/FabricCore/yarn-wrapper-gen/descriptor"
	"github.com/FabricCore/yarn-wrapper-gen/mapping"
)

// ClassLookup finds a mapping unit by its slash-delimited obfuscated path.
// *index.Index implements it.
type ClassLookup interface {
	GetString(path string) *mapping.Class
}

// Type is a resolved Java type. Wrapped is set when the name refers to a
// generated wrapper, so values of the type cross the delegate boundary
// through wrapperContained.
type Type struct {
	Name    string
	Wrapped bool
}

func (t Type) IsVoid() bool {
	return t.Name == "void"
}

// Resolver turns descriptor tokens into Java type names.
type Resolver struct {
	Lookup     ClassLookup
	Namespace  []string
	Package    string
	Repackager *Repackager
}

// Resolve renders one token. With wrap set, a class under the namespace
// resolves to its wrapper; array elements are never wrapped.
func (r *Resolver) Resolve(token string, wrap bool) (Type, error) {
	if token == "" {
		return Type{}, fmt.Errorf("%w: empty type", descriptor.ErrMalformed)
	}

	switch c := token[0]; c {
	case 'L':
		if !strings.HasSuffix(token, ";") || len(token) < 3 {
			return Type{}, fmt.Errorf("%w: %q", descriptor.ErrMalformed, token)
		}
		return r.resolveClass(token[1:len(token)-1], wrap), nil
	case '[':
		elem, err := r.Resolve(token[1:], false)
		if err != nil {
			return Type{}, err
		}
		return Type{Name: elem.Name + "[]"}, nil
	default:
		if name, ok := descriptor.PrimitiveName(c); ok && len(token) == 1 {
			return Type{Name: name}, nil
		}
		return Type{}, fmt.Errorf("%w %q", descriptor.ErrUnknownToken, token)
	}
}

func (r *Resolver) resolveClass(internal string, wrap bool) Type {
	// Nested and synthetic classes never get wrappers of their own.
	if strings.IndexByte(internal, descriptor.InnerClassSeparator) >= 0 {
		return Type{Name: "Object"}
	}

	var class *mapping.Class
	if r.Lookup != nil {
		class = r.Lookup.GetString(internal)
	}
	if class == nil {
		return Type{Name: descriptor.InternalToSourceName(internal)}
	}
	if wrap && class.HasPrefix(r.Namespace) {
		return Type{Name: r.WrapperName(class), Wrapped: true}
	}
	return Type{Name: class.SourceName()}
}

// WrapperName is the fully qualified name of the wrapper generated for class.
func (r *Resolver) WrapperName(class *mapping.Class) string {
	return r.Repackager.Apply(r.Package + "." + class.SourceName())
}

// WrapperPackage is the package the wrapper for class is declared in.
func (r *Resolver) WrapperPackage(class *mapping.Class) string {
	if pkg := class.Package(); pkg != "" {
		return r.Repackager.Apply(r.Package + "." + pkg)
	}
	return r.Repackager.Apply(r.Package)
}
