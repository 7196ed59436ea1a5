package wrapper

import "strings"

// Rule rewrites From to To in generated package and type names.
type Rule struct {
	From string
	To   string
}

// Repackager applies rules in order. By default each rule is a literal
// substring replacement over the whole name, so a rule may rename a prefix
// shared by many packages. With segment matching a rule only fires on whole
// dot-delimited segments: "net.minecraft" matches "a.net.minecraft.b" but not
// "a.net.minecraftx".
type Repackager struct {
	rules    []Rule
	segments bool
}

func NewRepackager(rules []Rule, segments bool) *Repackager {
	return &Repackager{rules: rules, segments: segments}
}

func (r *Repackager) Apply(name string) string {
	if r == nil {
		return name
	}
	for _, rule := range r.rules {
		if rule.From == "" {
			continue
		}
		if r.segments {
			name = replaceSegments(name, rule.From, rule.To)
		} else {
			name = strings.ReplaceAll(name, rule.From, rule.To)
		}
	}
	return name
}

func replaceSegments(name, from, to string) string {
	parts := strings.Split(name, ".")
	want := strings.Split(from, ".")

	var out []string
	for i := 0; i < len(parts); {
		if i+len(want) <= len(parts) && equalSegments(parts[i:i+len(want)], want) {
			if to != "" {
				out = append(out, strings.Split(to, ".")...)
			}
			i += len(want)
			continue
		}
		out = append(out, parts[i])
		i++
	}
	return strings.Join(out, ".")
}

func equalSegments(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
