package wrapper

import (
	"strings"

	"github.com/FabricCore/yarn-wrapper-gen/mapping"
)

// javadoc renders comment lines and parameter comments as a doc comment, or
// returns "" when there is nothing to say.
func javadoc(comment []string, params []mapping.Parameter) string {
	var tagged []mapping.Parameter
	for _, p := range params {
		if len(p.Comment) > 0 {
			tagged = append(tagged, p)
		}
	}
	if len(comment) == 0 && len(tagged) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("/**\n")
	for _, line := range comment {
		writeDocLine(&sb, line)
	}
	if len(comment) > 0 && len(tagged) > 0 {
		writeDocLine(&sb, "")
	}
	for _, p := range tagged {
		writeDocLine(&sb, strings.TrimRight("@param "+p.Name+" "+p.Comment[0], " "))
		for _, line := range p.Comment[1:] {
			writeDocLine(&sb, line)
		}
	}
	sb.WriteString(" */")
	return sb.String()
}

func writeDocLine(sb *strings.Builder, line string) {
	line = strings.ReplaceAll(line, "*/", "*&#47;")
	if line == "" {
		sb.WriteString(" *\n")
		return
	}
	sb.WriteString(" * ")
	sb.WriteString(line)
	sb.WriteString("\n")
}
