package emitter

import "strings"

// WriteLineComment writes desc as consecutive line comments, e.g. "/// " for
// Swift doc comments. Nothing is written for an empty description.
func WriteLineComment(b *strings.Builder, indent, prefix, desc string) {
	for _, line := range descLines(desc) {
		b.WriteString(indent)
		b.WriteString(strings.TrimRight(prefix+line, " "))
		b.WriteString("\n")
	}
}

// WriteBlockComment writes desc as a /** */ doc comment.
func WriteBlockComment(b *strings.Builder, indent, desc string) {
	lines := descLines(desc)
	switch len(lines) {
	case 0:
		return
	case 1:
		b.WriteString(indent + "/** " + escapeBlock(lines[0]) + " */\n")
		return
	}
	b.WriteString(indent + "/**\n")
	for _, line := range lines {
		b.WriteString(strings.TrimRight(indent+" * "+escapeBlock(line), " "))
		b.WriteString("\n")
	}
	b.WriteString(indent + " */\n")
}

func descLines(desc string) []string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return nil
	}
	lines := strings.Split(desc, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return lines
}

func escapeBlock(s string) string {
	return strings.ReplaceAll(s, "*/", "*\\/")
}
