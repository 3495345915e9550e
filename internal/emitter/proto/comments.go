package proto

import (
	"strings"

	"github.com/jhump/protoreflect/v2/protobuilder"
)

// comment turns a schema description into a leading proto comment. Blank
// lines stay blank so the printed file has no trailing whitespace.
func comment(desc string) protobuilder.Comments {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return protobuilder.Comments{}
	}
	var b strings.Builder
	for _, line := range strings.Split(desc, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line != "" {
			b.WriteByte(' ')
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	return protobuilder.Comments{LeadingComment: b.String()}
}
