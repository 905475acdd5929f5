package lead

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hackeyzlife02/elfsight-hcp-webhook/internal/form"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// BuildNote renders the private audit note attached to every created lead:
// one "<FieldName>: <Value>" line per submitted raw field, in submission
// order, followed by any warnings accumulated during processing. Output is
// deterministic for a given submission.
func BuildNote(sub *form.Submission, matchType string, warnings []string) string {
	var b strings.Builder
	b.WriteString("=== Website Form Submission ===\n")

	for _, f := range sub.Fields {
		if f.Value == "" {
			continue
		}
		name := titleCaser.String(strings.ReplaceAll(strings.TrimSpace(f.Name), "_", " "))
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(f.Value)
		b.WriteString("\n")
	}

	b.WriteString("\nMatch Type: ")
	b.WriteString(matchType)
	b.WriteString("\n")

	if len(warnings) > 0 {
		b.WriteString("\nWARNINGS:\n")
		for _, w := range warnings {
			b.WriteString("  - ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
