package programs

import (
	"fmt"
	"strings"
)

// Placeholder is rendered for any missing program field
const Placeholder = "N/A"

// programSeparator joins formatted programs in a list
const programSeparator = "\n---\n\n"

// FormatProgram renders a program as a labeled text block. An index greater
// than zero adds a "N. " prefix for numbered lists.
func FormatProgram(p Program, index int) string {
	prefix := ""
	if index > 0 {
		prefix = fmt.Sprintf("%d. ", index)
	}

	field := func(key string) string {
		return p.FieldOr(key, Placeholder)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s**%s**\n", prefix, field("title"))
	fmt.Fprintf(&b, "- Category: %s\n", field("program_category"))
	fmt.Fprintf(&b, "- Date: %s\n", field("date"))
	fmt.Fprintf(&b, "- Time: %s\n", field("time"))
	fmt.Fprintf(&b, "- Location: %s, %s\n", field("address"), field("country"))
	fmt.Fprintf(&b, "- Fee: %s %s\n", p.FieldOr("currency", ""), field("amount"))
	fmt.Fprintf(&b, "- Language: %s\n", field("language"))
	fmt.Fprintf(&b, "- Gender: %s\n", field("gender"))
	fmt.Fprintf(&b, "- Online: %s\n", yesNo(p.Flag("is_online")))
	fmt.Fprintf(&b, "- With Sadhguru: %s\n", yesNo(p.Flag("is_sadhguru")))
	fmt.Fprintf(&b, "- Program URL: %s\n", field("program_url"))
	fmt.Fprintf(&b, "- Register: %s\n", field("register_url"))
	fmt.Fprintf(&b, "- Program ID: %s", field("program_id"))

	return b.String()
}

// FormatPrograms renders programs as a numbered list starting at 1
func FormatPrograms(programs []Program) string {
	blocks := make([]string, len(programs))
	for i, p := range programs {
		blocks[i] = FormatProgram(p, i+1)
	}
	return strings.Join(blocks, programSeparator)
}

// FormatNameList renders names as a bulleted list
func FormatNameList(names []string) string {
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = "- " + name
	}
	return strings.Join(lines, "\n")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
