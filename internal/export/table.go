package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// MarkdownTable builds a Profile/Description table with one row per profile.
// The description column repeats the key so it can be edited by hand later.
func MarkdownTable(profiles []string) string {
	var sb strings.Builder
	sb.WriteString("| Profile | Description |\n")
	sb.WriteString("| ------- | ----------- |\n")
	for _, p := range profiles {
		sb.WriteString(fmt.Sprintf("| `%s` | `%s` |\n", p, p))
	}
	return sb.String()
}

// WriteTable writes text to stdout when output is "" or "-", else to the
// named file.
func WriteTable(text, output string, stdout io.Writer) error {
	if output == "" || output == "-" {
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		if _, err := io.WriteString(stdout, text); err != nil {
			return goerr.Wrap(err, "failed to write table")
		}
		return nil
	}

	if err := os.WriteFile(output, []byte(text), 0644); err != nil {
		return goerr.Wrap(err, "failed to write output file", goerr.V("path", output))
	}
	return nil
}
