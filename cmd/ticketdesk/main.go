package main

import (
	"os"
	"strconv"
	"strings"

	"ticketdesk/internal/cli"
)

func isTicketID(s string) bool {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil && n > 0
}

func insertShow(argv []string, at int) []string {
	out := make([]string, 0, len(argv)+2)
	out = append(out, argv[:at]...)
	out = append(out, "tickets", "show")
	out = append(out, argv[at:]...)
	return out
}

// rewriteDirectTicketLookupArgs turns `ticketdesk <id>` into
// `ticketdesk tickets show <id>`. Cobra treats the first non-flag token as a
// subcommand, so argv is rewritten before parsing. Persistent flags may come
// first, so this finds the first positional token rather than argv[1].
func rewriteDirectTicketLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value, so an id is never
	// swallowed by mistake.
	valueFlags := map[string]bool{
		"--server":    true,
		"--config":    true,
		"--format":    true,
		"--log-level": true,
		"--timeout":   true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			// The subcommand has to precede "--" for cobra to see it.
			if i+1 < len(argv) && isTicketID(argv[i+1]) {
				return insertShow(argv, i)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if isTicketID(a) {
			return insertShow(argv, i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectTicketLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
