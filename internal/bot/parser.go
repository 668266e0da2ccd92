package bot

import (
	"strconv"
	"strings"
)

// Kind enumerates every command the bot accepts. Unrecognized input maps to
// KindHelp, so dispatch is an exhaustive switch with no string fallthrough.
type Kind int

const (
	KindHelp Kind = iota
	KindPing
	KindCategories
	KindPackages
	KindAddPackage
	KindEditPackage
	KindDeletePackage
	KindEditPayment
	KindRegistered
	KindOrders
	KindComplete
	KindFail
)

var kinds = map[string]Kind{
	"/ping":          KindPing,
	"/categories":    KindCategories,
	"/packages":      KindPackages,
	"/addpackage":    KindAddPackage,
	"/editpackage":   KindEditPackage,
	"/deletepackage": KindDeletePackage,
	"/editpayment":   KindEditPayment,
	"/registered":    KindRegistered,
	"/orders":        KindOrders,
	"/complete":      KindComplete,
	"/fail":          KindFail,
}

// Command is one parsed inbound message.
type Command struct {
	Kind Kind
	Args string // remainder of the first line after the command token

	// Bulk is set when the message spans multiple lines; Lines then holds
	// the non-empty lines after the first.
	Bulk  bool
	Lines []string
}

// Parse splits raw message text into its command kind and arguments. The
// command token is matched case-insensitively.
func Parse(text string) Command {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	head := strings.TrimSpace(lines[0])

	token, args := head, ""
	if i := strings.IndexAny(head, " \t"); i >= 0 {
		token, args = head[:i], strings.TrimSpace(head[i+1:])
	}

	kind, ok := kinds[strings.ToLower(token)]
	if !ok {
		return Command{Kind: KindHelp}
	}

	cmd := Command{Kind: kind, Args: args}
	for _, line := range lines[1:] {
		if line = strings.TrimSpace(line); line != "" {
			cmd.Bulk = true
			cmd.Lines = append(cmd.Lines, line)
		}
	}
	return cmd
}

// splitPipe cuts s on '|' into exactly want trimmed segments. An empty
// segment fails the split the same as a wrong count.
func splitPipe(s string, want int) ([]string, bool) {
	parts := strings.Split(s, "|")
	if len(parts) != want {
		return nil, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return nil, false
		}
	}
	return parts, true
}

func parsePrice(s string) (float64, bool) {
	p, err := strconv.ParseFloat(s, 64)
	return p, err == nil
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
