package mail

import (
	"fmt"
	nmail "net/mail"
	"strings"
)

// ParseSender extracts the display name and address from a From header
// value. Both the bare form ("a@b.com") and the display form
// (`"A B" <a@b.com>`) are supported. The name is empty when absent.
// A value whose address part contains no "@" is rejected.
func ParseSender(raw string) (name, addr string, err error) {
	raw = strings.TrimSpace(raw)

	if parsed, perr := nmail.ParseAddress(raw); perr == nil {
		name, addr = parsed.Name, parsed.Address
	} else if strings.Contains(raw, "<") && strings.Contains(raw, ">") {
		// Lenient fallback for headers net/mail refuses, e.g. an
		// unquoted display name containing punctuation.
		start := strings.LastIndex(raw, "<")
		end := strings.LastIndex(raw, ">")
		if start < end {
			addr = strings.TrimSpace(raw[start+1 : end])
			name = strings.Trim(strings.TrimSpace(raw[:start]), `"`)
		}
	} else {
		addr = strings.Trim(raw, `"`)
	}

	if addr == "" || !strings.Contains(addr, "@") {
		return "", "", fmt.Errorf("cannot parse sender address from %q", raw)
	}

	return name, addr, nil
}
