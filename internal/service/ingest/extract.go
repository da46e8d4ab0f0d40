package ingest

import (
	"regexp"
	"strings"
)

// ticketCodePattern matches something shaped like a ticket code in free
// text, optionally introduced by "ticket", "ticket id:", "regarding ticket"
// or a bare "#". The first alternative covers externally supplied codes
// (letters then a digit, "AB1234"); the second covers generated codes, which
// are "M" plus five hex characters and so may carry their digits late or not
// at all ("MABC12", "MABCDE"). False positives are harmless because callers
// only trust codes that name an existing ticket.
var ticketCodePattern = regexp.MustCompile(`(?i)(?:(?:regarding\s+)?ticket(?:\s+id)?\s*[:#]?\s*|#\s*)?\b([a-z]{1,3}[0-9][0-9a-z]{2,5}|m[0-9a-f]{5})\b`)

// ExtractTicketCode returns the first code-shaped token in the body,
// uppercased, or "" when nothing matches. Callers must still confirm the
// code names a real ticket before trusting it.
func ExtractTicketCode(body string) string {
	match := ticketCodePattern.FindStringSubmatch(body)
	if len(match) < 2 {
		return ""
	}
	return strings.ToUpper(match[1])
}
