package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateTicketCode returns a new ticket code using the stable M prefix
// followed by the first five hex characters of a UUID, uppercased. Codes
// issued by the legacy system use the same format so references in old
// email threads keep resolving.
func GenerateTicketCode() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "M" + strings.ToUpper(hex[:5])
}
