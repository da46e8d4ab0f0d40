package ingest

import "testing"

func TestExtractTicketCode(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"hash prefix", "Hi, ticket #AB1234 is still broken", "AB1234"},
		{"ticket id prefix", "Ticket ID: xy99887", "XY99887"},
		{"regarding prefix", "regarding ticket #M3F9A2, any update?", "M3F9A2"},
		{"hex code", "M3F9A2 has not been fixed", "M3F9A2"},
		{"hex code late digit", "update on MABC12 please", "MABC12"},
		{"hex code no digit", "ticket MABCDE was closed too early", "MABCDE"},
		{"lowercase normalized", "see ticket ab1234 please", "AB1234"},
		{"no code", "my car will not start", ""},
		{"digits only", "call me on 07700 900123", ""},
		{"too many letters", "ABCD1234 is a part number", ""},
		{"version token", "running app v2.0 since May", ""},
		{"empty body", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractTicketCode(tc.body)
			if got != tc.want {
				t.Fatalf("ExtractTicketCode(%q) = %q, want %q", tc.body, got, tc.want)
			}
		})
	}
}
