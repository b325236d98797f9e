package mail

import "testing"

func TestParseSender(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantName string
		wantAddr string
		wantErr  bool
	}{
		{
			name:     "display name form",
			raw:      `"A B" <a@b.com>`,
			wantName: "A B",
			wantAddr: "a@b.com",
		},
		{
			name:     "bare address",
			raw:      "plain@b.com",
			wantAddr: "plain@b.com",
		},
		{
			name:    "no at sign",
			raw:     `"No At Sign"`,
			wantErr: true,
		},
		{
			name:     "unquoted display name",
			raw:      "Jane Doe <jane@example.com>",
			wantName: "Jane Doe",
			wantAddr: "jane@example.com",
		},
		{
			name:     "angle brackets without name",
			raw:      "<support@example.com>",
			wantAddr: "support@example.com",
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
		{
			name:     "surrounding whitespace",
			raw:      "  plain@b.com  ",
			wantAddr: "plain@b.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, addr, err := ParseSender(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSender(%q) expected error, got (%q, %q)",
						tt.raw, name, addr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSender(%q) error = %v", tt.raw, err)
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if addr != tt.wantAddr {
				t.Errorf("addr = %q, want %q", addr, tt.wantAddr)
			}
		})
	}
}
