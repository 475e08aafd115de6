package numlit

import "testing"

func TestParseInt(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{"decimal", "42", 42, false},
		{"negative decimal", "-7", -7, false},
		{"explicit positive", "+5", 5, false},
		{"hex lower", "0x1F", 31, false},
		{"hex upper prefix", "0XFF", 255, false},
		{"octal", "017", 15, false},
		{"zero", "0", 0, false},
		{"empty", "", 0, true},
		{"garbage", "0xZZ", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInt(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseInt(%q): expected error, got %d", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInt(%q): unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseInt(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
