package listings

import "testing"

func TestBandLabel(t *testing.T) {
	tests := []struct {
		band int
		want string
	}{
		{0, "0.0-0.2"},
		{1, "0.2-0.4"},
		{2, "0.4-0.6"},
		{3, "0.6-0.8"},
		{4, "0.8-1.0"},
	}

	for _, tt := range tests {
		if got := bandLabel(tt.band); got != tt.want {
			t.Errorf("bandLabel(%d) = %q, want %q", tt.band, got, tt.want)
		}
	}
}
