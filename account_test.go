package snowball

import "testing"

func TestParseAccountKind(t *testing.T) {
	tests := []struct {
		in      string
		want    AccountKind
		wantErr bool
	}{
		{"retirement", Retirement, false},
		{"PPK", Retirement, false},
		{" ike ", Brokerage, false},
		{"Crypto", Crypto, false},
		{"cash", Cash, false},
		{"bonds", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAccountKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAccountKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAccountKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAccountKind_Active(t *testing.T) {
	for _, k := range AccountKinds {
		if got, want := k.Active(), k != Retirement; got != want {
			t.Errorf("%v.Active() = %v, want %v", k, got, want)
		}
	}
}
