package recovery

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseGroups(t *testing.T) {
	got, err := ParseGroups("one:1/1, two:1/1,fam:2/4,fren:3/5,")
	if err != nil {
		t.Fatalf("ParseGroups() error: %v", err)
	}
	if !reflect.DeepEqual(got, exampleGroups) {
		t.Errorf("ParseGroups() = %+v, want %+v", got, exampleGroups)
	}

	for _, bad := range []string{"", "one", "one:1", "one:x/2", "one:1/y", ":1/1", "a:1/1,a:2/3"} {
		if _, err := ParseGroups(bad); !errors.Is(err, ErrInvalidGroupSpec) {
			t.Errorf("ParseGroups(%q) error = %v, want ErrInvalidGroupSpec", bad, err)
		}
	}
}

func TestParseCryptopath(t *testing.T) {
	tests := []struct {
		in   string
		want Cryptopath
	}{
		{"ETH", Cryptopath{Currency: "ETH"}},
		{"btc:m/84'/0'/0'/0/0", Cryptopath{Currency: "BTC", Path: "m/84'/0'/0'/0/0"}},
		{"BTC:m/44'/0'/0'/0/0:legacy", Cryptopath{Currency: "BTC", Path: "m/44'/0'/0'/0/0", Format: "legacy"}},
		{"LTC::segwit", Cryptopath{Currency: "LTC", Format: "segwit"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCryptopath(tt.in)
			if err != nil {
				t.Fatalf("ParseCryptopath() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseCryptopath() = %+v, want %+v", got, tt.want)
			}
			back, err := ParseCryptopath(got.String())
			if err != nil || back != got {
				t.Errorf("String() round trip = %+v, %v", back, err)
			}
		})
	}

	for _, bad := range []string{"", "XMR", "BTC:m/x", "BTC:m/0:p2tr", "BTC:m/0:legacy:extra"} {
		if _, err := ParseCryptopath(bad); !errors.Is(err, ErrInvalidCryptopath) {
			t.Errorf("ParseCryptopath(%q) error = %v, want ErrInvalidCryptopath", bad, err)
		}
	}
}

func TestParseCryptopaths(t *testing.T) {
	got, err := ParseCryptopaths("ETH:m/44'/60'/0'/0/0, BTC")
	if err != nil {
		t.Fatalf("ParseCryptopaths() error: %v", err)
	}
	want := []Cryptopath{{Currency: "ETH", Path: "m/44'/60'/0'/0/0"}, {Currency: "BTC"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseCryptopaths() = %+v, want %+v", got, want)
	}
}
