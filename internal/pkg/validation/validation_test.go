package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestIsValidEthereumAddress(t *testing.T) {
	t.Parallel()

	valid := []string{
		"0x742d35cc6634c0532925a3b844bc454e4438f44e",
		"0x742D35CC6634C0532925A3B844BC454E4438F44E",
		"0xAbCdEf0123456789aBcDeF0123456789abcdef01",
	}
	for _, addr := range valid {
		if !IsValidEthereumAddress(addr) {
			t.Errorf("expected %q to be valid", addr)
		}
	}

	invalid := []string{
		"",
		"742d35cc6634c0532925a3b844bc454e4438f44e",          // no prefix
		"0x742d35cc6634c0532925a3b844bc454e4438f44",         // 39 chars
		"0x742d35cc6634c0532925a3b844bc454e4438f44e1",       // 41 chars
		"0x742d35cc6634c0532925a3b844bc454e4438f44g",        // non-hex
		"0x" + strings.Repeat("0", 64),                      // tx hash length
	}
	for _, addr := range invalid {
		if IsValidEthereumAddress(addr) {
			t.Errorf("expected %q to be invalid", addr)
		}
	}
}

func TestIsValidTxHash(t *testing.T) {
	t.Parallel()

	if !IsValidTxHash("0x" + strings.Repeat("ab", 32)) {
		t.Errorf("expected 32-byte hash to be valid")
	}
	if IsValidTxHash("0x" + strings.Repeat("ab", 20)) {
		t.Errorf("expected address-length hash to be invalid")
	}
}

func TestNormalizeAddress(t *testing.T) {
	t.Parallel()

	got := NormalizeAddress("  0xABCdef0123456789ABCDEF0123456789ABCDEF01 ")
	want := "0xabcdef0123456789abcdef0123456789abcdef01"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSanitizeInput(t *testing.T) {
	t.Parallel()

	if got := SanitizeInput("  <script>hi</script>  "); got != "scripthi/script" {
		t.Fatalf("unexpected sanitized value: %q", got)
	}
	if got := SanitizeInput(strings.Repeat("a", 2000)); len(got) != 1000 {
		t.Fatalf("expected length cap at 1000, got %d", len(got))
	}
}

func TestNumericRange(t *testing.T) {
	t.Parallel()

	min := decimal.RequireFromString("0.01")
	max := decimal.NewFromInt(1000000)

	tests := []struct {
		value   string
		wantErr bool
	}{
		{"100", false},
		{"0.01", false},
		{"1000000", false},
		{"0", true},
		{"-5", true},
		{"0.009", true},
		{"1000000.01", true},
	}

	for _, tt := range tests {
		err := NumericRange(decimal.RequireFromString(tt.value), min, max, "Token amount")
		if (err != nil) != tt.wantErr {
			t.Errorf("NumericRange(%s): err=%v, wantErr=%v", tt.value, err, tt.wantErr)
		}
	}
}
