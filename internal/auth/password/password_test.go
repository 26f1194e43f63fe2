package password

import "testing"

func TestSHA256MatchesLegacyFormat(t *testing.T) {
	// sha256("admin123")
	const want = "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9"

	got, err := SHA256{}.Hash("admin123")
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("hash mismatch: got %s", got)
	}
	if !(SHA256{}).Verify("admin123", want) {
		t.Error("expected verify to succeed")
	}
	if (SHA256{}).Verify("admin124", want) {
		t.Error("expected verify to fail for a different password")
	}
}

func TestBcryptAcceptsBothFormats(t *testing.T) {
	h := Bcrypt{Cost: 4}

	hash, err := h.Hash("password1")
	if err != nil {
		t.Fatal(err)
	}
	if !h.Verify("password1", hash) {
		t.Error("expected bcrypt hash to verify")
	}
	if h.Verify("password2", hash) {
		t.Error("expected wrong password to fail")
	}

	legacy, _ := SHA256{}.Hash("password1")
	if !h.Verify("password1", legacy) {
		t.Error("expected legacy sha256 hash to verify")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		algorithm string
		wantErr   bool
	}{
		{"", false},
		{"sha256", false},
		{"BCRYPT", false},
		{"md5", true},
	}
	for _, tt := range tests {
		_, err := New(tt.algorithm, 4)
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%q) err=%v, wantErr=%v", tt.algorithm, err, tt.wantErr)
		}
	}
}
