package auth

import (
	"strings"
	"testing"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := SessionSecretBytes("test-secret")

	token := CreateSessionToken("user-1", "admin", secret)
	userID, role, err := VerifySessionToken(token, secret)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != "user-1" || role != "admin" {
		t.Errorf("got %q/%q, want user-1/admin", userID, role)
	}
}

func TestVerifySessionToken_TamperedPayload(t *testing.T) {
	secret := SessionSecretBytes("test-secret")

	token := CreateSessionToken("user-1", "user", secret)
	parts := strings.SplitN(token, ".", 2)
	forged := CreateSessionToken("user-2", "admin", secret)
	forgedPayload := strings.SplitN(forged, ".", 2)[0]

	if _, _, err := VerifySessionToken(forgedPayload+"."+parts[1], secret); err == nil {
		t.Error("expected error for payload signed with another token's mac")
	}
}

func TestVerifySessionToken_WrongSecret(t *testing.T) {
	token := CreateSessionToken("user-1", "user", SessionSecretBytes("secret-a"))
	if _, _, err := VerifySessionToken(token, SessionSecretBytes("secret-b")); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestVerifySessionToken_Malformed(t *testing.T) {
	secret := SessionSecretBytes("test-secret")
	for _, token := range []string{"", "no-dot", "!!!.sig", "YQ==."} {
		if _, _, err := VerifySessionToken(token, secret); err == nil {
			t.Errorf("token %q: expected error", token)
		}
	}
}

func TestSessionSecretBytes_Padding(t *testing.T) {
	short := SessionSecretBytes("abc")
	if len(short) != 32 {
		t.Errorf("short secret padded to %d bytes, want 32", len(short))
	}
	long := strings.Repeat("x", 40)
	if got := SessionSecretBytes(long); len(got) != 40 {
		t.Errorf("long secret truncated to %d bytes", len(got))
	}
}
