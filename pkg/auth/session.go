package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
)

// sessionClaims is the signed session payload.
type sessionClaims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
}

// CreateSessionToken builds a signed session token carrying the user id and
// role.
func CreateSessionToken(userID, role string, secret []byte) string {
	payload, _ := json.Marshal(sessionClaims{UserID: userID, Role: role})
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	sig := hex.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString(payload) + "." + sig
}

// VerifySessionToken validates the token and returns the user id and role.
func VerifySessionToken(token string, secret []byte) (userID, role string, err error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return "", "", errors.New("invalid token format")
	}
	payload, err := base64.URLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", "", err
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return "", "", errors.New("invalid signature")
	}

	var claims sessionClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", "", err
	}
	if claims.UserID == "" {
		return "", "", errors.New("empty user id")
	}
	return claims.UserID, claims.Role, nil
}

const sessionCookieName = "sadaqa_session"
const minSecretLen = 32

// SessionCookieName returns the session cookie name.
func SessionCookieName() string {
	return sessionCookieName
}

// SessionSecretBytes derives the signing key from a string, padded to a
// minimum of 32 bytes.
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
