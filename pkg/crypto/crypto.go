package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost dipakai saat membuat hash password baru. Test menurunkannya ke bcrypt.MinCost.
var BcryptCost = bcrypt.DefaultCost

// SessionTokenBytes is the entropy of a session token before encoding.
const SessionTokenBytes = 32

// prehash memastikan password panjang tidak terpotong di batas 72 byte bcrypt.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// HashPassword menghasilkan digest bcrypt dari password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(prehash(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword membandingkan password dengan digest dari HashPassword.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), prehash(password)) == nil
}

// NewSessionToken returns a URL-safe random token carrying SessionTokenBytes of entropy.
func NewSessionToken() (string, error) {
	buf := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
