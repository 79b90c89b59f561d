package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

const saltBytes = 16

// HashPassword returns a fresh salt and the bcrypt hash of salt+password.
// The pair is pre-hashed with sha256 so long passwords stay under bcrypt's 72-byte limit.
func HashPassword(pw string) (salt, hash string, err error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	salt = hex.EncodeToString(b)
	h, err := bcrypt.GenerateFromPassword(digest(salt, pw), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return salt, string(h), nil
}

func CheckPassword(salt, hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), digest(salt, pw)) == nil
}

func digest(salt, pw string) []byte {
	sum := sha256.Sum256([]byte(salt + pw))
	return []byte(hex.EncodeToString(sum[:]))
}
