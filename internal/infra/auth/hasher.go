// Package auth provides concrete implementations for authentication-related
// domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"

	"survey/internal/domain/service"
)

// New hashes use PBKDF2-SHA256: unlike bcrypt it has no 72-byte input
// truncation, so arbitrarily long passwords stay safe. Stored bcrypt
// hashes from before the rotation keep verifying.
const (
	pbkdf2Prefix = "$pbkdf2-sha256$"
	pbkdf2Rounds = 29000
	saltLength   = 16
	keyLength    = 32
)

// migratingHasher is a PasswordHasher that writes PBKDF2-SHA256 hashes and
// verifies both PBKDF2-SHA256 and legacy bcrypt hashes.
type migratingHasher struct{}

// NewHasher is the constructor for migratingHasher. It returns the
// implementation as a service.PasswordHasher interface.
func NewHasher() service.PasswordHasher {
	return &migratingHasher{}
}

// Hash generates a salted PBKDF2-SHA256 hash in the form
// $pbkdf2-sha256$<rounds>$<ab64 salt>$<ab64 key>.
func (h *migratingHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "generate salt")
	}

	key := pbkdf2.Key([]byte(password), salt, pbkdf2Rounds, keyLength, sha256.New)

	var b strings.Builder
	b.WriteString(pbkdf2Prefix)
	b.WriteString(strconv.Itoa(pbkdf2Rounds))
	b.WriteByte('$')
	b.WriteString(ab64Encode(salt))
	b.WriteByte('$')
	b.WriteString(ab64Encode(key))

	return b.String(), nil
}

// Verify compares a plaintext password with a stored hash. Unsupported
// scheme, malformed hash and wrong password all return the same false;
// the PBKDF2 comparison is constant-time.
func (h *migratingHasher) Verify(password, hash string) bool {
	switch {
	case strings.HasPrefix(hash, pbkdf2Prefix):
		return verifyPBKDF2(password, hash)
	case strings.HasPrefix(hash, "$2a$"),
		strings.HasPrefix(hash, "$2b$"),
		strings.HasPrefix(hash, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	default:
		return false
	}
}

func verifyPBKDF2(password, hash string) bool {
	rest := strings.TrimPrefix(hash, pbkdf2Prefix)
	parts := strings.Split(rest, "$")
	if len(parts) != 3 {
		return false
	}

	rounds, err := strconv.Atoi(parts[0])
	if err != nil || rounds < 1 {
		return false
	}
	salt, err := ab64Decode(parts[1])
	if err != nil {
		return false
	}
	want, err := ab64Decode(parts[2])
	if err != nil || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(password), salt, rounds, len(want), sha256.New)

	return subtle.ConstantTimeCompare(got, want) == 1
}

// Stored pbkdf2-sha256 hashes use adapted base64: the standard alphabet
// with '+' replaced by '.' and no padding.
func ab64Encode(b []byte) string {
	return strings.ReplaceAll(base64.RawStdEncoding.EncodeToString(b), "+", ".")
}

func ab64Decode(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.ReplaceAll(s, ".", "+"))
}
