// Package password wraps bcrypt so the rest of the codebase never touches the
// hashing primitive directly. Every digest carries its own random salt.
package password

import "golang.org/x/crypto/bcrypt"

const cost = bcrypt.DefaultCost

// Hash produces a salted one-way digest of the plaintext.
func Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the plaintext matches the stored digest. The
// comparison is delegated to bcrypt, which is constant-effort with respect to
// the candidate password.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
