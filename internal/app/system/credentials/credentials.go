// internal/app/system/credentials/credentials.go
//
// Package credentials is the credential-store boundary: hashing,
// verification, and rotation of member passwords. The rest of the core
// only ever sees opaque hashes.
package credentials

import "golang.org/x/crypto/bcrypt"

// Hash derives a storable hash from a plaintext credential.
func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches the stored hash.
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
