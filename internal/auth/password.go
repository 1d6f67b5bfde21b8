package auth

import "golang.org/x/crypto/bcrypt"

// hashCost matches the work factor the records were originally seeded with.
const hashCost = 8

// HashPassword hashes a plaintext credential with bcrypt.
func HashPassword(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(secret, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret)) == nil
}
