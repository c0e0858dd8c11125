package utils

import "golang.org/x/crypto/bcrypt"

// passwordHashCost is the bcrypt work factor applied to stored credentials.
const passwordHashCost = bcrypt.DefaultCost

// HashPassword derives the stored form of a plaintext credential. Only the
// hash is ever persisted.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches a stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
