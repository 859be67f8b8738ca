package security

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt digest. The same password hashes
// differently across calls; CheckPasswordHash still verifies either digest.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether password matches the stored digest.
// Malformed digests verify as false rather than erroring out.
func CheckPasswordHash(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
