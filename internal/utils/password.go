package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades login latency for brute-force resistance; 12 keeps a
// single hash well under a second on current hardware.
const bcryptCost = 12

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(b), err
}

// CheckPassword reports nil when password matches hash. The stored cost is
// read from the hash itself, so old hashes keep verifying if bcryptCost moves.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
