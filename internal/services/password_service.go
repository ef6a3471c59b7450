package services

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordService hashes and verifies user credentials.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type bcryptPasswordService struct {
	cost int
}

func NewPasswordService() PasswordService {
	return &bcryptPasswordService{cost: bcrypt.DefaultCost}
}

// Hash produces a salted bcrypt digest. The cost factor and salt are encoded
// in the returned string, so two calls on the same input yield different hashes.
func (s *bcryptPasswordService) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify compares in constant time. A malformed hash is a verification
// failure, never an error.
func (s *bcryptPasswordService) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
