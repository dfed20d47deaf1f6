package mocks

import (
	"errors"
	"sync"

	"github.com/phrazzld/jobmatch-api/internal/service/auth"
)

// ErrPasswordMismatch is returned by PlainPasswords.Compare on a mismatch.
var ErrPasswordMismatch = errors.New("password mismatch")

// PlainPasswords implements auth.PasswordVerifier and auth.PasswordHasher
// without bcrypt: the "hash" of a password is the password prefixed with
// "hashed:". It records the number of comparisons.
type PlainPasswords struct {
	mu           sync.Mutex
	compareCalls int

	// HashErr, when set, is returned by Hash.
	HashErr error
}

var (
	_ auth.PasswordVerifier = (*PlainPasswords)(nil)
	_ auth.PasswordHasher   = (*PlainPasswords)(nil)
)

// Compare implements auth.PasswordVerifier.
func (p *PlainPasswords) Compare(hashedPassword, password string) error {
	p.mu.Lock()
	p.compareCalls++
	p.mu.Unlock()
	if hashedPassword != "hashed:"+password {
		return ErrPasswordMismatch
	}
	return nil
}

// Hash implements auth.PasswordHasher.
func (p *PlainPasswords) Hash(password string) (string, error) {
	if p.HashErr != nil {
		return "", p.HashErr
	}
	return "hashed:" + password, nil
}

// CompareCalls returns how many times Compare ran.
func (p *PlainPasswords) CompareCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.compareCalls
}
