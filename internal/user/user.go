// Package user derives the opaque identity used to key stored records
// from a display name. There is no authentication.
package user

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MaxNameLength bounds display names, in characters.
const MaxNameLength = 40

// ErrInvalidName is returned for empty, overlong or unprintable names.
var ErrInvalidName = errors.New("invalid user name")

// User is a signed-in display name and its derived id.
type User struct {
	ID   string
	Name string
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// New trims name and derives the user. Names that differ only in case or
// surrounding space map to the same id.
func New(name string) (User, error) {
	name = strings.TrimSpace(name)
	validateOnce.Do(func() { validate = validator.New() })
	if err := validate.Var(name, fmt.Sprintf("required,max=%d", MaxNameLength)); err != nil {
		return User{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsFunc(name, unicode.IsControl) {
		return User{}, fmt.Errorf("%w: control characters in %q", ErrInvalidName, name)
	}
	return User{ID: ID(name), Name: name}, nil
}

// ID returns the first 12 hex characters of the sha256 of the normalized
// name.
func ID(name string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(name))))
	return hex.EncodeToString(sum[:])[:12]
}
