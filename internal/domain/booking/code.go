package booking

import (
	"crypto/rand"
	"errors"
	"regexp"
)

var ErrInvalidBookingCode = errors.New("invalid booking code format")

var bookingCodeRegex = regexp.MustCompile(`^HS-[A-Z0-9]{8}$`)

// Code is the human-readable booking identity printed on confirmations.
type Code string

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no 0/O/1/I

// NewCode generates a fresh booking code. Uniqueness is enforced by the
// storage layer's unique constraint; collisions surface as duplicate-key
// errors and are retried by the caller.
func NewCode() Code {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(err) // crypto/rand failure is not recoverable here
	}
	out := make([]byte, 8)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return Code("HS-" + string(out))
}

func ParseCode(s string) (Code, error) {
	if !bookingCodeRegex.MatchString(s) {
		return "", ErrInvalidBookingCode
	}
	return Code(s), nil
}

func (c Code) String() string { return string(c) }
