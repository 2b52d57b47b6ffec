package booking

import (
	"crypto/rand"
	"math/big"
)

// The pool deliberately omits I, O, 0 and 1 so codes read back over the
// phone without ambiguity. 32 characters at length 16 gives a 32^16
// space.
const (
	confirmationPool   = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	confirmationLength = 16
)

// GenerateConfirmationNumber draws a 16-character order code uniformly
// from the unambiguous pool.
func GenerateConfirmationNumber() (string, error) {
	poolSize := big.NewInt(int64(len(confirmationPool)))
	buf := make([]byte, confirmationLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, poolSize)
		if err != nil {
			return "", err
		}
		buf[i] = confirmationPool[n.Int64()]
	}
	return string(buf), nil
}
