package ticket

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/rs/xid"
)

const keySize = 16

// NewKey returns a random key of 32 hexadecimal characters.
func NewKey() (string, error) {
	buf := make([]byte, keySize)

	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "could not generate key")
	}

	return hex.EncodeToString(buf), nil
}

// FinalKey combines the account key and the purchase key of an e-ticket.
func FinalKey(key1, key2 string) string {
	return key1 + key2
}

// Reference returns a new payment reference.
func Reference() string {
	return "PAY-" + xid.New().String()
}
