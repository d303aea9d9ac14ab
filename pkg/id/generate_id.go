// Package id generates the public identifiers exposed for users, books and
// borrows: 32 lowercase hex characters, no separators or prefixes. Numeric
// primary keys never leave the database layer.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// 16 random bytes hex-encode to the 32-character public id.
const rawLen = 16

func NewID32() string {
	var b [rawLen]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
