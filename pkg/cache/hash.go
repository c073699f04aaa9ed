package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// hashKey builds "prefix:<hex>" from the sha256 of parts. Each part is
// written with its length so that ("ab","c") and ("a","bc") differ.
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	for _, p := range parts {
		s := fmt.Sprint(p)
		fmt.Fprintf(h, "%d:", len(s))
		io.WriteString(h, s)
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex sha256 of data, 64 characters long.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
