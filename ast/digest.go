package ast

import (
	"crypto"
	_ "crypto/sha256"

	"github.com/grailbio/base/digest"
)

// Digester computes content hashes for a stable, content-addressed
// identity. Its one use is a target declaration's companion `table
// NAME`: target lowering hashes the target body's source text with
// DigestString, so unchanged source produces an identical cache key.
var Digester = digest.Digester(crypto.SHA256)

// DigestString returns the content digest of s, rendered as a string,
// suitable for use as a stable fixture/log identifier.
func DigestString(s string) string {
	w := Digester.NewWriter()
	_, _ = w.Write([]byte(s))
	return w.Digest().String()
}
