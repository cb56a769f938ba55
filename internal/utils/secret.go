package utils

import "crypto/subtle"

// dummySecret is compared against when there is no stored value, so a miss costs
// the same as a mismatch.
const dummySecret = "\x00\x00\x00\x00"

// SecretsEqual compares two short secrets in constant time with respect to their contents.
func SecretsEqual(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// BurnSecretCompare performs a comparison whose result is discarded.
func BurnSecretCompare(supplied string) {
	_ = subtle.ConstantTimeCompare([]byte(dummySecret), []byte(supplied))
}
