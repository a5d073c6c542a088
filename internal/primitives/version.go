package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// Fingerprint returns a short deterministic hash of v's JSON encoding.
// It is used to tag results with the configuration that produced them.
func Fingerprint(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "invalid"
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}
