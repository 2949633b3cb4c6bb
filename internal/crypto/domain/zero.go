// Package domain defines the key hierarchy types: the master key, organization
// keys and the persisted encrypted field format.
package domain

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
