package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	t.Run("Success_OrganizationKey", func(t *testing.T) {
		key := bytes.Repeat([]byte{0xab}, KeySize)
		Zero(key)
		assert.Equal(t, make([]byte, KeySize), key)
	})

	t.Run("Success_SharedBackingArray", func(t *testing.T) {
		resolved := bytes.Repeat([]byte{0x5c}, KeySize)
		view := resolved[:KeySize/2]
		Zero(resolved)
		assert.Equal(t, make([]byte, KeySize/2), view)
	})

	t.Run("Success_EmptyAndNil", func(t *testing.T) {
		assert.NotPanics(t, func() { Zero([]byte{}) })
		assert.NotPanics(t, func() { Zero(nil) })
	})
}
