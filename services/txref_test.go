package services_test

import (
	"strings"
	"testing"

	"github.com/savoraddis/cafe-backend/services"

	"github.com/stretchr/testify/assert"
)

func TestNewTxRef_FormatAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := services.NewTxRef()
		assert.True(t, strings.HasPrefix(ref, "CAF-"))
		assert.False(t, seen[ref], "tx_ref %s generated twice", ref)
		seen[ref] = true
	}
}
