package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAddress(t *testing.T) {
	t.Run("trims parts", func(t *testing.T) {
		addr := NewAddress("  12 Elm St ", "", " Springfield", "IL ", "62701", "US")
		assert.Equal(t, "12 Elm St", addr.Line1())
		assert.Equal(t, "Springfield", addr.City())
		assert.Equal(t, "IL", addr.Region())
		assert.Empty(t, addr.Missing())
	})

	t.Run("reports missing required parts", func(t *testing.T) {
		addr := NewAddress("", "Suite 4", "  ", "", "", "")
		assert.Equal(t, []string{"line1", "city"}, addr.Missing())
	})

	t.Run("empty address", func(t *testing.T) {
		assert.True(t, NewAddress("", "", "", "", "", "").IsEmpty())
		assert.False(t, NewAddress("1 Main", "", "", "", "", "").IsEmpty())
	})
}

func TestAddress_FullAddress(t *testing.T) {
	addr := NewAddress("12 Elm St", "", "Springfield", "IL", "62701", "US")
	assert.Equal(t, "12 Elm St, Springfield, IL, 62701, US", addr.FullAddress())
	assert.Equal(t, addr.FullAddress(), addr.String())
}

func TestAddress_Equals(t *testing.T) {
	a := NewAddress("12 Elm St", "", "Springfield", "", "", "")
	b := NewAddress("12 ELM ST", "", "springfield", "", "", "")
	c := NewAddress("14 Elm St", "", "Springfield", "", "", "")
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
