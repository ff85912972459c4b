package labelhash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveIsDeterministic(t *testing.T) {
	a := Derive([]byte("alice@example.com"))
	b := Derive([]byte("alice@example.com"))
	require.Equal(t, a, b)
	require.Len(t, a, 32)
}

func TestDeriveDistinguishesIdentities(t *testing.T) {
	a := Derive([]byte("alice@example.com"))
	b := Derive([]byte("bob@example.com"))
	require.NotEqual(t, a, b)
}
