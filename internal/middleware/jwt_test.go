package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Le token émis dans la même seconde que le changement de mot de passe
// (cas de updateMyPassword et resetPassword, qui renvoient un token
// immédiatement après l'écriture) doit rester valide.
func TestStaleTokenSameSecondAsChange(t *testing.T) {
	issuedAt := time.Date(2026, 9, 1, 14, 23, 14, 0, time.UTC)
	changedAt := issuedAt.Add(600 * time.Millisecond)

	assert.False(t, staleToken(issuedAt, changedAt))
}

func TestStaleTokenIssuedBeforeChange(t *testing.T) {
	issuedAt := time.Date(2026, 9, 1, 14, 23, 14, 0, time.UTC)
	changedAt := issuedAt.Add(2 * time.Second)

	assert.True(t, staleToken(issuedAt, changedAt))
}

func TestStaleTokenIssuedAfterChange(t *testing.T) {
	changedAt := time.Date(2026, 9, 1, 14, 23, 14, 350_000_000, time.UTC)
	issuedAt := changedAt.Add(time.Second)

	assert.False(t, staleToken(issuedAt, changedAt))
}
