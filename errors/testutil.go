package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertCode checks the status carried by err. Errors foreign to this
// package only match DefaultCode; nil only matches 0.
func AssertCode(t testing.TB, err error, code int) {
	t.Helper()
	assert.Equal(t, code, Code(err), "code of %v", err)
}

func AssertKind(t testing.TB, err error, kind Kind) {
	t.Helper()
	assert.Equal(t, kind, KindOf(err), "kind of %v", err)
}
