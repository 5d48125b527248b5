package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tts := []struct {
		name    string
		err     error
		code    int
		message string
		full    string
	}{
		{
			name:    "default code",
			err:     New("boom"),
			code:    DefaultCode,
			message: "boom",
			full:    "boom",
		},
		{
			name:    "explicit code",
			err:     New("folder not found", NotFound()),
			code:    404,
			message: "folder not found",
			full:    "folder not found",
		},
		{
			name:    "foreign cause",
			err:     New("could not read", WithCause(errors.New("disk on fire"))),
			code:    DefaultCode,
			message: "could not read",
			full:    "could not read: disk on fire",
		},
		{
			name:    "code forwarded from the cause",
			err:     New("download failed", WithCause(New("denied", Forbidden()))),
			code:    403,
			message: "download failed",
			full:    "download failed: denied",
		},
		{
			name:    "explicit code wins over the cause, before",
			err:     New("bad upload", BadRequest(), WithCause(New("denied", Forbidden()))),
			code:    400,
			message: "bad upload",
			full:    "bad upload: denied",
		},
		{
			name:    "explicit code wins over the cause, after",
			err:     New("bad upload", WithCause(New("denied", Forbidden())), WithCode(409)),
			code:    409,
			message: "bad upload",
			full:    "bad upload: denied",
		},
		{
			name:    "nil cause",
			err:     New("nothing", WithCause(nil)),
			code:    DefaultCode,
			message: "nothing",
			full:    "nothing",
		},
	}

	for _, tt := range tts {
		AssertCode(t, tt.err, tt.code)
		assert.Equal(t, tt.message, Message(tt.err), tt.name)
		assert.Equal(t, tt.full, tt.err.Error(), tt.name)
	}
}

func TestEnrichers_ForeignErrors(t *testing.T) {
	err := WithCode(404)(errors.New("simple error"))
	AssertCode(t, err, 404)
	assert.Equal(t, "simple error", err.Error())

	err = WithCause(New("forward code", WithCode(502)))(errors.New("simple error"))
	AssertCode(t, err, 502)
	assert.Equal(t, "simple error: forward code", err.Error())

	assert.Nil(t, WithCode(305)(nil))
	assert.Nil(t, WithCause(errors.New("ignored"))(nil))
}

func TestKindOf(t *testing.T) {
	tts := []struct {
		err  error
		kind Kind
	}{
		{err: nil, kind: KindNone},
		{err: errors.New("plain"), kind: KindGeneric},
		{err: New("no token", Unauthorized()), kind: KindUnauthorized},
		{err: New("denied", Forbidden()), kind: KindPermissionDenied},
		{err: New("missing", NotFound()), kind: KindNotFound},
		{err: New("boom"), kind: KindServer},
		{err: New("bad gateway", WithCode(502)), kind: KindServer},
		{err: New("bad name", BadRequest()), kind: KindInvalid},
		{err: New("teapot", WithCode(418)), kind: KindGeneric},
	}

	for _, tt := range tts {
		AssertKind(t, tt.err, tt.kind)
	}
}

func TestWrap_KeepsCode(t *testing.T) {
	err := Wrap(New("file not found", NotFound()), "could not download")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "could not download: file not found", err.Error())
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestUnwrap(t *testing.T) {
	cause := New("root cause", Forbidden())
	err := New("outer", WithCause(cause))

	var e Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, cause, e.Cause())
	assert.True(t, IsForbidden(err))

	timeout := New("request timed out", WithCause(fmt.Errorf("get: %w", context.DeadlineExceeded)))
	assert.True(t, errors.Is(timeout, context.DeadlineExceeded))
}
