package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePasswordPolicy(t *testing.T) {
	p, err := ParsePasswordPolicy("")
	require.NoError(t, err)
	assert.Equal(t, KeepToken, p)

	p, err = ParsePasswordPolicy(" Logout ")
	require.NoError(t, err)
	assert.Equal(t, LogoutAfterChange, p)

	_, err = ParsePasswordPolicy("rotate")
	assert.Error(t, err)
}

func TestMessageFor_CommonFallbacks(t *testing.T) {
	assert.Equal(t, MsgForbidden, messageFor(OpUpdateProfile, statusErr(403)))
	assert.Equal(t, MsgUnavailable, messageFor(OpLogin, statusErr(503)))
	assert.Equal(t, MsgUnexpected, messageFor(OpLogin, statusErr(418)))
	assert.Equal(t, MsgWrongPassword, messageFor(OpChangePassword, statusErr(401)))
}
