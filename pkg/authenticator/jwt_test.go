package authenticator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type tokenObject struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func Test_jwtTokenEngine_GenerateAndVerify(t *testing.T) {
	engine := NewTokenEngine("secret")

	token, err := engine.Generate(time.Minute, tokenObject{ID: "user1", Role: "attendee"})
	require.NoError(t, err)

	var obj tokenObject
	require.NoError(t, engine.Verify(token, &obj))
	require.Equal(t, "user1", obj.ID)
	require.Equal(t, "attendee", obj.Role)
}

func Test_jwtTokenEngine_WrongSecret(t *testing.T) {
	token, err := NewTokenEngine("secret").Generate(time.Minute, tokenObject{ID: "user1"})
	require.NoError(t, err)

	var obj tokenObject
	require.Error(t, NewTokenEngine("another-secret").Verify(token, &obj))
}

func Test_jwtTokenEngine_Expired(t *testing.T) {
	engine := NewTokenEngine("secret")
	token, err := engine.Generate(-time.Minute, tokenObject{ID: "user1"})
	require.NoError(t, err)

	var obj tokenObject
	require.Error(t, engine.Verify(token, &obj))
}
