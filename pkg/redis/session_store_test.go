package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionKey = "0000000000000000000000000000000000000000000000000000000000000000"

func TestNewSessionStoreValidation(t *testing.T) {
	_, err := NewSessionStore("zz")
	assert.Error(t, err)

	_, err = NewSessionStore("0011")
	assert.Error(t, err)

	store, err := NewSessionStore(testSessionKey)
	assert.NoError(t, err)
	assert.NotNil(t, store)
}

func TestSessionStoreEncryptDecrypt(t *testing.T) {
	store, err := NewSessionStore(testSessionKey)
	require.NoError(t, err)

	enc, err := store.encrypt([]byte(`{"x":1}`))
	require.NoError(t, err)

	dec, err := store.decrypt(enc)
	require.NoError(t, err)
	assert.Contains(t, string(dec), `"x":1`)

	_, err = store.decrypt("00")
	assert.Error(t, err)

	_, err = store.decrypt("zz-not-hex")
	assert.Error(t, err)

	bad := &SessionStore{encryptionKey: []byte("short-key")}
	_, err = bad.encrypt([]byte("x"))
	assert.Error(t, err)
	_, err = bad.decrypt("00")
	assert.Error(t, err)
}

func TestSessionStoreCreateGetDelete(t *testing.T) {
	srv := useMiniredis(t)
	store, err := NewSessionStore(testSessionKey)
	require.NoError(t, err)

	ctx := context.Background()
	in := &SessionData{UserID: "u-1", Role: "admin", RefreshToken: "r-ok", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.CreateSession(ctx, "sid-ok", in, time.Minute))

	raw, err := srv.Get("session:sid-ok")
	require.NoError(t, err)
	assert.NotContains(t, raw, "r-ok")

	data, err := store.GetSession(ctx, "sid-ok")
	require.NoError(t, err)
	assert.Equal(t, "u-1", data.UserID)
	assert.Equal(t, "admin", data.Role)
	assert.Equal(t, "r-ok", data.RefreshToken)

	require.NoError(t, store.DeleteSession(ctx, "sid-ok"))
	_, err = store.GetSession(ctx, "sid-ok")
	assert.True(t, IsNil(err))
}

func TestSessionStore_GetSessionInvalidJSONPayload(t *testing.T) {
	useMiniredis(t)
	store, err := NewSessionStore(testSessionKey)
	require.NoError(t, err)

	enc, err := store.encrypt([]byte("plain-text"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, Set(ctx, "session:sid-bad-json", enc, time.Minute))

	_, err = store.GetSession(ctx, "sid-bad-json")
	assert.Error(t, err)
}

func TestSessionStore_OperationHooks(t *testing.T) {
	store, err := NewSessionStore(testSessionKey)
	require.NoError(t, err)

	origSet, origGet, origDel, origMarshal := setSessionValue, getSessionValue, delSessionValue, marshalSessionJSON
	t.Cleanup(func() {
		setSessionValue = origSet
		getSessionValue = origGet
		delSessionValue = origDel
		marshalSessionJSON = origMarshal
	})

	setSessionValue = func(context.Context, string, interface{}, time.Duration) error {
		return errors.New("set failed")
	}
	assert.Error(t, store.CreateSession(context.Background(), "sid", &SessionData{UserID: "u"}, time.Minute))

	getSessionValue = func(context.Context, string) (string, error) { return "", errors.New("not found") }
	_, err = store.GetSession(context.Background(), "sid")
	assert.Error(t, err)

	getSessionValue = func(context.Context, string) (string, error) { return "zz", nil }
	_, err = store.GetSession(context.Background(), "sid")
	assert.Error(t, err)

	delSessionValue = func(context.Context, string) error { return errors.New("delete failed") }
	assert.Error(t, store.DeleteSession(context.Background(), "sid"))

	marshalSessionJSON = func(interface{}) ([]byte, error) { return nil, errors.New("marshal failed") }
	assert.Error(t, store.CreateSession(context.Background(), "sid", &SessionData{}, time.Minute))
}
