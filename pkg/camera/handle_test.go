package camera

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenLocalReportsKindLocal(t *testing.T) {
	h := OpenLocalWithBackend(&fakeBackend{})
	require.True(t, h.IsLocal())
	require.False(t, h.IsRemote())
	require.False(t, h.IsService())
	require.False(t, h.IsSession())
	require.Equal(t, KindLocal, h.Kind())
	require.True(t, h.IsConnected())
}

func TestLocalHandleCloseIsNoOp(t *testing.T) {
	h := OpenLocalWithBackend(&fakeBackend{})
	require.NoError(t, h.Close())
	require.True(t, h.IsConnected())
}

func TestKindStringNamesEveryVariant(t *testing.T) {
	require.Equal(t, "local", KindLocal.String())
	require.Equal(t, "remote", KindRemote.String())
	require.Equal(t, "service", KindService.String())
	require.Equal(t, "session", KindSession.String())
	require.Equal(t, "undefined", Kind(99).String())
}
