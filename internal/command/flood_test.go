package command

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloodGateBurstThenDeny(t *testing.T) {
	f := NewFloodGate(1, 2)

	require.True(t, f.Allow("user1"))
	require.True(t, f.Allow("user1"))
	require.False(t, f.Allow("user1"), "burst exhausted")
}

func TestFloodGateCallersIndependent(t *testing.T) {
	f := NewFloodGate(1, 1)

	require.True(t, f.Allow("user1"))
	require.False(t, f.Allow("user1"))
	require.True(t, f.Allow("user2"))
}

func TestFloodGateForget(t *testing.T) {
	f := NewFloodGate(1, 1)

	require.True(t, f.Allow("user1"))
	require.False(t, f.Allow("user1"))
	f.Forget("user1")
	require.True(t, f.Allow("user1"))
}
