package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidekeep/internal/sim"
	"tidekeep/internal/world"
)

func TestDecodeInboundRoundTrip(t *testing.T) {
	raw := []byte(`{"type":"stonePickup","data":{"stoneId":"abc123"}}`)

	msg, err := DecodeInbound(raw)
	require.NoError(t, err)

	pickup, ok := msg.(*StonePickup)
	require.True(t, ok, "expected *StonePickup, got %T", msg)
	assert.Equal(t, world.StoneID("abc123"), pickup.StoneID)
}

func TestDecodeInboundUnknownTypeErrors(t *testing.T) {
	_, err := DecodeInbound([]byte(`{"type":"not_a_real_message","data":{}}`))
	assert.Error(t, err)
}

func TestDecodeInboundMalformedJSONErrors(t *testing.T) {
	_, err := DecodeInbound([]byte(`not json at all`))
	assert.Error(t, err)
}

func TestEncodeOutboundUsesUncapitalizedTypeName(t *testing.T) {
	raw, err := EncodeOutbound(TowerDestroyOut{TowerIndex: 2})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"towerDestroyOut"`)
	assert.Contains(t, string(raw), `"towerIndex":2`)
}

func TestTranslateStoneSpawnedEvent(t *testing.T) {
	stone := world.Stone{ID: "s1"}
	out := Translate(sim.StoneSpawned{Stone: stone})

	spawned, ok := out.(StoneSpawnedOut)
	require.True(t, ok)
	assert.Equal(t, world.StoneID("s1"), spawned.Stone.ID)
}

func TestTranslateKingUpdateAbsentProducesNilKingID(t *testing.T) {
	out := Translate(sim.KingUpdate{KingID: ""})
	king, ok := out.(KingUpdateOut)
	require.True(t, ok)
	assert.Nil(t, king.KingID)
}
