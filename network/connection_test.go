package network

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	raw := Encode(MsgTypeGameAction, []byte(`{"action":"rollDice"}`))

	assert.Len(t, raw, HeaderSize+21)
	p, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, uint16(MsgTypeGameAction), p.MsgID)
	assert.Equal(t, uint32(21), p.Length)
	assert.Equal(t, `{"action":"rollDice"}`, string(p.Data))
}

func TestEncodeLargePayload(t *testing.T) {
	big := make([]byte, 70000)
	p, err := Decode(Encode(MsgTypeGameSync, big))
	require.NoError(t, err)
	assert.Len(t, p.Data, 70000)
}

func TestDecodeShort(t *testing.T) {
	_, err := Decode([]byte{0, 1, 0})
	assert.ErrorIs(t, err, io.ErrShortBuffer)

	truncated := Encode(MsgTypeHeartbeat, []byte("hello"))[:HeaderSize+2]
	_, err = Decode(truncated)
	assert.ErrorIs(t, err, io.ErrShortBuffer)
}

func TestDecodeEmptyPayload(t *testing.T) {
	p, err := Decode(Encode(MsgTypeHeartbeat, nil))
	require.NoError(t, err)
	assert.Empty(t, p.Data)
}
