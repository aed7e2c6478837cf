package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEnvelopeShape(t *testing.T) {
	b, err := Encode(MsgInput, Input{TX: 12.5, TY: -3, Boost: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":"input","p":{"tx":12.5,"ty":-3,"boost":true}}`, string(b))
}

func TestDecodeClientMessage(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"t":"hello","p":{"v":1,"name":"ada","slot":2}}`))
	require.NoError(t, err)
	require.Equal(t, MsgHello, env.T)

	h, err := DecodePayload[Hello](env)
	require.NoError(t, err)
	assert.Equal(t, Hello{V: 1, Name: "ada", Slot: 2}, h)
}

func TestEncodeRejectsEmpty(t *testing.T) {
	_, err := Encode("", Save{})
	assert.Error(t, err)
	_, err = Encode(MsgSave, nil)
	assert.Error(t, err)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	for name, in := range map[string]string{
		"empty":   ``,
		"garbage": `not json`,
		"no type": `{"p":{}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeEnvelope([]byte(in))
			assert.Error(t, err)
		})
	}

	_, err := DecodePayload[Input](Envelope{T: MsgInput})
	assert.Error(t, err)
	_, err = DecodePayload[Input](Envelope{T: MsgInput, P: []byte(`{"tx":"left"}`)})
	assert.Error(t, err)
}

func TestStateOmitsEmptyEvents(t *testing.T) {
	b, err := Encode(MsgState, State{Tick: 3, Phase: "playing", Chunks: []ChunkSnapshot{}})
	require.NoError(t, err)
	env, err := DecodeEnvelope(b)
	require.NoError(t, err)
	assert.NotContains(t, string(env.P), `"events"`)
	assert.Contains(t, string(env.P), `"chunks":[]`)
}
