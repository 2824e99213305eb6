package emu816

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRoundTrip(t *testing.T) {
	cpu, _ := newCPU(0x8000, Registers{
		PC: 0x1234, PBR: 0x01, DBR: 0x02, DP: 0x0300,
		SP: 0x01F0, C: 0xBEEF, X: 0x0011, Y: 0x0022,
		P: flagN | flagC, E: false,
	})
	cpu.SetIFR(0x0004)
	cpu.RequestIRQ(true)

	buf := make([]byte, cpu.SerializeSize())
	require.NoError(t, cpu.Serialize(buf))

	restored := New(&testBus{})
	require.NoError(t, restored.Deserialize(buf))

	assert.Equal(t, cpu.Registers(), restored.Registers())
	assert.Equal(t, cpu.Cycles(), restored.Cycles())
}

func TestSerializeBufferTooSmall(t *testing.T) {
	cpu, _ := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX})
	buf := make([]byte, 4)
	assert.Error(t, cpu.Serialize(buf))
	assert.Error(t, cpu.Deserialize(buf))
}

func TestDeserializeRejectsUnknownVersion(t *testing.T) {
	cpu, _ := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX})
	buf := make([]byte, cpu.SerializeSize())
	require.NoError(t, cpu.Serialize(buf))
	buf[0] = 0xFF

	assert.Error(t, cpu.Deserialize(buf))
}
