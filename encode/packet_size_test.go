package encode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wfpipe/wfpipe/errs"
	"github.com/wfpipe/wfpipe/format"
)

func TestPad(t *testing.T) {
	require.Equal(t, 112, pad(100, defaultMTU))
	require.Equal(t, 16, pad(0, defaultMTU))
	require.Equal(t, 32, pad(16, defaultMTU))
	require.Equal(t, 1420, pad(1420, defaultMTU))
	require.Equal(t, 1420, pad(1500, defaultMTU))
}

func TestNewPacketSizeEncoder_Validation(t *testing.T) {
	_, err := NewPacketSizeEncoder(0)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	_, err = NewPacketSizeEncoder(10, WithMTU(-1))
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	_, err = NewPacketSizeEncoder(10, WithMinPacketSize(-1))
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	_, err = NewPacketSizeEncoder(10, WithLookback(0))
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestPacketSizeEncoder_Encode(t *testing.T) {
	t.Run("signed padded sizes in trace order", func(t *testing.T) {
		enc, err := NewPacketSizeEncoder(5)
		require.NoError(t, err)

		raw := []byte("1000,sn,100\n2000,rn,1500\n3000,sn,16\n")
		f, err := enc.Encode(raw)
		require.NoError(t, err)
		require.Equal(t, []float64{112, -1420, 32, 0, 0}, f.Row(0))
	})

	t.Run("truncates at feature length", func(t *testing.T) {
		enc, err := NewPacketSizeEncoder(2)
		require.NoError(t, err)

		raw := []byte("1,sn,100\n2,rn,100\n3,sn,100\n")
		f, err := enc.Encode(raw)
		require.NoError(t, err)
		require.Equal(t, []float64{112, -112}, f.Row(0))
	})

	t.Run("short line terminates parsing", func(t *testing.T) {
		enc, err := NewPacketSizeEncoder(5)
		require.NoError(t, err)

		raw := []byte("1,sn,100\n2,rn\n3,sn,100\n")
		f, err := enc.Encode(raw)
		require.NoError(t, err)
		require.Equal(t, []float64{112, 0, 0, 0, 0}, f.Row(0))
	})

	t.Run("unparseable size terminates parsing", func(t *testing.T) {
		enc, err := NewPacketSizeEncoder(5)
		require.NoError(t, err)

		raw := []byte("1,sn,100\n2,rn,abc\n3,sn,100\n")
		f, err := enc.Encode(raw)
		require.NoError(t, err)
		require.Equal(t, []float64{112, 0, 0, 0, 0}, f.Row(0))
	})

	t.Run("unknown direction skipped without consuming a slot", func(t *testing.T) {
		enc, err := NewPacketSizeEncoder(5)
		require.NoError(t, err)

		raw := []byte("1,sn,100\n2,q,100\n3,rn,100\n")
		f, err := enc.Encode(raw)
		require.NoError(t, err)
		require.Equal(t, []float64{112, -112, 0, 0, 0}, f.Row(0))
	})

	t.Run("empty trace yields zero feature", func(t *testing.T) {
		enc, err := NewPacketSizeEncoder(3)
		require.NoError(t, err)

		f, err := enc.Encode(nil)
		require.NoError(t, err)
		require.Equal(t, []float64{0, 0, 0}, f.Row(0))
	})

	t.Run("minimum size filter drops small packets", func(t *testing.T) {
		enc, err := NewPacketSizeEncoder(5, WithMinPacketSize(175))
		require.NoError(t, err)

		raw := []byte("1,sn,100\n2,rn,200\n3,sn,175\n")
		f, err := enc.Encode(raw)
		require.NoError(t, err)
		require.Equal(t, []float64{-208, 176, 0, 0, 0}, f.Row(0))
	})

	t.Run("look-back window drops packets before the cutoff", func(t *testing.T) {
		enc, err := NewPacketSizeEncoder(5, WithLookback(2))
		require.NoError(t, err)

		// Window ends at the last timestamp (5e9), so only ts >= 3e9 remain.
		raw := []byte("1000000000,sn,100\n3000000000,rn,200\n5000000000,sn,300\n")
		f, err := enc.Encode(raw)
		require.NoError(t, err)
		require.Equal(t, []float64{-208, 304, 0, 0, 0}, f.Row(0))
	})

	t.Run("look-back without any parseable timestamp errors", func(t *testing.T) {
		enc, err := NewPacketSizeEncoder(5, WithLookback(2))
		require.NoError(t, err)

		_, err = enc.Encode([]byte("a,b,c\n"))
		require.ErrorIs(t, err, errs.ErrNoTimestamp)
	})
}

func TestPacketSizeEncoder_Shape(t *testing.T) {
	enc, err := NewPacketSizeEncoder(DefaultInputLength)
	require.NoError(t, err)

	rows, cols := enc.Shape()
	require.Equal(t, 1, rows)
	require.Equal(t, DefaultInputLength, cols)
	require.Equal(t, format.EncoderPacketSize, enc.Kind())
}
