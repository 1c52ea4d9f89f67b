package encode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wfpipe/wfpipe/errs"
	"github.com/wfpipe/wfpipe/format"
)

func TestNewVolumeSeriesEncoder_Validation(t *testing.T) {
	_, err := NewVolumeSeriesEncoder(0, 5, 60)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	_, err = NewVolumeSeriesEncoder(10, 0, 60)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	_, err = NewVolumeSeriesEncoder(10, 11, 60)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	_, err = NewVolumeSeriesEncoder(10, 5, 0)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestVolumeSeriesEncoder_Encode(t *testing.T) {
	t.Run("accumulates signed bytes into time bins", func(t *testing.T) {
		enc, err := NewVolumeSeriesEncoder(10, 5, 5)
		require.NoError(t, err)

		// Last timestamp 5s, window 5s, so bins are 1s wide starting at 0.
		raw := []byte("0,sn,100\n1500000000,rn,200\n5000000000,sn,300\n")
		f, err := enc.Encode(raw)
		require.NoError(t, err)
		require.Equal(t, []float64{100, -200, 0, 0, 300, 0, 0, 0, 0, 0}, f.Row(0))
	})

	t.Run("packets in the same bin accumulate", func(t *testing.T) {
		enc, err := NewVolumeSeriesEncoder(5, 5, 5)
		require.NoError(t, err)

		raw := []byte("0,sn,100\n500000000,rn,40\n900000000,sn,10\n5000000000,sn,1\n")
		f, err := enc.Encode(raw)
		require.NoError(t, err)
		require.Equal(t, []float64{70, 0, 0, 0, 1}, f.Row(0))
	})

	t.Run("packets before the window are skipped", func(t *testing.T) {
		enc, err := NewVolumeSeriesEncoder(5, 5, 2)
		require.NoError(t, err)

		// Window starts at 3s; bins are 0.4s wide.
		raw := []byte("1000000000,sn,100\n3000000000,rn,200\n5000000000,sn,300\n")
		f, err := enc.Encode(raw)
		require.NoError(t, err)
		require.Equal(t, []float64{-200, 0, 0, 0, 300}, f.Row(0))
	})

	t.Run("malformed line terminates parsing", func(t *testing.T) {
		enc, err := NewVolumeSeriesEncoder(5, 5, 5)
		require.NoError(t, err)

		raw := []byte("0,sn,100\n1000000000,rn\n5000000000,sn,300\n")
		f, err := enc.Encode(raw)
		require.NoError(t, err)
		require.Equal(t, []float64{100, 0, 0, 0, 0}, f.Row(0))
	})

	t.Run("no parseable timestamp errors", func(t *testing.T) {
		enc, err := NewVolumeSeriesEncoder(5, 5, 5)
		require.NoError(t, err)

		_, err = enc.Encode([]byte("a,b,c\n"))
		require.ErrorIs(t, err, errs.ErrNoTimestamp)
	})

	t.Run("minimum size filter", func(t *testing.T) {
		enc, err := NewVolumeSeriesEncoder(5, 5, 5, WithMinPacketSize(150))
		require.NoError(t, err)

		raw := []byte("0,sn,100\n0,sn,200\n5000000000,sn,300\n")
		f, err := enc.Encode(raw)
		require.NoError(t, err)
		require.Equal(t, []float64{200, 0, 0, 0, 300}, f.Row(0))
	})
}

func TestVolumeSeriesEncoder_Shape(t *testing.T) {
	enc, err := NewVolumeSeriesEncoder(DefaultInputLength, DefaultVolumeBins, 60)
	require.NoError(t, err)

	rows, cols := enc.Shape()
	require.Equal(t, 1, rows)
	require.Equal(t, DefaultInputLength, cols)
	require.Equal(t, format.EncoderVolumeSeries, enc.Kind())
}
