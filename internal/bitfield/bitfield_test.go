package bitfield

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReader_Cor1Layout(t *testing.T) {
	// drive_awake:1, reserved:10, crc_bypass:1, done_pipe:1, drive_done:1, ssclksrc:2
	r := NewReader([]byte{0x3D, 0x18})

	widths := []int{1, 10, 1, 1, 1, 2}
	want := []uint64{0, 488, 1, 1, 0, 0}
	for i, w := range widths {
		v, err := r.Read(w)
		require.NoError(t, err)
		require.Equal(t, want[i], v, "field %d", i)
	}
	require.Equal(t, 0, r.Remaining())
}

func TestWriter_Cor1Layout(t *testing.T) {
	w := NewWriter(2)
	values := []uint64{0, 488, 1, 1, 0, 0}
	widths := []int{1, 10, 1, 1, 1, 2}
	for i := range values {
		require.NoError(t, w.Write(values[i], widths[i]))
	}
	require.Equal(t, []byte{0x3D, 0x18}, w.Bytes())
}

func TestReadWrite_FullWidth(t *testing.T) {
	w := NewWriter(4)
	require.NoError(t, w.Write(67113107, 32))
	require.Equal(t, []byte{0x04, 0x00, 0x10, 0x93}, w.Bytes())

	r := NewReader(w.Bytes())
	v, err := r.Read(32)
	require.NoError(t, err)
	require.Equal(t, uint64(67113107), v)
}

func TestWrite_TruncatesOversizedValue(t *testing.T) {
	w := NewWriter(1)
	require.NoError(t, w.Write(0x1FF, 8)) // only the low 8 bits land
	require.Equal(t, []byte{0xFF}, w.Bytes())
}

func TestRead_Errors(t *testing.T) {
	r := NewReader([]byte{0xAB})

	_, err := r.Read(0)
	require.Error(t, err)
	_, err = r.Read(65)
	require.Error(t, err)
	_, err = r.Read(9)
	require.Error(t, err)

	v, err := r.Read(8)
	require.NoError(t, err)
	require.Equal(t, uint64(0xAB), v)
	_, err = r.Read(1)
	require.Error(t, err)
}

func TestWrite_Errors(t *testing.T) {
	w := NewWriter(1)
	require.Error(t, w.Write(0, 0))
	require.Error(t, w.Write(0, 65))
	require.Error(t, w.Write(0, 9))
	require.NoError(t, w.Write(0xA5, 8))
	require.Error(t, w.Write(0, 1))
}
