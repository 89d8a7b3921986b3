package sciencemode

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEncode(t *testing.T, seq byte, cmd Command, payload []byte) []byte {
	t.Helper()
	raw, err := Encode(seq, cmd, payload)
	require.NoError(t, err)
	return raw
}

func TestSplitTwoConcatenatedFrames(t *testing.T) {
	a := mustEncode(t, 1, CmdSinglePulseAck, []byte{0x11, 0x22})
	b := mustEncode(t, 2, CmdStimulationError, []byte{0x33})
	frames, err := Split(append(append([]byte{}, a...), b...))
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, Frame(a), frames[0])
	assert.Equal(t, Frame(b), frames[1])
}

func TestSplitDiscardsLeadingGarbage(t *testing.T) {
	a := mustEncode(t, 1, CmdSinglePulseAck, []byte{0x11})
	buf := append([]byte{0x00, 0x42, 0x99}, a...)
	frames, err := Split(buf)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, Frame(a), frames[0])
}

func TestSplitNoStartMarker(t *testing.T) {
	_, err := Split([]byte{0x01, 0x02, 0x03, 0x0F})
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

// scriptedRead 依次返回脚本中的块，之后一直返回空
func scriptedRead(chunks ...[]byte) ReadFunc {
	i := 0
	return func() ([]byte, error) {
		if i < len(chunks) {
			c := chunks[i]
			i++
			return c, nil
		}
		return nil, nil
	}
}

func TestReadFramesBatchedSingleRead(t *testing.T) {
	a := mustEncode(t, 1, CmdSinglePulseAck, []byte{0x11, 0x22})
	b := mustEncode(t, 2, CmdStartChannelListModeAck, []byte{0x33, 0x44})
	r := NewReassembler(scriptedRead(append(append([]byte{}, a...), b...)), time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	frames, err := r.ReadFrames(ctx)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, Frame(a), frames[0])
	assert.Equal(t, Frame(b), frames[1])
}

func TestReadFramesAccumulatesPartialReads(t *testing.T) {
	a := mustEncode(t, 9, CmdSinglePulseAck, []byte{0xAA, 0xBB, 0xCC})
	// 同一帧拆成三块到达，中间穿插读空
	r := NewReassembler(scriptedRead(a[:3], nil, a[3:6], a[6:]), time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	frames, err := r.ReadFrames(ctx)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, Frame(a), frames[0])
}

func TestReadFramesDropsTinyBatch(t *testing.T) {
	// 8字节批次不超过最小可用长度，整体丢弃
	wd := mustEncode(t, 3, CmdWatchdog, nil)
	require.Len(t, wd, 8)
	r := NewReassembler(scriptedRead(wd), time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	frames, err := r.ReadFrames(ctx)
	require.NoError(t, err)
	assert.Empty(t, frames)
}

func TestReadFramesContextDeadline(t *testing.T) {
	r := NewReassembler(scriptedRead(), time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := r.ReadFrames(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
