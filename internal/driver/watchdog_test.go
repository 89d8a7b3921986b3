package driver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taoyao-code/rehastim/internal/config"
	"github.com/taoyao-code/rehastim/internal/protocol/sciencemode"
	"github.com/taoyao-code/rehastim/internal/transport"
)

func watchdogTestConfig() config.DriverConfig {
	return config.DriverConfig{
		WatchdogInterval: 500 * time.Millisecond,
		IdlePoll:         10 * time.Millisecond,
		LivenessWindow:   time.Hour, // 本组测试不关心存活窗口
		AckTimeout:       time.Second,
	}
}

// 空闲推进600ms：恰好一帧保活
func TestWatchdogSingleKeepAlivePerIdleWindow(t *testing.T) {
	lb := transport.NewLoopback()
	clk := newFakeClock()
	d := New(watchdogTestConfig(), lb, nil, nil, WithClock(clk))
	require.NoError(t, d.Connect())
	base := lb.WriteCount() // InitAck

	for i := 0; i < 60; i++ {
		clk.blockUntilWaiters(t, 1)
		clk.Advance(10 * time.Millisecond)
	}
	// 保活写入由循环异步完成，等它落地
	require.Eventually(t, func() bool { return lb.WriteCount() == base+1 },
		time.Second, time.Millisecond)

	require.NoError(t, d.Disconnect())
	writes := lb.Writes()
	require.Len(t, writes, base+1)

	// 断言补发的确实是零载荷 Watchdog 帧
	f := sciencemode.Frame(writes[base])
	require.NoError(t, sciencemode.Verify(f))
	assert.Equal(t, byte(sciencemode.CmdWatchdog), f.CommandByte())
	assert.Empty(t, f.Data())
}

// 断链后时钟继续推进：不再发送保活
func TestWatchdogStopsAfterDisconnect(t *testing.T) {
	lb := transport.NewLoopback()
	clk := newFakeClock()
	d := New(watchdogTestConfig(), lb, nil, nil, WithClock(clk))
	require.NoError(t, d.Connect())
	require.NoError(t, d.Disconnect())
	base := lb.WriteCount()

	clk.Advance(5 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, base, lb.WriteCount())
}

// 发送失败只记录不退出，下个周期重试
func TestWatchdogSurvivesTransmitFailure(t *testing.T) {
	lb := transport.NewLoopback()
	clk := newFakeClock()
	d := New(watchdogTestConfig(), lb, nil, nil, WithClock(clk))
	require.NoError(t, d.Connect())
	base := lb.WriteCount()

	lb.WriteErr = assert.AnError
	for i := 0; i < 60; i++ {
		clk.blockUntilWaiters(t, 1)
		clk.Advance(10 * time.Millisecond)
	}
	// 第一次保活失败；恢复链路后下一周期应补上
	lb.WriteErr = nil
	for i := 0; i < 60; i++ {
		clk.blockUntilWaiters(t, 1)
		clk.Advance(10 * time.Millisecond)
	}
	require.Eventually(t, func() bool { return lb.WriteCount() == base+1 },
		time.Second, time.Millisecond)
	require.NoError(t, d.Disconnect())
}
