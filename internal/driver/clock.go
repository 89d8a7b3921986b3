package driver

import "time"

// Clock 时间源抽象；看门狗与各处超时等待经由它取时/休眠，测试可注入假时钟
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
