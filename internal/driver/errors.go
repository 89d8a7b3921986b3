package driver

import "errors"

var (
	// ErrTimeout 等待应答/完成事件超过配置上限
	ErrTimeout = errors.New("wait timed out")
	// ErrNotConnected 链路未建立或已失活
	ErrNotConnected = errors.New("not connected")
	// ErrAlreadyConnected 重复建链
	ErrAlreadyConnected = errors.New("already connected")
)
