// Package transport 抽象与 Rehastim 之间的点对点字节链路。
// 协议引擎只依赖 Write/ReadAvailable 两个能力，便于用回环实现做联调与测试。
package transport

// Transport 字节链路
type Transport interface {
	// Write 整帧写入；部分写入视为错误
	Write(p []byte) error
	// ReadAvailable 返回当前可读的字节；无数据时返回空切片（允许阻塞
	// 不超过实现自身的短读超时），不等待凑满
	ReadAvailable() ([]byte, error)
	Close() error
}
