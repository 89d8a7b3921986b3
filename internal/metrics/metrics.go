package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry 创建自定义 Prometheus Registry，并注册常用采集器
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler 返回 Prometheus 指标 HTTP 处理器
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// DriverMetrics 链路与协议引擎指标
type DriverMetrics struct {
	TxTotal        *prometheus.CounterVec // labels: cmd
	RxTotal        *prometheus.CounterVec // labels: result=ok|malformed|checksum|unknown_cmd|truncated
	RouteTotal     *prometheus.CounterVec // labels: cmd
	WatchdogTotal  prometheus.Counter     // 已发送保活帧
	TelemetryTotal *prometheus.CounterVec // labels: kind=actual_values|phase_result
	AckTimeouts    prometheus.Counter     // 等待应答超时次数
}

// NewDriverMetrics 注册并返回驱动指标
func NewDriverMetrics(reg *prometheus.Registry) *DriverMetrics {
	m := &DriverMetrics{
		TxTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rehastim_tx_frames_total",
			Help: "Frames transmitted to the device, by command.",
		}, []string{"cmd"}),
		RxTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rehastim_rx_frames_total",
			Help: "Frames received from the device, by verification result.",
		}, []string{"result"}),
		RouteTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rehastim_route_total",
			Help: "Frames routed by command code.",
		}, []string{"cmd"}),
		WatchdogTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rehastim_watchdog_total",
			Help: "Keep-alive frames transmitted.",
		}),
		TelemetryTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rehastim_telemetry_samples_total",
			Help: "Telemetry samples decoded, by kind.",
		}, []string{"kind"}),
		AckTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rehastim_ack_timeouts_total",
			Help: "Acknowledgment waits that hit the deadline.",
		}),
	}
	reg.MustRegister(m.TxTotal, m.RxTotal, m.RouteTotal, m.WatchdogTotal, m.TelemetryTotal, m.AckTimeouts)
	return m
}

// Nop 返回未注册到任何 Registry 的指标集（库内默认值，避免空指针判断）
func Nop() *DriverMetrics {
	return NewDriverMetrics(prometheus.NewRegistry())
}
