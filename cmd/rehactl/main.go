package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/rehastim/internal/config"
	"github.com/taoyao-code/rehastim/internal/driver"
	"github.com/taoyao-code/rehastim/internal/logging"
	"github.com/taoyao-code/rehastim/internal/metrics"
	"github.com/taoyao-code/rehastim/internal/protocol/sciencemode"
	"github.com/taoyao-code/rehastim/internal/transport"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认 configs/example.yaml）")
	fake := flag.Bool("fake", false, "不打开串口，用内存回环链路加模拟遥测联调")
	flag.Parse()

	// 1) 加载配置
	cfg, err := cfgpkg.Load(*configPath)
	if err != nil {
		panic(err)
	}

	// 2) 初始化日志
	logger, err := logging.InitLogger(cfg.Logging)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)
	log := zap.L()

	// 3) 指标注册与可选的诊断端点
	reg := metrics.NewRegistry()
	dm := metrics.NewDriverMetrics(reg)
	if cfg.Metrics.Enable {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler(reg))
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Error("metrics endpoint error", zap.Error(err))
			}
		}()
	}

	// 4) 链路
	var tr transport.Transport
	if *fake {
		lb := transport.NewLoopback()
		go simulateMotomed(lb)
		tr = lb
		cfg.Driver.Motomed = true
	} else {
		sp, err := transport.OpenSerial(transport.SerialConfig{
			Device:      cfg.Serial.Device,
			BaudRate:    cfg.Serial.BaudRate,
			ReadTimeout: cfg.Serial.ReadTimeout,
		})
		if err != nil {
			log.Fatal("serial open error", zap.Error(err))
		}
		tr = sp
	}
	defer func() { _ = tr.Close() }()

	// 5) 驱动建链
	drv := driver.New(cfg.Driver, tr, log, dm)
	if err := drv.Connect(); err != nil {
		log.Fatal("connect error", zap.Error(err))
	}

	// 周期打印遥测快照
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			values := drv.ActualValues()
			if len(values) > 0 {
				last := values[len(values)-1]
				log.Info("actual values",
					zap.Int("samples", len(values)),
					zap.Int("angle", last.Angle),
					zap.Int("speed", last.Speed),
					zap.Int("torque", last.Torque))
			}
			if pr, ok := drv.LastPhaseResult(); ok {
				log.Info("phase result",
					zap.Int("passiveDistance", pr.PassiveDistance),
					zap.Int("averagePower", pr.AveragePower),
					zap.Int("maximumPower", pr.MaximumPower))
			}
		case <-sigCh:
			if err := drv.Disconnect(); err != nil {
				log.Warn("disconnect error", zap.Error(err))
			}
			return
		}
	}
}

// simulateMotomed 周期注入合成的 ActualValues 帧，便于无硬件联调
func simulateMotomed(lb *transport.Loopback) {
	var seq byte
	angle := 0
	for {
		time.Sleep(200 * time.Millisecond)
		angle = (angle + 3) % 120
		payload := []byte{0, byte(angle), 0, 20, 0, 5}
		raw, err := sciencemode.Encode(seq, sciencemode.CmdActualValues, payload)
		if err != nil {
			continue
		}
		seq++
		lb.FeedRead(raw)
	}
}
