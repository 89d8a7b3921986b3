package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig 应用基础信息
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// SerialConfig 串口配置。波特率与帧格式由设备侧固定（460800 8E1），
// 这里只允许覆盖设备路径与短读超时。
type SerialConfig struct {
	Device      string        `mapstructure:"device"`
	BaudRate    int           `mapstructure:"baudRate"`
	ReadTimeout time.Duration `mapstructure:"readTimeout"`
}

// DriverConfig 协议引擎参数
type DriverConfig struct {
	// Motomed 是否挂接 Motomed 训练器（启用后台读取循环）
	Motomed bool `mapstructure:"motomed"`
	// WatchdogInterval 链路空闲多久后发送保活帧
	WatchdogInterval time.Duration `mapstructure:"watchdogInterval"`
	// LivenessWindow 距上次发送超过该窗口即判定链路失活
	LivenessWindow time.Duration `mapstructure:"livenessWindow"`
	// AckTimeout 所有等待应答/完成事件的统一上限
	AckTimeout time.Duration `mapstructure:"ackTimeout"`
	// ReaderPoll 后台读取循环的节拍
	ReaderPoll time.Duration `mapstructure:"readerPoll"`
	// IdlePoll 组帧器读空后的轮询间隔（空闲判定粒度）
	IdlePoll time.Duration `mapstructure:"idlePoll"`
	// ActualValuesCapacity / PhaseResultCapacity 遥测环形缓冲容量
	ActualValuesCapacity int `mapstructure:"actualValuesCapacity"`
	PhaseResultCapacity  int `mapstructure:"phaseResultCapacity"`
}

// LumberjackConfig 日志滚动（lumberjack）配置
type LumberjackConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// LoggingConfig 日志级别与输出配置
type LoggingConfig struct {
	Level  string           `mapstructure:"level"`
	Format string           `mapstructure:"format"`
	File   LumberjackConfig `mapstructure:"file"`
}

// MetricsConfig Prometheus 指标暴露配置
type MetricsConfig struct {
	Enable bool   `mapstructure:"enable"`
	Addr   string `mapstructure:"addr"`
	Path   string `mapstructure:"path"`
}

// Config 顶层配置结构
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Serial  SerialConfig  `mapstructure:"serial"`
	Driver  DriverConfig  `mapstructure:"driver"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// Load 从 YAML/TOML/JSON 文件与环境变量加载配置。
// path 为空时回退到 configs/example.yaml；环境变量前缀 REHA，点号换下划线。
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.SetConfigName("example")
		v.SetConfigType("yaml")
	}

	setDefaults(v)

	v.SetEnvPrefix("REHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// 允许缺少配置文件，依赖默认值与环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "rehastim-driver")
	v.SetDefault("app.env", "dev")

	v.SetDefault("serial.device", "/dev/ttyUSB0")
	v.SetDefault("serial.baudRate", 460800)
	v.SetDefault("serial.readTimeout", "100ms")

	v.SetDefault("driver.motomed", false)
	v.SetDefault("driver.watchdogInterval", "500ms")
	v.SetDefault("driver.livenessWindow", "1200ms")
	v.SetDefault("driver.ackTimeout", "2s")
	v.SetDefault("driver.readerPoll", "50ms")
	v.SetDefault("driver.idlePoll", "5ms")
	v.SetDefault("driver.actualValuesCapacity", 100)
	v.SetDefault("driver.phaseResultCapacity", 1)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.filename", "logs/rehastim.log")
	v.SetDefault("logging.file.maxSize", 50)
	v.SetDefault("logging.file.maxBackups", 5)
	v.SetDefault("logging.file.maxAge", 14)
	v.SetDefault("logging.file.compress", true)

	v.SetDefault("metrics.enable", false)
	v.SetDefault("metrics.addr", ":9105")
	v.SetDefault("metrics.path", "/metrics")
}
