package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// 环境变量覆盖项
const (
	EnvConfigDir = "APPS_CONFIG_DIR"
	EnvInputPath = "APPS_INPUT_PATH"
)

// Config 结构体定义了分析程序的配置结构
type Config struct {
	InputPath string `json:"input_path"` // 应用数据文件(csv/xlsx)
	SheetName string `json:"sheet_name"` // xlsx输入时的工作表名，为空取第一个

	DropColumns   []string `json:"drop_columns"`   // 下游不使用的列
	JunkThreshold float64  `json:"junk_threshold"` // 价格上限，超过视为垃圾数据

	TopN           int `json:"top_n"`
	TopGrossingN   int `json:"top_grossing_n"`
	TopCategoriesN int `json:"top_categories_n"`
	TopGenresN     int `json:"top_genres_n"`

	ChartDir   string `json:"chart_dir"`   // 图表输出目录，为空不出图
	ReportPath string `json:"report_path"` // 报表xlsx路径，为空不导出

	LogName    string `json:"log_name"`
	LogMaxSize string `json:"log_max_size"` // 例如 "10 * 1024 * 1024"
	LogLevel   string `json:"log_level"`

	Watch           bool     `json:"watch"`            // 输入文件变化时重新分析
	RefreshInterval Duration `json:"refresh_interval"` // 定时重新分析，0为关闭
}

var (
	once     sync.Once
	instance *Config
	loadErr  error
)

// Default 返回默认配置
func Default() *Config {
	return &Config{
		InputPath:      "apps.csv",
		DropColumns:    []string{"Last_Updated", "Android_Ver"},
		JunkThreshold:  250,
		TopN:           5,
		TopGrossingN:   10,
		TopCategoriesN: 10,
		TopGenresN:     15,
		LogName:        "app.log",
		LogMaxSize:     "10 * 1024 * 1024",
		LogLevel:       "info",
	}
}

// LoadConfig 加载配置，进程内只加载一次
func LoadConfig(jsonFolder, jsonFile string) (*Config, error) {
	once.Do(func() {
		instance, loadErr = loadConfig(jsonFolder, jsonFile)
	})
	return instance, loadErr
}

// LoadEnv 读取.env文件(可选)，返回覆盖后的配置目录
func LoadEnv(defaultFolder string) string {
	// .env 不存在不是错误
	_ = godotenv.Load()

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return defaultFolder
}

func loadConfig(jsonFolder, jsonFile string) (*Config, error) {
	cfg := Default()

	data, err := readFile(filepath.Join(jsonFolder, jsonFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		// 没有配置文件时使用默认值
	case err != nil:
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析Config失败: %w", err)
		}
	}

	if p := os.Getenv(EnvInputPath); p != "" {
		cfg.InputPath = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("无法读取文件 %s: %w", filePath, err)
	}
	return data, nil
}

// Validate 校验配置取值
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("config: input_path is empty")
	}
	if c.JunkThreshold <= 0 {
		return fmt.Errorf("config: junk_threshold must be positive, got %v", c.JunkThreshold)
	}
	for name, n := range map[string]int{
		"top_n":            c.TopN,
		"top_grossing_n":   c.TopGrossingN,
		"top_categories_n": c.TopCategoriesN,
		"top_genres_n":     c.TopGenresN,
	} {
		if n < 0 {
			return fmt.Errorf("config: %s must not be negative, got %d", name, n)
		}
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("config: refresh_interval must not be negative")
	}
	return nil
}

// Duration 是time.Duration的自定义包装类型
// 用于支持JSON序列化和反序列化
type Duration time.Duration

// UnmarshalJSON 实现json.Unmarshaler接口
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalJSON 实现json.Marshaler接口
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
