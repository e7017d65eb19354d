package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Source SourceConfig `toml:"source"`
	Cache  CacheConfig  `toml:"cache"`
	Data   DataConfig   `toml:"data"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// SourceKind 数据源类型
const (
	SourceSheets = "sheets"
	SourceFile   = "file"
)

// SourceConfig 表格数据源配置
type SourceConfig struct {
	Kind                string `toml:"kind"`           // sheets / file
	SpreadsheetID       string `toml:"spreadsheet_id"` // kind = sheets
	FilePath            string `toml:"file_path"`      // kind = file，xlsx 或 csv
	OrdersSheet         string `toml:"orders_sheet"`
	AffiliateSheet      string `toml:"affiliate_sheet"`
	LedgerSheet         string `toml:"ledger_sheet"`
	CredentialsFile     string `toml:"credentials_file"`
	ClientEmail         string `toml:"client_email"`
	PrivateKey          string `toml:"private_key"`
	FetchTimeoutSeconds int    `toml:"fetch_timeout_seconds"`
}

// SourceID 当前数据源的标识：表格 ID 或文件路径
func (c SourceConfig) SourceID() string {
	if c.Kind == SourceFile {
		return c.FilePath
	}
	return c.SpreadsheetID
}

// FetchTimeout 单次取数超时
func (c SourceConfig) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// CacheBackend 缓存后端
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// CacheConfig 原始行缓存配置
type CacheConfig struct {
	Backend       string `toml:"backend"` // memory / redis / none
	TTLSeconds    int    `toml:"ttl_seconds"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// TTL 缓存有效期
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level"`  // debug / info / warn / error
	Format string `toml:"format"` // json / console
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
	ConfigPath    string
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    5000,
			DevMode: false,
		},
		Source: SourceConfig{
			Kind:                SourceSheets,
			OrdersSheet:         "POS",
			AffiliateSheet:      "DonAff",
			LedgerSheet:         "rutve",
			FetchTimeoutSeconds: 30,
		},
		Cache: CacheConfig{
			Backend:    CacheMemory,
			TTLSeconds: 300,
			RedisAddr:  "localhost:6379",
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath 可执行文件同目录下的 config.toml
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo 加载 .env 与 config.toml，环境变量优先；path 为空时使用默认路径
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	info := LoadConfigInfo{ConfigPath: path}
	config := DefaultConfig()

	// .env 不存在时忽略
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, err
	}

	applyEnv(config, &info)
	return config, info, nil
}

// applyEnv 环境变量覆盖
func applyEnv(config *AppConfig, info *LoadConfigInfo) {
	if v := os.Getenv("GOOGLE_SHEET_ID"); v != "" {
		config.Source.SpreadsheetID = v
	}
	if v := os.Getenv("GOOGLE_SHEET_NAME"); v != "" {
		config.Source.OrdersSheet = v
	}
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"); v != "" {
		config.Source.ClientEmail = v
	}
	if v := os.Getenv("GOOGLE_PRIVATE_KEY"); v != "" {
		config.Source.PrivateKey = v
	}
	if v := os.Getenv("GOOGLE_CREDENTIALS_FILE"); v != "" {
		config.Source.CredentialsFile = v
	}
	if v := os.Getenv("SHOPCHINH_SOURCE_FILE"); v != "" {
		config.Source.Kind = SourceFile
		config.Source.FilePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		config.Cache.Backend = CacheRedis
		config.Cache.RedisAddr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
			info.PortSpecified = true
		}
	}
}

// SaveConfig 写出 config.toml；path 为空时写到可执行文件同目录
func SaveConfig(config *AppConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadConfig 加载配置
func LoadConfig(path string) (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo(path)
	return config, err
}

// EnsureDataDir 确保数据目录存在，相对路径基于可执行文件目录
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := resolveDataDir(config)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

func resolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil || exeDir == "" {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}
