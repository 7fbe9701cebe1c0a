package config

import (
	"errors"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	AI         AIConfig         `mapstructure:"ai"`
	Generation GenerationConfig `mapstructure:"generation"`
	Log        LogConfig        `mapstructure:"log"`
	Mongo      MongoConfig      `mapstructure:"mongo"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Artifacts  ArtifactsConfig  `mapstructure:"artifacts"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// AIConfig AI 服务配置
// APIKey 在进程启动时加载一次，之后只读
type AIConfig struct {
	Provider string          `mapstructure:"provider"` // openai, azure, ark, volcengine, gemini
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Options  AIOptionsConfig `mapstructure:"options"`
}

// AIOptionsConfig AI 模型参数
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// GenerationConfig 镜头生成配置
type GenerationConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`          // 单次生成的超时时间（包含流式读取）
	DefaultStyle    string        `mapstructure:"default_style"`    // 请求未指定风格时使用
	DefaultDuration float64       `mapstructure:"default_duration"` // 请求未指定时长时使用（分钟）
	MaxDuration     float64       `mapstructure:"max_duration"`     // 单次请求允许的最大时长（分钟），0 表示不限制
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig MongoDB 配置
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	RunTTL   time.Duration `mapstructure:"run_ttl"` // 生成结果缓存时长
}

// AuthConfig 认证配置
// JWTSecret 为空时不启用认证
type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_token_expiry"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	Type  string       `mapstructure:"type"` // local, oss
	Local *LocalConfig `mapstructure:"local,omitempty"`
	OSS   *OSSConfig   `mapstructure:"oss,omitempty"`
}

// LocalConfig 本地文件系统配置
type LocalConfig struct {
	BasePath string `mapstructure:"base_path"` // 基础路径
	BaseURL  string `mapstructure:"base_url"`  // 基础URL（用于生成访问URL）
}

// OSSConfig 阿里云OSS配置
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`          // OSS端点
	Bucket          string `mapstructure:"bucket"`            // Bucket名称
	AccessKeyID     string `mapstructure:"access_key_id"`     // AccessKey ID
	AccessKeySecret string `mapstructure:"access_key_secret"` // AccessKey Secret
	PresignExpiry   int    `mapstructure:"presign_expiry"`    // 预签名URL过期时间（秒）
}

// ArtifactsConfig 生成产物配置
type ArtifactsConfig struct {
	Enabled bool   `mapstructure:"enabled"` // 是否持久化 shots/characters/descriptions 三个 JSON 文件
	Prefix  string `mapstructure:"prefix"`  // 存储 key 前缀
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	return c.ValidateGeneration()
}

// ValidateGeneration 验证生成相关配置（CLI 不需要 server 配置时单独使用）
func (c *Config) ValidateGeneration() error {
	validProviders := map[string]bool{
		"": true, "openai": true, "azure": true, "ark": true, "volcengine": true, "gemini": true,
	}
	if !validProviders[c.AI.Provider] {
		return errors.New("invalid ai provider, must be openai/azure/ark/volcengine/gemini")
	}

	if c.Generation.Timeout < 0 {
		return errors.New("generation timeout must not be negative")
	}
	if c.Generation.DefaultDuration < 0 {
		return errors.New("generation default_duration must not be negative")
	}
	if c.Generation.MaxDuration < 0 {
		return errors.New("generation max_duration must not be negative")
	}

	if c.Artifacts.Enabled && c.Storage.Type == "" {
		return errors.New("artifacts enabled but storage type not configured")
	}

	return nil
}
