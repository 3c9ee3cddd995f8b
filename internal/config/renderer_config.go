package config

import "os"

// RendererConfigはPDF変換に使うヘッドレスブラウザの設定です。
type RendererConfig struct {
	EnableHeadless        bool   `yaml:"enable_headless"`
	TimeoutSeconds        int    `yaml:"timeout_seconds" validate:"min=1,max=300"`            // 1件の変換のタイムアウト(秒)
	PaperFormat           string `yaml:"paper_format" validate:"required,oneof=A4 B4 Letter"` // 用紙サイズ
	Margin                string `yaml:"margin" validate:"required"`                          // 上下左右の余白(CSSの長さ)
	BlockExternalRequests bool   `yaml:"block_external_requests"`                             // 外部リソースの読み込みを遮断する
}

type StoreDriver string

const (
	StoreMemory StoreDriver = "memory"
	StoreRedis  StoreDriver = "redis"
	StoreSQLite StoreDriver = "sqlite"
)

// StoreConfigは生成ジョブ記録の保存先です。
type StoreConfig struct {
	Driver        StoreDriver `yaml:"driver" validate:"required,oneof=memory redis sqlite"`
	RedisAddress  string      `yaml:"redis_address" validate:"omitempty,hostname_port"`
	RedisPassword string      `yaml:"redis_password"`
	RedisDB       int         `yaml:"redis_db" validate:"min=0,max=15"`
	SQLitePath    string      `yaml:"sqlite_path"`
}

func (s *StoreConfig) applyEnv() {
	if v := os.Getenv("REDIS_ADDRESS"); v != "" {
		s.RedisAddress = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		s.RedisPassword = v
	}
	if v := os.Getenv("WIZARD_SQLITE_PATH"); v != "" {
		s.SQLitePath = v
	}
}
