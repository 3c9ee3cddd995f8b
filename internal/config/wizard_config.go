package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// DefaultPathは設定ファイルの既定のパスです。
const DefaultPath = "settings/wizard.yaml"

type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// LogConfigはログ出力の設定です。
type LogConfig struct {
	Level  string    `yaml:"level" validate:"required,oneof=debug info warn error"`
	Format LogFormat `yaml:"format" validate:"required,oneof=text json"`
}

// BatchConfigは一括処理の並列数を定義します。
type BatchConfig struct {
	WorkerNum     int    `yaml:"worker_num" validate:"min=1,max=10"`     // 一括チェックのワーカー数
	GenerateLimit int    `yaml:"generate_limit" validate:"min=1,max=7"`  // 多言語PDFを同時に生成する数
	ReportName    string `yaml:"report_name" validate:"required,max=64"` // チェック結果CSVのファイル名
}

// WizardConfigはウィザードCLIの動作設定をまとめる構造体です。
type WizardConfig struct {
	OutputDir    string         `yaml:"output_dir" validate:"required"` // PDFとレポートの出力先
	RuleBookPath string         `yaml:"rule_book_path"`                 // 空なら組み込みのルール定義を使う
	Log          LogConfig      `yaml:"log" validate:"required"`
	Renderer     RendererConfig `yaml:"renderer" validate:"required"`
	Store        StoreConfig    `yaml:"store" validate:"required"`
	Batch        BatchConfig    `yaml:"batch" validate:"required"`
}

// バリデーターのインスタンス
var validate = validator.New()

// LoadWizardConfigはYAMLファイルからWizardConfigを読み込みます。
// 接続情報は環境変数(REDIS_ADDRESS, REDIS_PASSWORD, WIZARD_SQLITE_PATH)が設定されていればそちらを優先します。
func LoadWizardConfig(path string) (WizardConfig, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return WizardConfig{}, fmt.Errorf("設定ファイルを読み込めませんでした: %w", err)
	}
	return ParseWizardConfig(f)
}

// ParseWizardConfigはYAMLの内容からWizardConfigを生成します。
func ParseWizardConfig(data []byte) (WizardConfig, error) {
	var cfg WizardConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return WizardConfig{}, fmt.Errorf("YAMLの解析に失敗しました: %w", err)
	}
	cfg.Store.applyEnv()

	// バリデーション
	if err := validate.Struct(cfg); err != nil {
		return WizardConfig{}, fmt.Errorf("設定のバリデーションに失敗しました: %w", err)
	}

	// カスタムバリデーション
	if cfg.Store.Driver == StoreRedis && cfg.Store.RedisAddress == "" {
		return WizardConfig{}, fmt.Errorf("redisストアにはredis_addressが必要です")
	}
	if cfg.Store.Driver == StoreSQLite && cfg.Store.SQLitePath == "" {
		return WizardConfig{}, fmt.Errorf("sqliteストアにはsqlite_pathが必要です")
	}
	if cfg.Renderer.TimeoutSeconds*cfg.Batch.GenerateLimit > 600 {
		return WizardConfig{}, fmt.Errorf("timeout_seconds×generate_limitは600秒以内にしてください")
	}

	return cfg, nil
}
