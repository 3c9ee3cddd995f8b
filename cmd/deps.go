package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Altair29/J-GLOW-sub002/internal/config"
	"github.com/Altair29/J-GLOW-sub002/internal/constants"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/document"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/repository"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/rule"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/wizard"
	"github.com/Altair29/J-GLOW-sub002/internal/infra"
	"github.com/Altair29/J-GLOW-sub002/internal/logger"
)

// environmentは各コマンドで共通に使う設定とロガーです。
type environment struct {
	cfg    config.WizardConfig
	logger logger.AppLogger
}

func loadEnvironment() (environment, error) {
	// .envがなくても環境変数だけで動かせる
	_ = godotenv.Load()

	cfg, err := config.LoadWizardConfig(configPath)
	if err != nil {
		return environment{}, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
	}
	return environment{
		cfg:    cfg,
		logger: logger.NewFromConfig(cfg.Log, os.Stderr),
	}, nil
}

// wizardDepsはウィザードを動かすためのドメイン部品です。
type wizardDeps struct {
	machine   *wizard.Machine
	assembler *document.Assembler
	loader    *infra.AnswerFileLoader
	parser    infra.AnswerParser
}

// newWizardDepsは、ルール定義を読み込んでウィザードと通知書の組み立てを生成します。
//
// args:
//
//	env: 設定とロガー
//	renderer: PDF変換。PDFを生成しないコマンドではnil
//
// return:
//
//	wizardDeps: 生成した部品
//	error: ルール定義の読み込みに失敗した場合のエラー
func newWizardDeps(env environment, renderer document.Renderer) (wizardDeps, error) {
	engine, err := loadEngine(env.cfg.RuleBookPath)
	if err != nil {
		return wizardDeps{}, err
	}
	env.logger.Debug("条件ルールを読み込みました", "version", engine.Version())

	assembler, err := document.NewAssembler(document.AssemblerArgs{
		Engine:    engine,
		Renderer:  renderer,
		Inspector: infra.NewHTMLDocument(),
	})
	if err != nil {
		return wizardDeps{}, fmt.Errorf("通知書の組み立ての初期化に失敗しました: %w", err)
	}
	machine, err := wizard.NewMachine(wizard.MachineArgs{Engine: engine, Assembler: assembler})
	if err != nil {
		return wizardDeps{}, fmt.Errorf("ウィザードの初期化に失敗しました: %w", err)
	}

	return wizardDeps{
		machine:   machine,
		assembler: assembler,
		loader:    infra.NewAnswerFileLoader(constants.GetAnswerFileExtensions()),
		parser:    infra.NewAnswerParser(constants.GetAnswerPatterns()),
	}, nil
}

func loadEngine(path string) (*rule.Engine, error) {
	if path == "" {
		return rule.DefaultEngine()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ルール定義の読み込みに失敗しました: %w", err)
	}
	book, err := rule.LoadRuleBook(data)
	if err != nil {
		return nil, err
	}
	return rule.NewEngine(book)
}

// openJobStoreは、設定のドライバーに応じた生成ジョブの保存先を開きます。
// 返すcloseは必ず呼び出してください。
func openJobStore(ctx context.Context, env environment) (repository.GenerationJobRepository, func() error, error) {
	store := env.cfg.Store
	switch store.Driver {
	case config.StoreRedis:
		// Redisクライアント初期化
		rdb := redis.NewClient(&redis.Options{
			Addr:     store.RedisAddress,
			Password: store.RedisPassword,
			DB:       store.RedisDB,
		})
		// Redisへの接続を確認 (ping)
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("Redisへの接続に失敗しました: %w", err)
		}
		env.logger.Info("Redisへの接続を確認しました", "address", store.RedisAddress)
		return infra.NewGenerationJobClient(rdb), rdb.Close, nil
	case config.StoreSQLite:
		db, err := infra.NewGenerationJobSQLite(store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		return infra.NewGenerationJobMemory(), func() error { return nil }, nil
	}
}
