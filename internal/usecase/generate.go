package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Altair29/J-GLOW-sub002/internal/config"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/document"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/repository"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/wizard"
	"github.com/Altair29/J-GLOW-sub002/internal/infra"
	"github.com/Altair29/J-GLOW-sub002/internal/logger"
)

// ErrIncompleteAnswersは確認ステップまで進めない回答ファイルを表します。
var ErrIncompleteAnswers = errors.New("未入力または不正な項目があります")

// GenerateArgsは、PDF生成ユースケースを構築するための引数を保持します。
type GenerateArgs struct {
	Loader    *infra.AnswerFileLoader
	Parser    infra.AnswerParser
	Machine   *wizard.Machine
	Assembler *document.Assembler
	Repo      repository.GenerationJobRepository
	Exporter  infra.ArtifactExporter
	Cfg       config.BatchConfig
	Logger    logger.AppLogger
	// Nowは省略時time.Nowです。
	Now func() time.Time
}

// LanguageOutcomeは1言語分の生成結果です。
type LanguageOutcome struct {
	Language model.Language
	Status   model.GenerationJobStatus
	Path     string
	Failure  string
}

// GenerateNoticeUseCaseは、回答ファイルから多言語の労働条件通知書PDFを生成するユースケースです。
type GenerateNoticeUseCase struct {
	loader    *infra.AnswerFileLoader
	parser    infra.AnswerParser
	machine   *wizard.Machine
	assembler *document.Assembler
	repo      repository.GenerationJobRepository
	exporter  infra.ArtifactExporter
	cfg       config.BatchConfig
	logger    logger.AppLogger
	now       func() time.Time
}

// NewGenerateNoticeUseCaseは、GenerateNoticeUseCaseの新しいインスタンスを作成します。
func NewGenerateNoticeUseCase(args GenerateArgs) *GenerateNoticeUseCase {
	now := args.Now
	if now == nil {
		now = time.Now
	}
	return &GenerateNoticeUseCase{
		loader:    args.Loader,
		parser:    args.Parser,
		machine:   args.Machine,
		assembler: args.Assembler,
		repo:      args.Repo,
		exporter:  args.Exporter,
		cfg:       args.Cfg,
		logger:    args.Logger,
		now:       now,
	}
}

// Runは、回答ファイルを確認ステップまで進め、指定された言語のPDFを並列に生成します。
// langsが空なら日本語以外の全言語を生成します。
// PDF変換やファイル保存の失敗はその言語だけをFAILEDとし、他の言語の生成は続けます。
// ジョブ記録の保存に失敗した場合は、残りの言語の生成を中断してエラーを返します。
//
// args:
//
//	ctx   : コンテキスト
//	path  : 回答ファイルのパス
//	langs : 生成する言語
//
// return:
//
//	[]LanguageOutcome : langsの順に並んだ言語ごとの結果
//	error             : 回答ファイルの不備、または失敗した言語がある場合のエラー
func (u *GenerateNoticeUseCase) Run(ctx context.Context, path string, langs []model.Language) ([]LanguageOutcome, error) {
	if len(langs) == 0 {
		langs = model.Languages[1:]
	}
	for _, lang := range langs {
		if lang == model.DefaultLanguage || !lang.Supported() {
			return nil, fmt.Errorf("%w: %s", document.ErrUnsupportedLanguage, lang)
		}
	}

	file, err := u.loader.LoadAnswerFile(path)
	if err != nil {
		return nil, err
	}
	sessionID, err := uuid.Parse(file.SessionID)
	if err != nil {
		sessionID = uuid.New()
	}
	log := u.logger.With("session_id", sessionID.String(), "path", path)

	answers, err := u.parser.ParseAnswers(file.Answers)
	if err != nil {
		return nil, fmt.Errorf("回答値の変換に失敗しました: %w", err)
	}
	s, err := fillAnswers(u.machine, answers)
	if err != nil {
		return nil, err
	}
	s, failure, err := advanceToReview(u.machine, s)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		messages := make([]string, 0, len(failure.Errors))
		for _, e := range failure.Errors {
			messages = append(messages, e.Message)
		}
		log.Warn("確認ステップまで進めませんでした", "step", int(failure.Step), "errors", messages)
		return nil, fmt.Errorf("%w: ステップ%d: %s", ErrIncompleteAnswers, failure.Step, strings.Join(messages, ", "))
	}

	log.Info("PDFの生成を開始します", "languages", len(langs), "limit", u.cfg.GenerateLimit)

	subdir := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outcomes := make([]LanguageOutcome, len(langs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(u.cfg.GenerateLimit, 1))
	for i, lang := range langs {
		g.Go(func() error {
			outcome, err := u.generateLanguage(gctx, s, sessionID, subdir, lang)
			outcomes[i] = outcome
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}

	var failed []string
	for _, o := range outcomes {
		if o.Status != model.GenerationJobStatusSuccess {
			failed = append(failed, string(o.Language))
		}
	}
	log.Info("PDFの生成が完了しました", "succeeded", len(langs)-len(failed), "failed", len(failed))
	if len(failed) > 0 {
		return outcomes, fmt.Errorf("PDF生成に失敗した言語があります: %s", strings.Join(failed, ", "))
	}
	return outcomes, nil
}

// generateLanguageは、確認ステップの状態から1言語分のPDFを生成します。
// 言語を選び直してから生成を依頼し、結果をウィザードに戻して成否を判定します。
// 返すerrorはジョブ記録の保存失敗など、他の言語も続けられない場合だけです。
func (u *GenerateNoticeUseCase) generateLanguage(ctx context.Context, review wizard.State, sessionID uuid.UUID, subdir string, lang model.Language) (LanguageOutcome, error) {
	outcome := LanguageOutcome{Language: lang, Status: model.GenerationJobStatusFailed}
	log := u.logger.With("session_id", sessionID.String(), "language", string(lang))

	s, _, err := u.machine.Reduce(review, wizard.SetField{Key: model.FieldOutputLanguage, Value: string(lang)})
	if err != nil {
		return outcome, fmt.Errorf("出力言語の選択に失敗しました: %w", err)
	}
	s, commands, err := u.machine.Reduce(s, wizard.RequestGenerate{})
	if err != nil {
		return outcome, fmt.Errorf("PDF生成の依頼に失敗しました: %w", err)
	}
	var cmd *wizard.GenerateCommand
	for _, c := range commands {
		if gc, ok := c.(wizard.GenerateCommand); ok {
			cmd = &gc
		}
	}
	if cmd == nil {
		outcome.Failure = wizard.CanGenerate(s).Reason
		log.Warn("PDFを生成できない状態です", "reason", outcome.Failure)
		return outcome, nil
	}

	job := model.NewGenerationJob(sessionID, lang, u.now())
	if err := u.repo.Save(ctx, job); err != nil {
		return outcome, fmt.Errorf("生成ジョブの保存に失敗しました: %w", err)
	}

	artifact, genErr := u.assembler.Generate(ctx, cmd.Answers, cmd.Language)
	s, _, err = u.machine.Reduce(s, wizard.GenerateResult{Token: cmd.Token, Artifact: artifact, Err: genErr})
	if err != nil {
		return outcome, fmt.Errorf("生成結果の反映に失敗しました: %w", err)
	}

	// 保留中の記録を消してから結果のステータスで保存し直す
	if err := u.repo.Delete(ctx, job); err != nil {
		return outcome, fmt.Errorf("保留中の生成ジョブの削除に失敗しました: %w", err)
	}

	if s.Generation.Status != wizard.GenerationSucceeded {
		outcome.Failure = "生成結果がウィザードに反映されませんでした"
		if genErr != nil {
			outcome.Failure = genErr.Error()
		}
		log.Error("PDFの生成に失敗しました", "job_id", job.ID.String(), "error", outcome.Failure)
		if err := u.repo.Save(ctx, job.Failed()); err != nil {
			return outcome, fmt.Errorf("ジョブのステータスをFAILEDに保存できませんでした: %w", err)
		}
		return outcome, nil
	}

	saved, err := u.exporter.Save(subdir, s.Generation.Artifact.Filename, s.Generation.Artifact.Content)
	if err != nil {
		outcome.Failure = err.Error()
		log.Error("PDFの保存に失敗しました", "job_id", job.ID.String(), "error", err)
		if err := u.repo.Save(ctx, job.Failed()); err != nil {
			return outcome, fmt.Errorf("ジョブのステータスをFAILEDに保存できませんでした: %w", err)
		}
		return outcome, nil
	}

	if err := u.repo.Save(ctx, job.Succeeded(filepath.Base(saved), len(s.Generation.Artifact.Content))); err != nil {
		return outcome, fmt.Errorf("ジョブのステータスをSUCCESSに更新できませんでした: %w", err)
	}
	outcome.Status = model.GenerationJobStatusSuccess
	outcome.Path = saved
	log.Info("PDFを生成しました", "job_id", job.ID.String(), "path", saved, "size", len(s.Generation.Artifact.Content))
	return outcome, nil
}
