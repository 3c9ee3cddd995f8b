package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/Altair29/J-GLOW-sub002/internal/config"
	"github.com/Altair29/J-GLOW-sub002/internal/constants"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/schema"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/validation"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/wizard"
	"github.com/Altair29/J-GLOW-sub002/internal/infra"
	"github.com/Altair29/J-GLOW-sub002/internal/logger"
)

const (
	resultOK = "OK"
	resultNG = "NG"
)

// ValidateArgsは、一括チェックユースケースを構築するための引数を保持します。
//
// フィールド:
//
//	Loader   : 回答ファイルのローダー
//	Parser   : 回答値のパーサー
//	Machine  : ウィザードの遷移規則
//	Exporter : チェック結果のエクスポーター
//	Cfg      : 一括処理の設定
//	Logger   : ロガー
type ValidateArgs struct {
	Loader   *infra.AnswerFileLoader
	Parser   infra.AnswerParser
	Machine  *wizard.Machine
	Exporter infra.FileExporter
	Cfg      config.BatchConfig
	Logger   logger.AppLogger
}

// ValidateSummaryは一括チェックの集計です。
type ValidateSummary struct {
	Total  int
	Passed int
	Failed int
}

// validateAnswerFilesUseCaseは、回答ファイルをウィザードに通して未入力・不正な項目を洗い出すユースケースです。
type validateAnswerFilesUseCase struct {
	loader   *infra.AnswerFileLoader
	parser   infra.AnswerParser
	machine  *wizard.Machine
	exporter infra.FileExporter
	cfg      config.BatchConfig
	logger   logger.AppLogger
}

// NewValidateAnswerFilesUseCaseは、validateAnswerFilesUseCaseの新しいインスタンスを生成します。
//
// args:
//
//	args : ValidateArgs構造体
//
// return:
//
//	*validateAnswerFilesUseCase : 生成されたユースケースインスタンス
func NewValidateAnswerFilesUseCase(args ValidateArgs) *validateAnswerFilesUseCase {
	return &validateAnswerFilesUseCase{
		loader:   args.Loader,
		parser:   args.Parser,
		machine:  args.Machine,
		exporter: args.Exporter,
		cfg:      args.Cfg,
		logger:   args.Logger,
	}
}

// fileReportは1ファイル分のチェック結果です。
type fileReport struct {
	path string
	ok   bool
	rows []infra.ReportRow
}

// Runは、dir配下の回答ファイルをワーカーで並列にチェックし、結果をCSVに書き出します。
//
// args:
//
//	ctx : コンテキスト
//	dir : 回答ファイルのディレクトリ
//
// return:
//
//	ValidateSummary : 集計結果
//	error           : 処理中に発生したエラー
func (u *validateAnswerFilesUseCase) Run(ctx context.Context, dir string) (ValidateSummary, error) {
	u.logger.Info("回答ファイルの一覧を取得します", "dir", dir)
	paths, err := u.loader.ListAnswerFilePaths(dir)
	if err != nil {
		u.logger.Error("回答ファイルの一覧取得に失敗しました", "error", err)
		return ValidateSummary{}, fmt.Errorf("回答ファイルの一覧取得に失敗しました: %w", err)
	}

	jobs := make(chan string, len(paths))
	reports := make(chan fileReport, len(paths))
	var wg sync.WaitGroup

	for i := 0; i < max(u.cfg.WorkerNum, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u.worker(ctx, jobs, reports)
		}()
	}

	for _, path := range paths {
		jobs <- path
	}
	close(jobs)

	wg.Wait()
	close(reports)

	var collected []fileReport
	for r := range reports {
		collected = append(collected, r)
	}
	// ワーカーの完了順によらずファイル名順で出力する
	slices.SortFunc(collected, func(a, b fileReport) int {
		return strings.Compare(a.path, b.path)
	})

	summary := ValidateSummary{Total: len(collected)}
	writtenCount := 0
	for _, r := range collected {
		if r.ok {
			summary.Passed++
		} else {
			summary.Failed++
		}
		for _, row := range r.rows {
			if err := u.exporter.Write(row); err != nil {
				u.logger.Error("チェック結果の書き込みに失敗しました", "path", r.path, "error", err)
				continue
			}
			writtenCount++
			if writtenCount%constants.LogBatchCount == 0 {
				u.logger.Info("チェック結果を書き込みました", "count", writtenCount)
			}
		}
	}

	if err := u.exporter.Close(); err != nil {
		u.logger.Error("exporterのクローズに失敗しました", "error", err)
		return summary, fmt.Errorf("exporterのクローズに失敗しました: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("一括チェックが中断されました: %w", err)
	}

	u.logger.Info("一括チェックが完了しました", "total", summary.Total, "passed", summary.Passed, "failed", summary.Failed)
	return summary, nil
}

// workerは、ファイルパスを受け取ってチェックし、結果をチャネルに送信するワーカー関数です。
//
// args:
//
//	ctx     : コンテキスト
//	jobs    : チェック対象のファイルパスを受信するチャネル
//	results : チェック結果を送信するチャネル
func (u *validateAnswerFilesUseCase) worker(ctx context.Context, jobs <-chan string, results chan<- fileReport) {
	for path := range jobs {
		select {

		case <-ctx.Done():
			return

		default:
			report := u.processFile(path)
			if !report.ok {
				u.logger.Debug("未完了の回答ファイルがあります", "path", path)
			}

			select {
			case results <- report:
			case <-ctx.Done():
				return
			}
		}
	}
}

// processFileは、単一の回答ファイルを確認ステップまで進め、結果行を作成します。
// ファイルの読み込みや値の変換に失敗した場合もNGの行として報告します。
func (u *validateAnswerFilesUseCase) processFile(path string) fileReport {
	name := filepath.Base(path)
	failed := func(message string) fileReport {
		return fileReport{path: path, rows: []infra.ReportRow{{File: name, Result: resultNG, Message: message}}}
	}

	file, err := u.loader.LoadAnswerFile(path)
	if err != nil {
		u.logger.Warn("回答ファイルの読み込みに失敗しました", "path", path, "error", err)
		return failed(err.Error())
	}
	answers, err := u.parser.ParseAnswers(file.Answers)
	if err != nil {
		u.logger.Warn("回答値の変換に失敗しました", "path", path, "error", err)
		return failed(err.Error())
	}

	s, err := fillAnswers(u.machine, answers)
	if err != nil {
		return failed(err.Error())
	}
	s, failure, err := advanceToReview(u.machine, s)
	if err != nil {
		u.logger.Error("回答ファイルのチェックに失敗しました", "path", path, "error", err)
		return failed(err.Error())
	}

	base := infra.ReportRow{
		File:         name,
		WorkerName:   answers.Text(model.FieldWorkerName),
		VisaCategory: schema.OptionLabel(model.FieldVisaCategory, answers.Text(model.FieldVisaCategory)),
	}
	if failure == nil {
		row := base
		row.Result = resultOK
		return fileReport{path: path, ok: s.Step == model.StepReview, rows: []infra.ReportRow{row}}
	}

	report := fileReport{path: path}
	for _, e := range failure.Errors {
		row := base
		row.Result = resultNG
		row.Step = int(failure.Step)
		row.Field = schema.Lookup(e.Key).Label
		row.Message = e.Message
		report.rows = append(report.rows, row)
	}
	if len(report.rows) == 0 {
		row := base
		row.Result = resultNG
		row.Step = int(failure.Step)
		row.Message = validation.BannerMessage
		report.rows = append(report.rows, row)
	}
	return report
}
