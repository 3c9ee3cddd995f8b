package usecase

import (
	"context"
	"fmt"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/repository"
	"github.com/Altair29/J-GLOW-sub002/internal/logger"
)

// 一度に取得するジョブの数
const jobPageSize = 100

// GenerationJobUseCaseは、生成ジョブの記録を参照・整理するユースケースです。
type GenerationJobUseCase struct {
	repo   repository.GenerationJobRepository
	logger logger.AppLogger
}

func NewGenerationJobUseCase(repo repository.GenerationJobRepository, logger logger.AppLogger) *GenerationJobUseCase {
	return &GenerationJobUseCase{repo: repo, logger: logger}
}

// Listは、指定ステータスの生成ジョブを返します。
func (u *GenerationJobUseCase) List(ctx context.Context, status model.GenerationJobStatus) ([]model.GenerationJob, error) {
	jobs, err := u.repo.FindListByStatus(ctx, jobPageSize, status)
	if err != nil {
		u.logger.Error("生成ジョブの検索に失敗しました", "status", string(status), "error", err)
		return nil, fmt.Errorf("生成ジョブの検索に失敗しました: %w", err)
	}
	return jobs, nil
}

// RecoverPendingは、中断された実行で残ったPENDINGのジョブをFAILEDに付け替えます。
// 回答内容は記録していないため再生成はせず、件数を返します。
func (u *GenerationJobUseCase) RecoverPending(ctx context.Context) (int, error) {
	jobs, err := u.List(ctx, model.GenerationJobStatusPending)
	if err != nil {
		return 0, err
	}
	if len(jobs) == 0 {
		u.logger.Info("保留中の生成ジョブはありません")
		return 0, nil
	}

	recovered := 0
	for _, job := range jobs {
		if err := u.repo.Delete(ctx, job); err != nil {
			u.logger.Error("保留中の生成ジョブの削除に失敗しました", "job_id", job.ID.String(), "error", err)
			return recovered, fmt.Errorf("保留中の生成ジョブの削除に失敗しました: %w", err)
		}
		if err := u.repo.Save(ctx, job.Failed()); err != nil {
			u.logger.Error("ジョブのステータスをFAILEDに保存できませんでした", "job_id", job.ID.String(), "error", err)
			return recovered, fmt.Errorf("ジョブのステータスをFAILEDに保存できませんでした: %w", err)
		}
		recovered++
	}
	u.logger.Info("保留中の生成ジョブをFAILEDにしました", "count", recovered)
	return recovered, nil
}
