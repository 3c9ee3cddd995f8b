package infra

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/repository"
	"github.com/redis/go-redis/v9"
)

type generationJobClient struct {
	redis *redis.Client
}

func NewGenerationJobClient(rds *redis.Client) repository.GenerationJobRepository {
	return &generationJobClient{
		redis: rds,
	}
}

func (r *generationJobClient) Save(ctx context.Context, job model.GenerationJob) error {
	data, err := json.Marshal(ToRecord(job))
	if err != nil {
		return fmt.Errorf("生成ジョブのJSON変換に失敗しました: %w", err)
	}

	key, err := r.generateJobKey(job)
	if err != nil {
		return fmt.Errorf("ジョブキーの生成に失敗しました: %w", err)
	}

	if err := r.redis.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("生成ジョブのredisへの保存に失敗しました: %w", err)
	}

	return nil
}

func (r *generationJobClient) Delete(ctx context.Context, job model.GenerationJob) error {
	key, err := r.generateJobKey(job)
	if err != nil {
		return fmt.Errorf("削除するジョブキーの生成に失敗しました: %w", err)
	}
	if err := r.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("生成ジョブのredisからの削除に失敗しました: %w", err)
	}
	return nil
}

func (r *generationJobClient) FindListByStatus(ctx context.Context, size int, status model.GenerationJobStatus) ([]model.GenerationJob, error) {
	var jobs []model.GenerationJob
	var cursor uint64
	var err error

	// バッチサイズを設定
	batchSize := int64(size)

	pattern, err := r.statusPrefix(status)
	if err != nil {
		return nil, err
	}
	pattern += "*"

	for {
		// SCANコマンドでキーを取得
		var keys []string
		keys, cursor, err = r.redis.Scan(ctx, cursor, pattern, batchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("redisのSCANに失敗しました: %w", err)
		}

		// 取得したキーからジョブデータを取得
		for _, key := range keys {
			value, err := r.redis.Get(ctx, key).Result()
			if err != nil {
				return nil, fmt.Errorf("キー %s の取得に失敗しました: %w", key, err)
			}

			var record GenerationJobRecord
			if err := json.Unmarshal([]byte(value), &record); err != nil {
				return nil, fmt.Errorf("キー %s のJSON解析に失敗しました: %w", key, err)
			}
			job, err := record.ToDomain()
			if err != nil {
				return nil, fmt.Errorf("キー %s の復元に失敗しました: %w", key, err)
			}
			jobs = append(jobs, job)
		}

		// カーソルが0になったら終了
		if cursor == 0 {
			break
		}
	}

	return jobs, nil
}

func (r *generationJobClient) generateJobKey(job model.GenerationJob) (string, error) {
	prefix, err := r.statusPrefix(job.Status)
	if err != nil {
		return "", err
	}
	return prefix + job.ID.String(), nil
}

func (r *generationJobClient) statusPrefix(status model.GenerationJobStatus) (string, error) {
	switch status {
	case model.GenerationJobStatusPending:
		return "pending_job:", nil
	case model.GenerationJobStatusSuccess:
		return "success_job:", nil
	case model.GenerationJobStatusFailed:
		return "failed_job:", nil
	default:
		return "", fmt.Errorf("未対応のジョブステータスです: %s", status)
	}
}
