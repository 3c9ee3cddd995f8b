package infra

import (
	"time"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
)

// GenerationJobRecordは生成ジョブの保存形式です。
type GenerationJobRecord struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Language  string    `json:"language"`
	Status    string    `json:"status"`
	Filename  string    `json:"filename"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

func (g *GenerationJobRecord) ToDomain() (model.GenerationJob, error) {
	job, err := model.ReconstructGenerationJob(g.ID, g.SessionID, g.Language, g.Status, g.Filename, g.Size, g.CreatedAt)
	if err != nil {
		return model.GenerationJob{}, err
	}

	return job, nil
}

func ToRecord(job model.GenerationJob) GenerationJobRecord {
	return GenerationJobRecord{
		ID:        job.ID.String(),
		SessionID: job.SessionID.String(),
		Language:  string(job.Language),
		Status:    string(job.Status),
		Filename:  job.Filename,
		Size:      job.Size,
		CreatedAt: job.CreatedAt.UTC(),
	}
}
