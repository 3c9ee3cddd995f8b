package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type GenerationJobStatus string

const (
	GenerationJobStatusPending GenerationJobStatus = "PENDING"
	GenerationJobStatusSuccess GenerationJobStatus = "SUCCESS"
	GenerationJobStatusFailed  GenerationJobStatus = "FAILED"
)

// GenerationJobはPDF生成1件分の記録です。回答内容そのものは保持しません。
type GenerationJob struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Language  Language
	Status    GenerationJobStatus
	Filename  string
	Size      int
	CreatedAt time.Time
}

func NewGenerationJob(sessionID uuid.UUID, lang Language, now time.Time) GenerationJob {
	return GenerationJob{
		ID:        uuid.New(),
		SessionID: sessionID,
		Language:  lang,
		Status:    GenerationJobStatusPending,
		CreatedAt: now,
	}
}

func (j GenerationJob) Succeeded(filename string, size int) GenerationJob {
	j.Status = GenerationJobStatusSuccess
	j.Filename = filename
	j.Size = size
	return j
}

func (j GenerationJob) Failed() GenerationJob {
	j.Status = GenerationJobStatusFailed
	return j
}

// ReconstructGenerationJobは永続化された値からGenerationJobを復元します。
func ReconstructGenerationJob(id, sessionID, lang, status, filename string, size int, createdAt time.Time) (GenerationJob, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return GenerationJob{}, fmt.Errorf("ジョブIDのパースに失敗しました: %w", err)
	}
	parsedSession, err := uuid.Parse(sessionID)
	if err != nil {
		return GenerationJob{}, fmt.Errorf("セッションIDのパースに失敗しました: %w", err)
	}

	jobStatus := GenerationJobStatus(status)
	switch jobStatus {
	case GenerationJobStatusPending, GenerationJobStatusSuccess, GenerationJobStatusFailed:
	default:
		return GenerationJob{}, fmt.Errorf("不明なジョブステータスです: %s", status)
	}

	language := Language(lang)
	if !language.Supported() {
		return GenerationJob{}, fmt.Errorf("未対応の言語です: %s", lang)
	}

	return GenerationJob{
		ID:        parsedID,
		SessionID: parsedSession,
		Language:  language,
		Status:    jobStatus,
		Filename:  filename,
		Size:      size,
		CreatedAt: createdAt,
	}, nil
}
