package repository

import (
	"context"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
)

type GenerationJobRepository interface {
	Save(ctx context.Context, job model.GenerationJob) error
	Delete(ctx context.Context, job model.GenerationJob) error
	FindListByStatus(ctx context.Context, size int, status model.GenerationJobStatus) ([]model.GenerationJob, error)
}
