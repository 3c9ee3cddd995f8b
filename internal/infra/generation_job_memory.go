package infra

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/repository"
)

type jobKey struct {
	id     string
	status model.GenerationJobStatus
}

// generationJobMemoryはプロセス内だけで生成ジョブを保持します。
type generationJobMemory struct {
	mu   sync.Mutex
	jobs map[jobKey]model.GenerationJob
}

func NewGenerationJobMemory() repository.GenerationJobRepository {
	return &generationJobMemory{jobs: make(map[jobKey]model.GenerationJob)}
}

func (m *generationJobMemory) Save(_ context.Context, job model.GenerationJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[jobKey{id: job.ID.String(), status: job.Status}] = job
	return nil
}

func (m *generationJobMemory) Delete(_ context.Context, job model.GenerationJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, jobKey{id: job.ID.String(), status: job.Status})
	return nil
}

func (m *generationJobMemory) FindListByStatus(_ context.Context, _ int, status model.GenerationJobStatus) ([]model.GenerationJob, error) {
	switch status {
	case model.GenerationJobStatusPending, model.GenerationJobStatusSuccess, model.GenerationJobStatusFailed:
	default:
		return nil, fmt.Errorf("未対応のジョブステータスです: %s", status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var jobs []model.GenerationJob
	for key, job := range m.jobs {
		if key.status == status {
			jobs = append(jobs, job)
		}
	}
	slices.SortFunc(jobs, func(a, b model.GenerationJob) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return jobs, nil
}
