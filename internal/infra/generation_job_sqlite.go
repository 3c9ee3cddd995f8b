package infra

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	_ "github.com/mattn/go-sqlite3"
)

const generationJobSchema = `
CREATE TABLE IF NOT EXISTS generation_jobs (
	id         TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	language   TEXT NOT NULL,
	status     TEXT NOT NULL,
	filename   TEXT NOT NULL DEFAULT '',
	size       INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_generation_jobs_status ON generation_jobs(status);
`

// GenerationJobSQLiteは生成ジョブをSQLiteに保存します。
type GenerationJobSQLite struct {
	db *sql.DB
}

// NewGenerationJobSQLiteは、SQLiteファイルを開いてテーブルを作成します。
//
// args:
//
//	path: データベースファイルのパス
//
// return:
//
//	*GenerationJobSQLite: 生成されたストア
//	error: 失敗時のエラー
func NewGenerationJobSQLite(path string) (*GenerationJobSQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("データベースのディレクトリ作成に失敗しました: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("データベースのオープンに失敗しました: %w", err)
	}

	// 並列生成からの書き込みをsqlite側で直列化する
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(generationJobSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("テーブルの作成に失敗しました: %w", err)
	}

	return &GenerationJobSQLite{db: db}, nil
}

func (s *GenerationJobSQLite) Save(ctx context.Context, job model.GenerationJob) error {
	record := ToRecord(job)
	_, err := s.db.ExecContext(ctx, `
INSERT INTO generation_jobs (id, session_id, language, status, filename, size, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	status = excluded.status,
	filename = excluded.filename,
	size = excluded.size`,
		record.ID, record.SessionID, record.Language, record.Status,
		record.Filename, record.Size, record.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("生成ジョブの保存に失敗しました: %w", err)
	}
	return nil
}

// Deleteは、指定ステータスで保存されているジョブを削除します。
func (s *GenerationJobSQLite) Delete(ctx context.Context, job model.GenerationJob) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM generation_jobs WHERE id = ? AND status = ?`,
		job.ID.String(), string(job.Status),
	); err != nil {
		return fmt.Errorf("生成ジョブの削除に失敗しました: %w", err)
	}
	return nil
}

// FindListByStatusは、sizeずつページングしながら指定ステータスのジョブをすべて取得します。
func (s *GenerationJobSQLite) FindListByStatus(ctx context.Context, size int, status model.GenerationJobStatus) ([]model.GenerationJob, error) {
	if size <= 0 {
		return nil, fmt.Errorf("取得件数は1以上を指定してください: %d", size)
	}

	var jobs []model.GenerationJob
	for offset := 0; ; offset += size {
		page, err := s.findPage(ctx, size, offset, status)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, page...)
		if len(page) < size {
			break
		}
	}
	return jobs, nil
}

func (s *GenerationJobSQLite) findPage(ctx context.Context, size, offset int, status model.GenerationJobStatus) ([]model.GenerationJob, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, session_id, language, status, filename, size, created_at
FROM generation_jobs
WHERE status = ?
ORDER BY created_at, id
LIMIT ? OFFSET ?`, string(status), size, offset)
	if err != nil {
		return nil, fmt.Errorf("生成ジョブの検索に失敗しました: %w", err)
	}
	defer rows.Close()

	var jobs []model.GenerationJob
	for rows.Next() {
		var (
			record    GenerationJobRecord
			createdAt string
		)
		if err := rows.Scan(&record.ID, &record.SessionID, &record.Language, &record.Status,
			&record.Filename, &record.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("生成ジョブの読み取りに失敗しました: %w", err)
		}
		if record.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("作成日時のパースに失敗しました: %w", err)
		}
		job, err := record.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("生成ジョブ %s の復元に失敗しました: %w", record.ID, err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("生成ジョブの読み取りに失敗しました: %w", err)
	}
	return jobs, nil
}

func (s *GenerationJobSQLite) Close() error {
	return s.db.Close()
}
