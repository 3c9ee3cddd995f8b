package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Altair29/J-GLOW-sub002/internal/constants"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/document"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/rule"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/wizard"
	"github.com/Altair29/J-GLOW-sub002/internal/infra"
	"github.com/Altair29/J-GLOW-sub002/internal/logger"
)

const completeAnswerFile = `
session_id: 6f1c2d3e-4b5a-4c7d-8e9f-0a1b2c3d4e5f
answers:
  worker_name: NGUYEN VAN A
  company_name: 株式会社サンプル
  company_address: 東京都千代田区丸の内1-1-1
  representative_name: 山田太郎
  visa_category: 特定技能1号
  sector: 建設
  contract_type: 期間の定めあり
  contract_start: 2026年4月1日
  contract_end: 2027/03/31
  renewal_policy: 更新する場合があり得る
  workplace: 本社工場
  job_description: 型枠施工
  work_schedule_type: 固定時間制
  start_time: 8時
  end_time: "17:00"
  break_minutes: 60分
  rest_days: 土、日、祝
  overtime_exists: あり
  wage_type: 月給
  base_wage: 22万円
  payment_day: 毎月25日
`

// 基本情報の会社名が空で、ステップ1で止まる
const incompleteAnswerFile = `
answers:
  worker_name: TRAN THI B
  company_address: 大阪府大阪市北区1-1
  representative_name: 佐藤花子
  visa_category: 育成就労
`

// fakeRendererは描画されたHTMLの言語属性を見て、指定された言語だけ失敗させます。
type fakeRenderer struct {
	mu    sync.Mutex
	fail  map[string]bool
	calls int
}

func (f *fakeRenderer) RenderPDF(_ context.Context, html string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for lang := range f.fail {
		if strings.Contains(html, `data-language="`+lang+`"`) {
			return nil, errors.New("ブラウザがクラッシュしました")
		}
	}
	return []byte("%PDF-1.7 " + html[:16]), nil
}

type fixture struct {
	loader    *infra.AnswerFileLoader
	parser    infra.AnswerParser
	machine   *wizard.Machine
	assembler *document.Assembler
	logger    logger.AppLogger
}

func newFixture(t *testing.T, renderer document.Renderer) fixture {
	t.Helper()
	engine, err := rule.DefaultEngine()
	if err != nil {
		t.Fatalf("DefaultEngine: %v", err)
	}
	assembler, err := document.NewAssembler(document.AssemblerArgs{
		Engine:    engine,
		Renderer:  renderer,
		Inspector: infra.NewHTMLDocument(),
	})
	if err != nil {
		t.Fatalf("NewAssembler: %v", err)
	}
	machine, err := wizard.NewMachine(wizard.MachineArgs{Engine: engine, Assembler: assembler})
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	return fixture{
		loader:    infra.NewAnswerFileLoader(constants.GetAnswerFileExtensions()),
		parser:    infra.NewAnswerParser(constants.GetAnswerPatterns()),
		machine:   machine,
		assembler: assembler,
		logger:    logger.NewAppLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
