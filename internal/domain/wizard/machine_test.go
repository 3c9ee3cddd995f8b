package wizard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/document"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/rule"
)

type fakeRenderer struct {
	calls int
}

func (f *fakeRenderer) RenderPDF(context.Context, string) ([]byte, error) {
	f.calls++
	return []byte("%PDF-1.7"), nil
}

type counterToken struct {
	n int
}

func (c *counterToken) next() string {
	c.n++
	return fmt.Sprintf("token-%d", c.n)
}

func newMachine(t *testing.T, renderer document.Renderer) *Machine {
	t.Helper()
	e, err := rule.DefaultEngine()
	if err != nil {
		t.Fatalf("DefaultEngine: %v", err)
	}
	a, err := document.NewAssembler(document.AssemblerArgs{Engine: e, Renderer: renderer})
	if err != nil {
		t.Fatalf("NewAssembler: %v", err)
	}
	tokens := &counterToken{}
	m, err := NewMachine(MachineArgs{Engine: e, Assembler: a, NewToken: tokens.next})
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	return m
}

// applyはactionsを順に適用し、最後の状態と発行されたコマンドを返します。
func apply(t *testing.T, m *Machine, s State, actions ...Action) (State, []Command) {
	t.Helper()
	var cmds []Command
	for _, a := range actions {
		next, c, err := m.Reduce(s, a)
		if err != nil {
			t.Fatalf("Reduce(%s): %v", ActionName(a), err)
		}
		s = next
		cmds = append(cmds, c...)
	}
	return s, cmds
}

func view(t *testing.T, m *Machine, s State) View {
	t.Helper()
	v, err := m.View(s)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	return v
}

var basicInfo = []Action{
	SetField{Key: model.FieldWorkerName, Value: "NGUYEN VAN A"},
	SetField{Key: model.FieldCompanyName, Value: "株式会社サンプル"},
	SetField{Key: model.FieldCompanyAddress, Value: "東京都千代田区丸の内1-1-1"},
	SetField{Key: model.FieldRepresentativeName, Value: "山田太郎"},
}

var contract = []Action{
	SetField{Key: model.FieldSector, Value: "construction"},
	SetField{Key: model.FieldContractStart, Value: "2026-04-01"},
	SetField{Key: model.FieldContractEnd, Value: "2027-03-31"},
	SetField{Key: model.FieldWorkplace, Value: "本社工場"},
	SetField{Key: model.FieldJobDescription, Value: "型枠施工"},
}

var schedule = []Action{
	SetField{Key: model.FieldStartTime, Value: "08:00"},
	SetField{Key: model.FieldEndTime, Value: "17:00"},
	SetField{Key: model.FieldRestDays, Value: []string{"sat", "sun"}},
}

var wage = []Action{
	SetField{Key: model.FieldBaseWage, Value: "220000"},
}

func steps(groups ...[]Action) []Action {
	var out []Action
	for _, g := range groups {
		out = append(out, g...)
		out = append(out, Next{})
	}
	return out
}

func reachReview(t *testing.T, m *Machine) State {
	t.Helper()
	s, _ := apply(t, m, Initial(), steps(basicInfo, contract, schedule, wage)...)
	if s.Step != model.StepReview {
		t.Fatalf("Step = %d, want review (errors %v)", s.Step, s.Errors)
	}
	return s
}

func TestScenarioEmptyBasicInfo(t *testing.T) {
	m := newMachine(t, nil)
	s, _ := apply(t, m, Initial(), Next{})
	if s.Step != model.StepBasicInfo {
		t.Fatalf("Step = %d, want 1", s.Step)
	}
	v := view(t, m, s)
	want := []string{
		"労働者氏名を入力してください",
		"会社名を入力してください",
		"住所を入力してください",
		"使用者氏名を入力してください",
	}
	if got := v.Messages(); !slices.Equal(got, want) {
		t.Errorf("Messages = %v, want %v", got, want)
	}
	if v.Banner != "必須項目が入力されていません" {
		t.Errorf("Banner = %q", v.Banner)
	}
	if v.Heading != "基本情報" {
		t.Errorf("Heading = %q", v.Heading)
	}
}

func TestScenarioFixedTermAdvancesToSchedule(t *testing.T) {
	m := newMachine(t, nil)
	s, _ := apply(t, m, Initial(), steps(basicInfo, contract)...)
	if s.Step != model.StepSchedule {
		t.Fatalf("Step = %d, want 3 (errors %v)", s.Step, s.Errors)
	}
	if got := view(t, m, s).Heading; got != "勤務時間" {
		t.Errorf("Heading = %q, want 勤務時間", got)
	}
	if s.MaxCompleted != model.StepContract {
		t.Errorf("MaxCompleted = %d, want 2", s.MaxCompleted)
	}
}

func TestScenarioIkuseiTransferClause(t *testing.T) {
	m := newMachine(t, nil)
	s, _ := apply(t, m, Initial(), steps(basicInfo)...)
	s, _ = apply(t, m, s, contract...)

	if _, ok := view(t, m, s).Field(model.FieldTransferClauseEnabled); ok {
		t.Fatal("transfer clause visible for specified skill 1")
	}

	s, _ = apply(t, m, s, SetField{Key: model.FieldVisaCategory, Value: "ikusei"})
	if _, ok := view(t, m, s).Field(model.FieldTransferClauseEnabled); !ok {
		t.Fatal("transfer clause not visible for ikusei")
	}

	s, _ = apply(t, m, s, SetField{Key: model.FieldTransferClauseEnabled, Value: true})
	v := view(t, m, s)
	terms := []model.FieldKey{
		model.FieldTransferRestrictionPeriod,
		model.FieldTransferUnavoidableTerms,
		model.FieldTransferOwnRequestTerms,
	}
	for _, k := range terms {
		f, ok := v.Field(k)
		if !ok || !f.Required {
			t.Errorf("%s visible=%v required=%v, want required", k, ok, f.Required)
		}
	}

	s, _ = apply(t, m, s, Next{})
	if s.Step != model.StepContract {
		t.Fatalf("Step = %d, want 2", s.Step)
	}
	if len(s.Errors) != len(terms) {
		t.Errorf("Errors = %v", s.Errors)
	}
	for _, k := range terms {
		if s.Errors[k] == "" {
			t.Errorf("no error for %s", k)
		}
	}
}

func TestScenarioIndefiniteContract(t *testing.T) {
	m := newMachine(t, nil)
	s, _ := apply(t, m, Initial(), steps(basicInfo)...)
	s, _ = apply(t, m, s,
		SetField{Key: model.FieldContractType, Value: "indefinite"},
		SetField{Key: model.FieldSector, Value: "construction"},
		SetField{Key: model.FieldWorkplace, Value: "本社工場"},
		SetField{Key: model.FieldJobDescription, Value: "型枠施工"},
	)
	if _, ok := view(t, m, s).Field(model.FieldContractStart); ok {
		t.Fatal("contract start visible for indefinite contract")
	}
	s, _ = apply(t, m, s, Next{})
	if s.Step != model.StepSchedule {
		t.Errorf("Step = %d, want 3 (errors %v)", s.Step, s.Errors)
	}
}

func TestScenarioGenerateGate(t *testing.T) {
	renderer := &fakeRenderer{}
	m := newMachine(t, renderer)
	s := reachReview(t, m)

	v := view(t, m, s)
	if v.Heading != "確認・PDF出力" {
		t.Errorf("Heading = %q", v.Heading)
	}
	if v.Generate.Enabled {
		t.Error("generate enabled while language is Japanese")
	}
	if v.Generate.Advisory != "外国語を1つ選択するとPDFを生成できます" {
		t.Errorf("Advisory = %q", v.Generate.Advisory)
	}
	if v.Preview == nil || v.Preview.Bilingual {
		t.Errorf("Preview = %+v, want Japanese preview", v.Preview)
	}

	// 日本語のまま依頼しても何も起きない
	same, cmds := apply(t, m, s, RequestGenerate{})
	if len(cmds) != 0 || same.Generation.Pending() {
		t.Fatalf("generation requested while Japanese: %v", cmds)
	}

	s, _ = apply(t, m, s, SetField{Key: model.FieldOutputLanguage, Value: "en"})
	v = view(t, m, s)
	if !v.Generate.Enabled || v.Generate.Advisory != "" {
		t.Fatalf("Generate = %+v, want enabled", v.Generate)
	}
	if !v.Preview.Bilingual {
		t.Error("preview is not bilingual after selecting English")
	}

	s, cmds = apply(t, m, s, RequestGenerate{})
	if len(cmds) != 1 {
		t.Fatalf("commands = %v", cmds)
	}
	cmd, ok := cmds[0].(GenerateCommand)
	if !ok {
		t.Fatalf("command = %T", cmds[0])
	}
	if cmd.Language != model.English || !cmd.Answers.Equal(s.Answers) {
		t.Errorf("GenerateCommand = %+v", cmd)
	}

	art, err := m.assembler.Generate(context.Background(), cmd.Answers, cmd.Language)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	s, _ = apply(t, m, s, GenerateResult{Token: cmd.Token, Artifact: art})
	if s.Generation.Status != GenerationSucceeded {
		t.Fatalf("Status = %s", s.Generation.Status)
	}
	if !strings.HasSuffix(s.Generation.Artifact.Filename, ".pdf") {
		t.Errorf("Filename = %q", s.Generation.Artifact.Filename)
	}
	if renderer.calls != 1 {
		t.Errorf("renderer calls = %d", renderer.calls)
	}
	if view(t, m, s).Step != model.StepReview {
		t.Error("wizard left review after generation")
	}
}

func TestNavigationPreservesAnswers(t *testing.T) {
	m := newMachine(t, nil)
	s := reachReview(t, m)
	before := s.Answers.Clone()

	sequences := [][]Action{
		{Back{}, Back{}, Back{}, Back{}, Back{}},
		{JumpTo{Step: 1}, Next{}, Next{}, JumpTo{Step: 4}, Next{}},
		{JumpTo{Step: 3}, Back{}, JumpTo{Step: 4}, Next{}},
	}
	for i, seq := range sequences {
		t.Run(fmt.Sprintf("sequence %d", i), func(t *testing.T) {
			after, _ := apply(t, m, s, seq...)
			if !after.Answers.Equal(before) {
				t.Errorf("answers changed: %v -> %v", before.Keys(), after.Answers.Keys())
			}
			if after.MaxCompleted != model.StepWage {
				t.Errorf("MaxCompleted = %d, want 4", after.MaxCompleted)
			}
		})
	}
}

func TestHiddenValueSurvivesUntilVisibleAgain(t *testing.T) {
	m := newMachine(t, nil)
	s, _ := apply(t, m, Initial(), steps(basicInfo)...)
	s, _ = apply(t, m, s, contract...)
	s, _ = apply(t, m, s,
		SetField{Key: model.FieldContractType, Value: "indefinite"},
		Next{},
		Back{},
		SetField{Key: model.FieldContractType, Value: "fixed"},
	)
	if got := s.Answers.Text(model.FieldContractStart); got != "2026-04-01" {
		t.Errorf("contract start = %q, want preserved", got)
	}
	f, ok := view(t, m, s).Field(model.FieldContractStart)
	if !ok || f.Value != "2026-04-01" {
		t.Errorf("contract start field = %+v visible=%v", f, ok)
	}
}

func TestJumpTo(t *testing.T) {
	m := newMachine(t, nil)
	s, _ := apply(t, m, Initial(), steps(basicInfo, contract)...)

	tests := []struct {
		name     string
		target   model.Step
		wantStep model.Step
	}{
		{name: "completed step", target: model.StepBasicInfo, wantStep: model.StepBasicInfo},
		{name: "current step is not a jump target", target: model.StepSchedule, wantStep: model.StepSchedule},
		{name: "step not validated yet", target: model.StepWage, wantStep: model.StepSchedule},
		{name: "out of range", target: 9, wantStep: model.StepSchedule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := apply(t, m, s, JumpTo{Step: tt.target})
			if got.Step != tt.wantStep {
				t.Errorf("Step = %d, want %d", got.Step, tt.wantStep)
			}
		})
	}

	// ステップ3に到達しただけでは、戻った後にステップ3へは移動できない
	back, _ := apply(t, m, s, Back{}, Back{})
	if got, _ := apply(t, m, back, JumpTo{Step: model.StepSchedule}); got.Step != model.StepBasicInfo {
		t.Errorf("JumpTo(3) with MaxCompleted=%d moved to %d", back.MaxCompleted, got.Step)
	}
	if v := view(t, m, back); v.Tabs[model.StepSchedule-1].Reachable {
		t.Error("tab 3 reachable before step 3 passed validation")
	}

	// 3 -> 1 -> 2 はチェックを通過したステップ間の移動なので許可される
	forward, _ := apply(t, m, back, JumpTo{Step: model.StepContract})
	if forward.Step != model.StepContract || forward.MaxCompleted != model.StepContract {
		t.Errorf("Step = %d, MaxCompleted = %d, want 2, 2", forward.Step, forward.MaxCompleted)
	}
}

func TestBackAndNextAtEnds(t *testing.T) {
	m := newMachine(t, nil)
	s, _ := apply(t, m, Initial(), Back{})
	if s.Step != model.StepBasicInfo {
		t.Errorf("Back from step 1 moved to %d", s.Step)
	}
	review := reachReview(t, m)
	after, _ := apply(t, m, review, Next{})
	if after.Step != model.StepReview {
		t.Errorf("Next from review moved to %d", after.Step)
	}
	if view(t, m, review).CanNext {
		t.Error("CanNext true at review")
	}
}

func TestSetField(t *testing.T) {
	m := newMachine(t, nil)
	failed, _ := apply(t, m, Initial(), Next{})

	t.Run("clears only the corrected field", func(t *testing.T) {
		s, _ := apply(t, m, failed, SetField{Key: model.FieldWorkerName, Value: "NGUYEN VAN A"})
		if _, ok := s.Errors[model.FieldWorkerName]; ok {
			t.Error("worker name error not cleared")
		}
		if len(s.Errors) != 3 || !s.Banner {
			t.Errorf("Errors = %v, Banner = %v", s.Errors, s.Banner)
		}
		if len(failed.Errors) != 4 {
			t.Error("Reduce mutated the previous state")
		}
	})

	t.Run("empty value keeps the error", func(t *testing.T) {
		s, _ := apply(t, m, failed, SetField{Key: model.FieldWorkerName, Value: ""})
		if s.Errors[model.FieldWorkerName] == "" {
			t.Error("error cleared by empty input")
		}
	})

	t.Run("banner clears with the last error", func(t *testing.T) {
		s, _ := apply(t, m, failed, basicInfo...)
		if len(s.Errors) != 0 || s.Banner {
			t.Errorf("Errors = %v, Banner = %v", s.Errors, s.Banner)
		}
		if s.Step != model.StepBasicInfo {
			t.Error("SetField moved the wizard")
		}
	})

	t.Run("revision increases per edit", func(t *testing.T) {
		s, _ := apply(t, m, Initial(), basicInfo...)
		if s.Revision != len(basicInfo) {
			t.Errorf("Revision = %d, want %d", s.Revision, len(basicInfo))
		}
	})

	errTests := []struct {
		name   string
		action SetField
		want   error
	}{
		{name: "unknown field", action: SetField{Key: "nickname", Value: "x"}, want: ErrUnknownField},
		{name: "checkbox needs bool", action: SetField{Key: model.FieldOvertimeExists, Value: "yes"}, want: ErrTypeMismatch},
		{name: "multiselect needs items", action: SetField{Key: model.FieldRestDays, Value: "sun"}, want: ErrTypeMismatch},
		{name: "text needs string", action: SetField{Key: model.FieldBaseWage, Value: 220000}, want: ErrTypeMismatch},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, err := m.Reduce(Initial(), tt.action)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if s.Revision != 0 {
				t.Error("state changed on error")
			}
		})
	}
}

func TestGenerationLifecycle(t *testing.T) {
	m := newMachine(t, nil)
	ready, _ := apply(t, m, reachReview(t, m), SetField{Key: model.FieldOutputLanguage, Value: "vi"})
	pending, cmds := apply(t, m, ready, RequestGenerate{})
	if len(cmds) != 1 || !pending.Generation.Pending() {
		t.Fatalf("commands = %v, generation = %+v", cmds, pending.Generation)
	}
	token := cmds[0].(GenerateCommand).Token
	artifact := document.Artifact{Filename: document.Filename(model.Vietnamese), Language: model.Vietnamese, Content: []byte("%PDF")}

	t.Run("no re-entrant generation", func(t *testing.T) {
		s, cmds := apply(t, m, pending, RequestGenerate{})
		if len(cmds) != 0 || s.Generation.Token != token {
			t.Errorf("second request issued %v", cmds)
		}
		if view(t, m, pending).Generate.Enabled {
			t.Error("generate enabled while pending")
		}
	})

	t.Run("unknown token is dropped", func(t *testing.T) {
		s, _ := apply(t, m, pending, GenerateResult{Token: "other", Artifact: artifact})
		if !s.Generation.Pending() {
			t.Errorf("Status = %s, want pending", s.Generation.Status)
		}
	})

	t.Run("result for edited answers is dropped", func(t *testing.T) {
		s, _ := apply(t, m, pending,
			SetField{Key: model.FieldOutputLanguage, Value: "en"},
			GenerateResult{Token: token, Artifact: artifact},
		)
		if s.Generation.Status != GenerationIdle || s.Generation.Artifact != nil {
			t.Errorf("Generation = %+v, want idle", s.Generation)
		}
		if s.Answers.Language() != model.English {
			t.Error("newer answers overwritten")
		}
	})

	t.Run("failure returns to idle and allows retry", func(t *testing.T) {
		s, _ := apply(t, m, pending, GenerateResult{Token: token, Err: errors.New("renderer timeout")})
		if s.Generation.Status != GenerationIdle || s.Generation.Artifact != nil {
			t.Fatalf("Generation = %+v, want idle", s.Generation)
		}
		if s.Step != model.StepReview || len(s.Errors) != 0 || s.Banner {
			t.Error("failure changed the wizard state")
		}
		g := view(t, m, s).Generate
		if !g.Enabled || g.Pending || g.Artifact != nil {
			t.Errorf("Generate view = %+v", g)
		}
		_, cmds := apply(t, m, s, RequestGenerate{})
		if len(cmds) != 1 || cmds[0].(GenerateCommand).Token == token {
			t.Errorf("retry commands = %v", cmds)
		}
	})

	t.Run("failed retry keeps the earlier artifact", func(t *testing.T) {
		done, _ := apply(t, m, pending, GenerateResult{Token: token, Artifact: artifact})
		retry, cmds := apply(t, m, done, RequestGenerate{})
		if len(cmds) != 1 {
			t.Fatalf("commands = %v", cmds)
		}
		s, _ := apply(t, m, retry, GenerateResult{Token: cmds[0].(GenerateCommand).Token, Err: errors.New("renderer timeout")})
		if s.Generation.Status != GenerationSucceeded || s.Generation.Artifact == nil || s.Generation.Token != token {
			t.Errorf("Generation = %+v, want the earlier artifact", s.Generation)
		}
	})

	t.Run("back abandons pending generation", func(t *testing.T) {
		s, cmds := apply(t, m, pending, Back{})
		if len(cmds) != 1 {
			t.Fatalf("commands = %v", cmds)
		}
		if c, ok := cmds[0].(AbandonGenerateCommand); !ok || c.Token != token {
			t.Errorf("command = %+v", cmds[0])
		}
		s, _ = apply(t, m, s, Next{}, GenerateResult{Token: token, Artifact: artifact})
		if s.Generation.Status != GenerationIdle {
			t.Errorf("late result applied: %+v", s.Generation)
		}
	})

	t.Run("success is kept and marked stale after edits", func(t *testing.T) {
		s, _ := apply(t, m, pending, GenerateResult{Token: token, Artifact: artifact})
		if s.Generation.Artifact == nil || s.Generation.Artifact.Filename != "labor_condition_notice_vi.pdf" {
			t.Fatalf("Generation = %+v", s.Generation)
		}
		if view(t, m, s).Generate.Stale {
			t.Error("fresh artifact marked stale")
		}
		s, _ = apply(t, m, s, SetField{Key: model.FieldPaymentDay, Value: "毎月25日"})
		if !view(t, m, s).Generate.Stale {
			t.Error("artifact not marked stale after edit")
		}
	})
}

func TestDefaultTokenIsUUID(t *testing.T) {
	e, err := rule.DefaultEngine()
	if err != nil {
		t.Fatalf("DefaultEngine: %v", err)
	}
	m, err := NewMachine(MachineArgs{Engine: e})
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	s, _ := apply(t, m, reachReview(t, m), SetField{Key: model.FieldOutputLanguage, Value: "zh"})
	_, cmds := apply(t, m, s, RequestGenerate{})
	if len(cmds) != 1 || len(cmds[0].(GenerateCommand).Token) != 36 {
		t.Errorf("commands = %v", cmds)
	}
	if view(t, m, s).Preview != nil {
		t.Error("preview without assembler")
	}
}

func TestReduceUnknownAction(t *testing.T) {
	m := newMachine(t, nil)
	if _, _, err := m.Reduce(Initial(), nil); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("err = %v, want ErrUnknownAction", err)
	}
}
