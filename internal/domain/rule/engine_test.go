package rule

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/schema"
)

func mustEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := DefaultEngine()
	if err != nil {
		t.Fatalf("DefaultEngine: %v", err)
	}
	return e
}

func mustDerive(t *testing.T, e *Engine, a model.AnswerSet) DerivedRuleSet {
	t.Helper()
	d, err := e.Derive(a)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	return d
}

var transferFields = []model.FieldKey{
	model.FieldTransferClauseEnabled,
	model.FieldTransferRestrictionPeriod,
	model.FieldTransferUnavoidableTerms,
	model.FieldTransferOwnRequestTerms,
}

func TestDeriveRules(t *testing.T) {
	e := mustEngine(t)

	tests := []struct {
		name        string
		answers     model.AnswerSet
		visible     []model.FieldKey
		hidden      []model.FieldKey
		required    []model.FieldKey
		notRequired []model.FieldKey
	}{
		{
			name:     "defaults require contract dates and fixed times",
			answers:  model.NewAnswerSet(),
			visible:  []model.FieldKey{model.FieldContractStart, model.FieldContractEnd, model.FieldStartTime},
			hidden:   append([]model.FieldKey{model.FieldShiftPattern, model.FieldDisciplinaryArticle}, transferFields...),
			required: []model.FieldKey{model.FieldContractStart, model.FieldContractEnd, model.FieldStartTime, model.FieldEndTime, model.FieldRestDays},
		},
		{
			name:        "indefinite contract hides contract dates",
			answers:     model.NewAnswerSet().With(model.FieldContractType, "indefinite"),
			hidden:      []model.FieldKey{model.FieldContractStart, model.FieldContractEnd, model.FieldRenewalPolicy},
			notRequired: []model.FieldKey{model.FieldContractStart, model.FieldContractEnd},
		},
		{
			name:        "ikusei shows transfer clause without requiring terms",
			answers:     model.NewAnswerSet().With(model.FieldVisaCategory, "ikusei"),
			visible:     transferFields,
			notRequired: transferFields,
		},
		{
			name: "ikusei with transfer clause requires three terms",
			answers: model.NewAnswerSet().
				With(model.FieldVisaCategory, "ikusei").
				With(model.FieldTransferClauseEnabled, true),
			visible: transferFields,
			required: []model.FieldKey{
				model.FieldTransferRestrictionPeriod,
				model.FieldTransferUnavoidableTerms,
				model.FieldTransferOwnRequestTerms,
			},
			notRequired: []model.FieldKey{model.FieldTransferClauseEnabled},
		},
		{
			name: "specified skill 2 hides transfer clause regardless of checkbox",
			answers: model.NewAnswerSet().
				With(model.FieldVisaCategory, "specified_skill_2").
				With(model.FieldTransferClauseEnabled, true),
			hidden:      transferFields,
			notRequired: transferFields,
		},
		{
			name:        "shift schedule swaps fixed times for shift pattern",
			answers:     model.NewAnswerSet().With(model.FieldWorkScheduleType, "shift"),
			visible:     []model.FieldKey{model.FieldStartTime, model.FieldEndTime, model.FieldShiftPattern},
			required:    []model.FieldKey{model.FieldShiftPattern},
			notRequired: []model.FieldKey{model.FieldStartTime, model.FieldEndTime},
		},
		{
			name:     "employment rules require disciplinary article",
			answers:  model.NewAnswerSet().With(model.FieldEmploymentRulesExist, true),
			visible:  []model.FieldKey{model.FieldDisciplinaryArticle},
			required: []model.FieldKey{model.FieldDisciplinaryArticle},
		},
		{
			name:        "no employment rules leaves disciplinary article hidden",
			answers:     model.NewAnswerSet().With(model.FieldEmploymentRulesExist, false),
			hidden:      []model.FieldKey{model.FieldDisciplinaryArticle},
			notRequired: []model.FieldKey{model.FieldDisciplinaryArticle},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDerive(t, e, tt.answers)
			for _, k := range tt.visible {
				if !d.IsVisible(k) {
					t.Errorf("%s should be visible", k)
				}
			}
			for _, k := range tt.hidden {
				if d.IsVisible(k) {
					t.Errorf("%s should be hidden", k)
				}
			}
			for _, k := range tt.required {
				if !d.IsRequired(k) {
					t.Errorf("%s should be required", k)
				}
			}
			for _, k := range tt.notRequired {
				if d.IsRequired(k) {
					t.Errorf("%s should not be required", k)
				}
			}
		})
	}
}

func TestDeriveIsIdempotentAndDoesNotMutate(t *testing.T) {
	e := mustEngine(t)
	answers := model.NewAnswerSet().
		With(model.FieldVisaCategory, "ikusei").
		With(model.FieldTransferClauseEnabled, true).
		With(model.FieldRestDays, []string{"sat", "sun"}).
		With(model.FieldWorkScheduleType, "shift")
	before := answers.Clone()

	first := mustDerive(t, e, answers)
	second := mustDerive(t, e, answers)

	if !reflect.DeepEqual(first, second) {
		t.Error("Derive returned different results for the same answers")
	}
	if !answers.Equal(before) {
		t.Error("Derive mutated the answer set")
	}
}

func TestHiddenImpliesNotRequired(t *testing.T) {
	e := mustEngine(t)
	variants := []model.AnswerSet{model.NewAnswerSet()}
	for _, visa := range []string{"specified_skill_1", "specified_skill_2", "ikusei"} {
		for _, contract := range []string{"fixed", "indefinite"} {
			for _, sched := range []string{"fixed", "shift"} {
				for _, flag := range []bool{true, false} {
					variants = append(variants, model.NewAnswerSet().
						With(model.FieldVisaCategory, visa).
						With(model.FieldContractType, contract).
						With(model.FieldWorkScheduleType, sched).
						With(model.FieldTransferClauseEnabled, flag).
						With(model.FieldEmploymentRulesExist, flag))
				}
			}
		}
	}

	for _, a := range variants {
		d := mustDerive(t, e, a)
		for _, f := range schema.All() {
			if !d.IsVisible(f.Key) && d.IsRequired(f.Key) {
				t.Errorf("%s is required while hidden (answers %v)", f.Key, a.LogicData())
			}
		}
		for step := model.FirstStep; step <= model.LastStep; step++ {
			visible := d.VisibleFields(step)
			for _, k := range d.RequiredFields(step) {
				if !slices.Contains(visible, k) {
					t.Errorf("step %d: %s required but not in VisibleFields", step, k)
				}
			}
		}
	}
}

func TestDeriveSectorOptionsFollowVisa(t *testing.T) {
	e := mustEngine(t)
	d := mustDerive(t, e, model.NewAnswerSet().With(model.FieldVisaCategory, "specified_skill_2"))
	if got := len(d.Options(model.FieldSector)); got != 11 {
		t.Errorf("sector options = %d, want 11", got)
	}
}

func TestAppliedRules(t *testing.T) {
	e := mustEngine(t)
	d := mustDerive(t, e, model.NewAnswerSet().With(model.FieldContractType, "indefinite"))
	if got := d.AppliedRules(); !slices.Equal(got, []string{"indefinite_contract_hides_period"}) {
		t.Errorf("AppliedRules = %v", got)
	}
	if d.Version() != e.Version() || d.Version() == "" {
		t.Errorf("Version = %q, engine %q", d.Version(), e.Version())
	}
}

func TestNewEngineRejectsBadRuleBooks(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "unknown field",
			yaml: `version: "x"
rules:
  - id: r1
    when: {"==": [1, 1]}
    hide: [no_such_field]
`,
			wantErr: "未定義の項目",
		},
		{
			name: "duplicate id",
			yaml: `version: "x"
rules:
  - id: r1
    when: {"==": [1, 1]}
  - id: r1
    when: {"==": [1, 1]}
`,
			wantErr: "重複",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book, err := LoadRuleBook([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("LoadRuleBook: %v", err)
			}
			_, err = NewEngine(book)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewEngine error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRuleBookRequiresVersion(t *testing.T) {
	_, err := LoadRuleBook([]byte("rules:\n  - id: r1\n    when: {\"==\": [1, 1]}\n"))
	if err == nil {
		t.Error("expected validation error for missing version")
	}
}
