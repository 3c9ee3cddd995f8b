// Package rule は回答セットから「現在表示される項目」と「現在必須の項目」を導出します。
//
// ルールはデータとして定義され(rules.yaml)、条件は JSON Logic 式で記述します。
// Derive は純粋関数で、同じ回答セットに対して常に同じ結果を返し、回答セットを変更しません。
package rule

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/schema"
	"github.com/diegoholiveira/jsonlogic/v3"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

//go:embed rules.yaml
var defaultRuleBook []byte

// RuleBookはルール定義ファイルの内容です。
type RuleBook struct {
	Version string `yaml:"version" validate:"required"`
	Rules   []Rule `yaml:"rules" validate:"required,min=1,dive"`
}

// Ruleは条件(When)が真のときに項目の表示・必須状態を変更します。
type Rule struct {
	ID       string           `yaml:"id" validate:"required"`
	LawRef   string           `yaml:"law_ref"`
	When     map[string]any   `yaml:"when" validate:"required"`
	Show     []model.FieldKey `yaml:"show"`
	Hide     []model.FieldKey `yaml:"hide"`
	Require  []model.FieldKey `yaml:"require"`
	Optional []model.FieldKey `yaml:"optional"`
}

type compiledRule struct {
	Rule
	logic []byte
}

// Engineは条件ルールの評価器です。生成後は不変で、並行に利用できます。
type Engine struct {
	version string
	rules   []compiledRule
}

var validate = validator.New()

// LoadRuleBookはYAMLからルール定義を読み込みます。
func LoadRuleBook(data []byte) (RuleBook, error) {
	var book RuleBook
	if err := yaml.Unmarshal(data, &book); err != nil {
		return RuleBook{}, fmt.Errorf("ルール定義のYAML解析に失敗しました: %w", err)
	}
	if err := validate.Struct(book); err != nil {
		return RuleBook{}, fmt.Errorf("ルール定義のバリデーションに失敗しました: %w", err)
	}
	return book, nil
}

// DefaultRuleBookは組み込みのルール定義を返します。
func DefaultRuleBook() (RuleBook, error) {
	return LoadRuleBook(defaultRuleBook)
}

// DefaultEngineは組み込みのルール定義からEngineを生成します。
func DefaultEngine() (*Engine, error) {
	book, err := DefaultRuleBook()
	if err != nil {
		return nil, err
	}
	return NewEngine(book)
}

// NewEngineはルール定義を検証してEngineを生成します。
// 未定義の項目キーや不正なJSON Logic式はここでエラーになります。
func NewEngine(book RuleBook) (*Engine, error) {
	seen := make(map[string]bool, len(book.Rules))
	compiled := make([]compiledRule, 0, len(book.Rules))
	for _, r := range book.Rules {
		if seen[r.ID] {
			return nil, fmt.Errorf("ルールIDが重複しています: %s", r.ID)
		}
		seen[r.ID] = true

		for _, keys := range [][]model.FieldKey{r.Show, r.Hide, r.Require, r.Optional} {
			for _, k := range keys {
				if !schema.Has(k) {
					return nil, fmt.Errorf("ルール %s が未定義の項目 %s を参照しています", r.ID, k)
				}
			}
		}

		logic, err := json.Marshal(r.When)
		if err != nil {
			return nil, fmt.Errorf("ルール %s の条件式の変換に失敗しました: %w", r.ID, err)
		}
		if !jsonlogic.IsValid(bytes.NewReader(logic)) {
			return nil, fmt.Errorf("ルール %s の条件式が不正です: %s", r.ID, logic)
		}
		compiled = append(compiled, compiledRule{Rule: r, logic: logic})
	}

	return &Engine{version: book.Version, rules: compiled}, nil
}

func (e *Engine) Version() string {
	return e.version
}

// Deriveは回答セットから表示項目・必須項目・選択肢を導出します。
//
// visible  = (基本表示 または show) かつ hide されていない
// required = (基本必須 または require) かつ optional されていない かつ visible
func (e *Engine) Derive(answers model.AnswerSet) (DerivedRuleSet, error) {
	data, err := json.Marshal(answers.LogicData())
	if err != nil {
		return DerivedRuleSet{}, fmt.Errorf("回答セットの変換に失敗しました: %w", err)
	}

	shown := map[model.FieldKey]bool{}
	hidden := map[model.FieldKey]bool{}
	required := map[model.FieldKey]bool{}
	optional := map[model.FieldKey]bool{}
	var applied []string

	for _, r := range e.rules {
		ok, err := r.matches(data)
		if err != nil {
			return DerivedRuleSet{}, err
		}
		if !ok {
			continue
		}
		applied = append(applied, r.ID)
		mark(shown, r.Show)
		mark(hidden, r.Hide)
		mark(required, r.Require)
		mark(optional, r.Optional)
	}

	derived := DerivedRuleSet{
		version:  e.version,
		visible:  make(map[model.FieldKey]bool),
		required: make(map[model.FieldKey]bool),
		options:  make(map[model.FieldKey][]schema.Option),
		applied:  applied,
	}
	visa := answers.VisaCategory()
	for _, f := range schema.All() {
		visible := (f.BaseVisible || shown[f.Key]) && !hidden[f.Key]
		if !visible {
			continue
		}
		derived.visible[f.Key] = true
		if (f.BaseRequired || required[f.Key]) && !optional[f.Key] {
			derived.required[f.Key] = true
		}
		if opts := schema.OptionsFor(f.Key, visa); opts != nil {
			derived.options[f.Key] = opts
		}
	}
	return derived, nil
}

func mark(set map[model.FieldKey]bool, keys []model.FieldKey) {
	for _, k := range keys {
		set[k] = true
	}
}

func (r compiledRule) matches(data []byte) (bool, error) {
	var out bytes.Buffer
	if err := jsonlogic.Apply(bytes.NewReader(r.logic), bytes.NewReader(data), &out); err != nil {
		return false, fmt.Errorf("ルール %s の評価に失敗しました: %w", r.ID, err)
	}
	if out.Len() == 0 {
		return false, nil
	}
	var result any
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		return false, fmt.Errorf("ルール %s の評価結果の解析に失敗しました: %w", r.ID, err)
	}
	return truthy(result), nil
}

// truthyはJSON Logicの真偽判定規則に従います。
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	default:
		return true
	}
}

// DerivedRuleSetはDeriveの結果です。
type DerivedRuleSet struct {
	version  string
	visible  map[model.FieldKey]bool
	required map[model.FieldKey]bool
	options  map[model.FieldKey][]schema.Option
	applied  []string
}

func (d DerivedRuleSet) IsVisible(key model.FieldKey) bool {
	return d.visible[key]
}

func (d DerivedRuleSet) IsRequired(key model.FieldKey) bool {
	return d.required[key]
}

// VisibleFieldsはstepで現在表示される項目を宣言順で返します。
func (d DerivedRuleSet) VisibleFields(step model.Step) []model.FieldKey {
	var out []model.FieldKey
	for _, f := range schema.FieldsOf(step) {
		if d.visible[f.Key] {
			out = append(out, f.Key)
		}
	}
	return out
}

// RequiredFieldsはstepで現在必須の項目を宣言順で返します。
func (d DerivedRuleSet) RequiredFields(step model.Step) []model.FieldKey {
	var out []model.FieldKey
	for _, f := range schema.FieldsOf(step) {
		if d.required[f.Key] {
			out = append(out, f.Key)
		}
	}
	return out
}

// Optionsは表示中の選択項目の選択肢を返します。
func (d DerivedRuleSet) Options(key model.FieldKey) []schema.Option {
	return slices.Clone(d.options[key])
}

// AppliedRulesは条件が成立したルールIDを評価順で返します。
func (d DerivedRuleSet) AppliedRules() []string {
	return slices.Clone(d.applied)
}

func (d DerivedRuleSet) Version() string {
	return d.version
}
