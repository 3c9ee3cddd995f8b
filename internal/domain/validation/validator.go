// Package validation はステップ単位の入力チェックを行います。
// 条件ルールで非表示になった項目は、空でも一切チェックしません。
package validation

import (
	"fmt"
	"slices"
	"time"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/rule"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/schema"
	"github.com/go-playground/validator/v10"
)

// Resultは1ステップ分のチェック結果です。
type Result struct {
	Step   model.Step
	OK     bool
	Banner bool
	Errors map[model.FieldKey]string
	Order  []model.FieldKey // Errorsのキーを項目の宣言順に並べたもの
}

// Messagesはエラーメッセージを項目の宣言順で返します。
func (r Result) Messages() []string {
	out := make([]string, 0, len(r.Order))
	for _, k := range r.Order {
		out = append(out, r.Errors[k])
	}
	return out
}

// BannerTextはエラーがある場合にバナー文言を返します。
func (r Result) BannerText() string {
	if !r.Banner {
		return ""
	}
	return BannerMessage
}

type Validator struct {
	engine *rule.Engine
	format *validator.Validate
}

func NewValidator(engine *rule.Engine) *Validator {
	return &Validator{
		engine: engine,
		format: validator.New(),
	}
}

var formatTags = map[model.FieldType]string{
	model.FieldTypeDate:   "datetime=2006-01-02",
	model.FieldTypeTime:   "datetime=15:04",
	model.FieldTypeNumber: "number",
}

// Validateはstepの項目を現在の回答セットでチェックします。副作用はありません。
func (v *Validator) Validate(step model.Step, answers model.AnswerSet) (Result, error) {
	if !step.Valid() {
		return Result{}, fmt.Errorf("不正なステップです: %d", step)
	}

	derived, err := v.engine.Derive(answers)
	if err != nil {
		return Result{}, fmt.Errorf("条件ルールの導出に失敗しました: %w", err)
	}

	errs := make(map[model.FieldKey]string)
	for _, key := range derived.VisibleFields(step) {
		if answers.IsEmpty(key) {
			if derived.IsRequired(key) {
				errs[key] = requiredMessage(key)
			}
			continue
		}
		if msg, bad := v.checkFormat(key, answers, derived); bad {
			errs[key] = msg
		}
	}

	if step == model.StepContract {
		v.checkContractPeriod(answers, derived, errs)
	}

	result := Result{Step: step, Errors: errs}
	for _, f := range schema.FieldsOf(step) {
		if _, ok := errs[f.Key]; ok {
			result.Order = append(result.Order, f.Key)
		}
	}
	result.OK = len(errs) == 0
	result.Banner = !result.OK
	return result, nil
}

func requiredMessage(key model.FieldKey) string {
	if msg, ok := requiredMessages[key]; ok {
		return msg
	}
	return schema.Lookup(key).Label + "を入力してください"
}

func (v *Validator) checkFormat(key model.FieldKey, answers model.AnswerSet, derived rule.DerivedRuleSet) (string, bool) {
	field := schema.Lookup(key)
	switch field.Type {
	case model.FieldTypeDate, model.FieldTypeTime, model.FieldTypeNumber:
		if err := v.format.Var(answers.Text(key), formatTags[field.Type]); err != nil {
			return formatMessages[field.Type], true
		}
	case model.FieldTypeSelect:
		if !hasOption(derived.Options(key), answers.Text(key)) {
			return formatMessages[field.Type], true
		}
	case model.FieldTypeMultiSelect:
		opts := derived.Options(key)
		for _, item := range answers.Items(key) {
			if !hasOption(opts, item) {
				return formatMessages[field.Type], true
			}
		}
	}
	return "", false
}

func hasOption(opts []schema.Option, value string) bool {
	return slices.ContainsFunc(opts, func(o schema.Option) bool { return o.Value == value })
}

func (v *Validator) checkContractPeriod(answers model.AnswerSet, derived rule.DerivedRuleSet, errs map[model.FieldKey]string) {
	if !derived.IsVisible(model.FieldContractStart) || !derived.IsVisible(model.FieldContractEnd) {
		return
	}
	if _, bad := errs[model.FieldContractStart]; bad {
		return
	}
	if _, bad := errs[model.FieldContractEnd]; bad {
		return
	}
	start, err := time.Parse(time.DateOnly, answers.Text(model.FieldContractStart))
	if err != nil {
		return
	}
	end, err := time.Parse(time.DateOnly, answers.Text(model.FieldContractEnd))
	if err != nil {
		return
	}
	if end.Before(start) {
		errs[model.FieldContractEnd] = contractPeriodMessage
	}
}
