package model

import (
	"reflect"
	"slices"
)

// AnswerSetはウィザード全体の回答を保持します。
//
// 値は string(テキスト・日付・時刻・数値・選択)、bool(チェックボックス)、
// []string(複数選択) のいずれかです。ゼロ値はそのまま利用できます。
type AnswerSet struct {
	values map[FieldKey]any
}

// NewAnswerSetは選択項目のデフォルト値だけを持つ回答セットを生成します。
func NewAnswerSet() AnswerSet {
	return AnswerSet{
		values: map[FieldKey]any{
			FieldVisaCategory:     string(SpecifiedSkill1),
			FieldContractType:     string(FixedTerm),
			FieldWorkScheduleType: string(FixedSchedule),
			FieldWageType:         string(MonthlyWage),
			FieldOutputLanguage:   string(DefaultLanguage),
		},
	}
}

// Withはkeyをvalueに置き換えた新しい回答セットを返します。レシーバは変更しません。
func (a AnswerSet) With(key FieldKey, value any) AnswerSet {
	next := a.Clone()
	if next.values == nil {
		next.values = make(map[FieldKey]any)
	}
	switch v := value.(type) {
	case nil:
		delete(next.values, key)
	case []string:
		next.values[key] = slices.Clone(v)
	default:
		next.values[key] = v
	}
	return next
}

func (a AnswerSet) Clone() AnswerSet {
	if a.values == nil {
		return AnswerSet{}
	}
	values := make(map[FieldKey]any, len(a.values))
	for k, v := range a.values {
		if items, ok := v.([]string); ok {
			values[k] = slices.Clone(items)
			continue
		}
		values[k] = v
	}
	return AnswerSet{values: values}
}

func (a AnswerSet) Value(key FieldKey) (any, bool) {
	v, ok := a.values[key]
	return v, ok
}

func (a AnswerSet) Text(key FieldKey) string {
	s, _ := a.values[key].(string)
	return s
}

func (a AnswerSet) Flag(key FieldKey) bool {
	b, _ := a.values[key].(bool)
	return b
}

func (a AnswerSet) Items(key FieldKey) []string {
	items, _ := a.values[key].([]string)
	return slices.Clone(items)
}

// IsEmptyは未入力(未設定・空文字・空集合)かどうかを判定します。
// チェックボックスの false も未入力とみなします。
func (a AnswerSet) IsEmpty(key FieldKey) bool {
	switch v := a.values[key].(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case bool:
		return !v
	default:
		return false
	}
}

// Equalは全項目が一致するかを判定します。
func (a AnswerSet) Equal(other AnswerSet) bool {
	if len(a.values) != len(other.values) {
		return false
	}
	if len(a.values) == 0 {
		return true
	}
	return reflect.DeepEqual(a.values, other.values)
}

// LogicDataはルール評価用のデータを返します。返り値を変更しても回答セットには影響しません。
func (a AnswerSet) LogicData() map[string]any {
	data := make(map[string]any, len(a.values))
	for k, v := range a.values {
		if items, ok := v.([]string); ok {
			data[string(k)] = slices.Clone(items)
			continue
		}
		data[string(k)] = v
	}
	return data
}

func (a AnswerSet) Keys() []FieldKey {
	keys := make([]FieldKey, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (a AnswerSet) VisaCategory() VisaCategory {
	return VisaCategory(a.Text(FieldVisaCategory))
}

func (a AnswerSet) ContractType() ContractType {
	return ContractType(a.Text(FieldContractType))
}

func (a AnswerSet) WorkScheduleType() WorkScheduleType {
	return WorkScheduleType(a.Text(FieldWorkScheduleType))
}

func (a AnswerSet) WageType() WageType {
	return WageType(a.Text(FieldWageType))
}

// Languageは選択中の出力言語を返します。未設定の場合はデフォルト言語です。
func (a AnswerSet) Language() Language {
	if l := a.Text(FieldOutputLanguage); l != "" {
		return Language(l)
	}
	return DefaultLanguage
}

func (a AnswerSet) RestDays() []Weekday {
	items := a.Items(FieldRestDays)
	days := make([]Weekday, 0, len(items))
	for _, item := range items {
		days = append(days, Weekday(item))
	}
	return days
}
