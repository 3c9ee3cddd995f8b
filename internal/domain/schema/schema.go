// Package schema は労働条件通知書ウィザードの全項目を宣言的に定義します。
// 振る舞いは持たず、項目の所属ステップ・型・基本の必須/表示状態だけを表します。
package schema

import (
	"fmt"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
)

// Fieldは1項目の定義です。
type Field struct {
	Key          model.FieldKey
	Step         model.Step
	Type         model.FieldType
	BaseRequired bool
	BaseVisible  bool
	Label        string
	Placeholder  string
}

var fields = []Field{
	// 基本情報
	{Key: model.FieldWorkerName, Step: model.StepBasicInfo, Type: model.FieldTypeText, BaseRequired: true, BaseVisible: true, Label: "労働者氏名", Placeholder: "NGUYEN VAN A"},
	{Key: model.FieldCompanyName, Step: model.StepBasicInfo, Type: model.FieldTypeText, BaseRequired: true, BaseVisible: true, Label: "会社名", Placeholder: "株式会社サンプル"},
	{Key: model.FieldCompanyAddress, Step: model.StepBasicInfo, Type: model.FieldTypeText, BaseRequired: true, BaseVisible: true, Label: "住所", Placeholder: "東京都千代田区丸の内1-1-1"},
	{Key: model.FieldRepresentativeName, Step: model.StepBasicInfo, Type: model.FieldTypeText, BaseRequired: true, BaseVisible: true, Label: "使用者氏名", Placeholder: "代表取締役 山田太郎"},
	{Key: model.FieldCompanyPhone, Step: model.StepBasicInfo, Type: model.FieldTypeText, BaseVisible: true, Label: "電話番号", Placeholder: "03-1234-5678"},

	// 契約内容
	{Key: model.FieldVisaCategory, Step: model.StepContract, Type: model.FieldTypeSelect, BaseRequired: true, BaseVisible: true, Label: "在留資格"},
	{Key: model.FieldSector, Step: model.StepContract, Type: model.FieldTypeSelect, BaseRequired: true, BaseVisible: true, Label: "分野"},
	{Key: model.FieldContractType, Step: model.StepContract, Type: model.FieldTypeSelect, BaseRequired: true, BaseVisible: true, Label: "契約期間"},
	{Key: model.FieldContractStart, Step: model.StepContract, Type: model.FieldTypeDate, BaseRequired: true, BaseVisible: true, Label: "契約開始日"},
	{Key: model.FieldContractEnd, Step: model.StepContract, Type: model.FieldTypeDate, BaseRequired: true, BaseVisible: true, Label: "契約終了日"},
	{Key: model.FieldRenewalPolicy, Step: model.StepContract, Type: model.FieldTypeSelect, BaseVisible: true, Label: "契約の更新の有無"},
	{Key: model.FieldWorkplace, Step: model.StepContract, Type: model.FieldTypeText, BaseRequired: true, BaseVisible: true, Label: "就業の場所", Placeholder: "本社工場(愛知県豊田市)"},
	{Key: model.FieldJobDescription, Step: model.StepContract, Type: model.FieldTypeText, BaseRequired: true, BaseVisible: true, Label: "従事すべき業務の内容", Placeholder: "自動車部品の溶接作業"},
	{Key: model.FieldTransferClauseEnabled, Step: model.StepContract, Type: model.FieldTypeCheckbox, Label: "転籍に関する定めあり"},
	{Key: model.FieldTransferRestrictionPeriod, Step: model.StepContract, Type: model.FieldTypeText, Label: "転籍制限期間", Placeholder: "1年"},
	{Key: model.FieldTransferUnavoidableTerms, Step: model.StepContract, Type: model.FieldTypeText, Label: "やむを得ない事情による転籍"},
	{Key: model.FieldTransferOwnRequestTerms, Step: model.StepContract, Type: model.FieldTypeText, Label: "本人の意向による転籍"},

	// 勤務時間
	{Key: model.FieldWorkScheduleType, Step: model.StepSchedule, Type: model.FieldTypeSelect, BaseRequired: true, BaseVisible: true, Label: "勤務形態"},
	{Key: model.FieldStartTime, Step: model.StepSchedule, Type: model.FieldTypeTime, BaseRequired: true, BaseVisible: true, Label: "始業時刻", Placeholder: "09:00"},
	{Key: model.FieldEndTime, Step: model.StepSchedule, Type: model.FieldTypeTime, BaseRequired: true, BaseVisible: true, Label: "終業時刻", Placeholder: "18:00"},
	{Key: model.FieldShiftPattern, Step: model.StepSchedule, Type: model.FieldTypeText, Label: "シフトパターン", Placeholder: "早番 7:00-16:00 / 遅番 13:00-22:00"},
	{Key: model.FieldBreakMinutes, Step: model.StepSchedule, Type: model.FieldTypeNumber, BaseVisible: true, Label: "休憩時間(分)", Placeholder: "60"},
	{Key: model.FieldRestDays, Step: model.StepSchedule, Type: model.FieldTypeMultiSelect, BaseRequired: true, BaseVisible: true, Label: "休日"},
	{Key: model.FieldOvertimeExists, Step: model.StepSchedule, Type: model.FieldTypeCheckbox, BaseVisible: true, Label: "所定時間外労働あり"},

	// 賃金・就業規則
	{Key: model.FieldWageType, Step: model.StepWage, Type: model.FieldTypeSelect, BaseRequired: true, BaseVisible: true, Label: "賃金形態"},
	{Key: model.FieldBaseWage, Step: model.StepWage, Type: model.FieldTypeNumber, BaseRequired: true, BaseVisible: true, Label: "基本賃金(円)", Placeholder: "220000"},
	{Key: model.FieldPaymentDay, Step: model.StepWage, Type: model.FieldTypeText, BaseVisible: true, Label: "賃金支払日", Placeholder: "毎月25日"},
	{Key: model.FieldEmploymentRulesExist, Step: model.StepWage, Type: model.FieldTypeCheckbox, BaseVisible: true, Label: "就業規則あり"},
	{Key: model.FieldDisciplinaryArticle, Step: model.StepWage, Type: model.FieldTypeText, Label: "懲戒事由の条番号", Placeholder: "第68条"},

	// 確認・出力
	{Key: model.FieldOutputLanguage, Step: model.StepReview, Type: model.FieldTypeSelect, BaseVisible: true, Label: "出力言語"},
}

var index = func() map[model.FieldKey]int {
	m := make(map[model.FieldKey]int, len(fields))
	for i, f := range fields {
		if _, dup := m[f.Key]; dup {
			panic(fmt.Sprintf("schema: 項目 %q が重複しています", f.Key))
		}
		m[f.Key] = i
	}
	return m
}()

// Lookupはkeyの定義を返します。未定義のkeyはプログラムの誤りなのでpanicします。
func Lookup(key model.FieldKey) Field {
	i, ok := index[key]
	if !ok {
		panic(fmt.Sprintf("schema: 未定義の項目です: %q", key))
	}
	return fields[i]
}

// Hasは外部入力の境界でkeyを確認するために使います。
func Has(key model.FieldKey) bool {
	_, ok := index[key]
	return ok
}

// Allは宣言順の全項目を返します。
func All() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldsOfはstepに属する項目を宣言順で返します。
func FieldsOf(step model.Step) []Field {
	var out []Field
	for _, f := range fields {
		if f.Step == step {
			out = append(out, f)
		}
	}
	return out
}

// Headingは各ステップの見出しです。
func Heading(step model.Step) string {
	switch step {
	case model.StepBasicInfo:
		return "基本情報"
	case model.StepContract:
		return "契約内容"
	case model.StepSchedule:
		return "勤務時間"
	case model.StepWage:
		return "賃金・就業規則"
	case model.StepReview:
		return "確認・PDF出力"
	default:
		return ""
	}
}
