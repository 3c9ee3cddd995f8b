package validation

import "github.com/Altair29/J-GLOW-sub002/internal/domain/model"

// BannerMessageはエラーがあるときにステップ上部へ表示する文言です。
const BannerMessage = "必須項目が入力されていません"

// requiredMessagesは必須項目が未入力のときのメッセージです。
// 必須になり得る項目はすべてここに定義されている必要があります。
var requiredMessages = map[model.FieldKey]string{
	model.FieldWorkerName:         "労働者氏名を入力してください",
	model.FieldCompanyName:        "会社名を入力してください",
	model.FieldCompanyAddress:     "住所を入力してください",
	model.FieldRepresentativeName: "使用者氏名を入力してください",

	model.FieldVisaCategory:              "在留資格を選択してください",
	model.FieldSector:                    "分野を選択してください",
	model.FieldContractType:              "契約期間の種類を選択してください",
	model.FieldContractStart:             "契約開始日を入力してください",
	model.FieldContractEnd:               "契約終了日を入力してください",
	model.FieldWorkplace:                 "就業の場所を入力してください",
	model.FieldJobDescription:            "業務の内容を入力してください",
	model.FieldTransferRestrictionPeriod: "転籍制限期間を入力してください",
	model.FieldTransferUnavoidableTerms:  "やむを得ない事情による転籍の条件を入力してください",
	model.FieldTransferOwnRequestTerms:   "本人の意向による転籍の条件を入力してください",

	model.FieldWorkScheduleType: "勤務形態を選択してください",
	model.FieldStartTime:        "始業時刻を入力してください",
	model.FieldEndTime:          "終業時刻を入力してください",
	model.FieldShiftPattern:     "シフトパターンを入力してください",
	model.FieldRestDays:         "休日を1つ以上選択してください",

	model.FieldWageType:            "賃金形態を選択してください",
	model.FieldBaseWage:            "基本賃金を入力してください",
	model.FieldDisciplinaryArticle: "懲戒事由の条番号を入力してください",
}

// formatMessagesは入力形式が不正なときのメッセージです。
var formatMessages = map[model.FieldType]string{
	model.FieldTypeDate:        "日付はYYYY-MM-DD形式で入力してください",
	model.FieldTypeTime:        "時刻はHH:MM形式で入力してください",
	model.FieldTypeNumber:      "半角数字で入力してください",
	model.FieldTypeSelect:      "選択肢から選択してください",
	model.FieldTypeMultiSelect: "選択肢から選択してください",
}

const contractPeriodMessage = "契約終了日は契約開始日以降の日付を入力してください"

// RequiredMessageはkeyの未入力メッセージを返します。
func RequiredMessage(key model.FieldKey) (string, bool) {
	msg, ok := requiredMessages[key]
	return msg, ok
}
