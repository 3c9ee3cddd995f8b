package model

// Stepはウィザードのステップ番号(1..5)です。
type Step int

const (
	StepBasicInfo Step = iota + 1 // 基本情報
	StepContract                  // 契約内容
	StepSchedule                  // 勤務時間
	StepWage                      // 賃金・就業規則
	StepReview                    // 確認・PDF出力
)

const (
	FirstStep = StepBasicInfo
	LastStep  = StepReview
)

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// FieldKeyは回答セット内の項目を識別するキーです。
type FieldKey string

const (
	// step 1
	FieldWorkerName         FieldKey = "worker_name"
	FieldCompanyName        FieldKey = "company_name"
	FieldCompanyAddress     FieldKey = "company_address"
	FieldRepresentativeName FieldKey = "representative_name"
	FieldCompanyPhone       FieldKey = "company_phone"

	// step 2
	FieldVisaCategory              FieldKey = "visa_category"
	FieldSector                    FieldKey = "sector"
	FieldContractType              FieldKey = "contract_type"
	FieldContractStart             FieldKey = "contract_start"
	FieldContractEnd               FieldKey = "contract_end"
	FieldRenewalPolicy             FieldKey = "renewal_policy"
	FieldWorkplace                 FieldKey = "workplace"
	FieldJobDescription            FieldKey = "job_description"
	FieldTransferClauseEnabled     FieldKey = "transfer_clause_enabled"
	FieldTransferRestrictionPeriod FieldKey = "transfer_restriction_period"
	FieldTransferUnavoidableTerms  FieldKey = "transfer_unavoidable_terms"
	FieldTransferOwnRequestTerms   FieldKey = "transfer_own_request_terms"

	// step 3
	FieldWorkScheduleType FieldKey = "work_schedule_type"
	FieldStartTime        FieldKey = "start_time"
	FieldEndTime          FieldKey = "end_time"
	FieldShiftPattern     FieldKey = "shift_pattern"
	FieldBreakMinutes     FieldKey = "break_minutes"
	FieldRestDays         FieldKey = "rest_days"
	FieldOvertimeExists   FieldKey = "overtime_exists"

	// step 4
	FieldWageType             FieldKey = "wage_type"
	FieldBaseWage             FieldKey = "base_wage"
	FieldPaymentDay           FieldKey = "payment_day"
	FieldEmploymentRulesExist FieldKey = "employment_rules_exist"
	FieldDisciplinaryArticle  FieldKey = "disciplinary_article"

	// step 5
	FieldOutputLanguage FieldKey = "output_language"
)

// FieldTypeは入力項目の型です。
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeDate        FieldType = "date"
	FieldTypeTime        FieldType = "time"
	FieldTypeNumber      FieldType = "number"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multiselect"
	FieldTypeCheckbox    FieldType = "checkbox"
)

// VisaCategoryは在留資格の区分です。
type VisaCategory string

const (
	SpecifiedSkill1 VisaCategory = "specified_skill_1" // 特定技能1号
	SpecifiedSkill2 VisaCategory = "specified_skill_2" // 特定技能2号
	Ikusei          VisaCategory = "ikusei"            // 育成就労
)

func (v VisaCategory) Label() string {
	switch v {
	case SpecifiedSkill1:
		return "特定技能1号"
	case SpecifiedSkill2:
		return "特定技能2号"
	case Ikusei:
		return "育成就労"
	default:
		return "不明"
	}
}

type ContractType string

const (
	FixedTerm  ContractType = "fixed"      // 期間の定めあり
	Indefinite ContractType = "indefinite" // 期間の定めなし
)

func (c ContractType) Label() string {
	switch c {
	case FixedTerm:
		return "期間の定めあり"
	case Indefinite:
		return "期間の定めなし"
	default:
		return "不明"
	}
}

type RenewalPolicy string

const (
	RenewalAutomatic RenewalPolicy = "automatic" // 自動的に更新する
	RenewalPossible  RenewalPolicy = "possible"  // 更新する場合があり得る
	RenewalNone      RenewalPolicy = "none"      // 契約の更新はしない
)

type WorkScheduleType string

const (
	FixedSchedule WorkScheduleType = "fixed" // 固定時間制
	ShiftSchedule WorkScheduleType = "shift" // シフト制
)

func (w WorkScheduleType) Label() string {
	switch w {
	case FixedSchedule:
		return "固定時間制"
	case ShiftSchedule:
		return "シフト制"
	default:
		return "不明"
	}
}

type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
	Holiday   Weekday = "holiday" // 国民の祝日
)

// Weekdaysは表示順の曜日一覧です。
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday, Holiday}

func (w Weekday) Label() string {
	switch w {
	case Monday:
		return "月曜日"
	case Tuesday:
		return "火曜日"
	case Wednesday:
		return "水曜日"
	case Thursday:
		return "木曜日"
	case Friday:
		return "金曜日"
	case Saturday:
		return "土曜日"
	case Sunday:
		return "日曜日"
	case Holiday:
		return "国民の祝日"
	default:
		return "不明"
	}
}

type WageType string

const (
	MonthlyWage WageType = "monthly" // 月給
	DailyWage   WageType = "daily"   // 日給
	HourlyWage  WageType = "hourly"  // 時間給
)

func (w WageType) Label() string {
	switch w {
	case MonthlyWage:
		return "月給"
	case DailyWage:
		return "日給"
	case HourlyWage:
		return "時間給"
	default:
		return "不明"
	}
}

// Languageは通知書の出力言語です。
type Language string

const (
	Japanese   Language = "ja"
	English    Language = "en"
	Vietnamese Language = "vi"
	Chinese    Language = "zh"
	Indonesian Language = "id"
	Tagalog    Language = "tl"
	Nepali     Language = "ne"
	Burmese    Language = "my"
)

// DefaultLanguageは言語未選択の状態を表します。この言語のままではPDFを生成できません。
const DefaultLanguage = Japanese

// Languagesは対応言語の一覧です(先頭がデフォルト)。
var Languages = []Language{Japanese, English, Vietnamese, Chinese, Indonesian, Tagalog, Nepali, Burmese}

func (l Language) Label() string {
	switch l {
	case Japanese:
		return "日本語"
	case English:
		return "英語"
	case Vietnamese:
		return "ベトナム語"
	case Chinese:
		return "中国語"
	case Indonesian:
		return "インドネシア語"
	case Tagalog:
		return "タガログ語"
	case Nepali:
		return "ネパール語"
	case Burmese:
		return "ミャンマー語"
	default:
		return "不明"
	}
}

func (l Language) Supported() bool {
	for _, s := range Languages {
		if s == l {
			return true
		}
	}
	return false
}
