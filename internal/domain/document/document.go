// Package document は回答セットから労働条件通知書を組み立てます。
//
// プレビューは常に組み立てられます。PDFの生成は外国語が選択されている場合に限り、
// 日本語と選択言語の併記で出力します。
package document

import (
	"strconv"
	"strings"
	"time"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/rule"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/schema"
)

// Textは日本語と併記する外国語の組です。Foreignが空なら日本語のみ表示します。
type Text struct {
	Ja      string
	Foreign string
}

// Rowは通知書の1行で、表示中の項目1つに対応します。
type Row struct {
	Field model.FieldKey
	Label Text
	Value Text
}

type Section struct {
	ID    string
	Title Text
	Rows  []Row
}

// Documentは組み立て済みの通知書です。
type Document struct {
	Language    model.Language
	Bilingual   bool
	Title       Text
	Intro       Text
	Sections    []Section
	RuleVersion string
}

// Fieldsは通知書に含まれる項目を出現順で返します。
func (d Document) Fields() []model.FieldKey {
	var out []model.FieldKey
	for _, s := range d.Sections {
		for _, r := range s.Rows {
			out = append(out, r.Field)
		}
	}
	return out
}

// Rowはkeyの行を返します。
func (d Document) Row(key model.FieldKey) (Row, bool) {
	for _, s := range d.Sections {
		for _, r := range s.Rows {
			if r.Field == key {
				return r, true
			}
		}
	}
	return Row{}, false
}

type sectionLayout struct {
	id     string
	fields []model.FieldKey
}

// 通知書の節構成は法定の記載順に固定です。
var sections = []sectionLayout{
	{id: "contract_period", fields: []model.FieldKey{
		model.FieldContractType, model.FieldContractStart, model.FieldContractEnd, model.FieldRenewalPolicy,
	}},
	{id: "place_and_work", fields: []model.FieldKey{
		model.FieldWorkplace, model.FieldJobDescription,
	}},
	{id: "residence", fields: []model.FieldKey{
		model.FieldVisaCategory, model.FieldSector, model.FieldTransferClauseEnabled,
		model.FieldTransferRestrictionPeriod, model.FieldTransferUnavoidableTerms, model.FieldTransferOwnRequestTerms,
	}},
	{id: "hours", fields: []model.FieldKey{
		model.FieldWorkScheduleType, model.FieldStartTime, model.FieldEndTime, model.FieldShiftPattern,
		model.FieldBreakMinutes, model.FieldRestDays, model.FieldOvertimeExists,
	}},
	{id: "wage", fields: []model.FieldKey{
		model.FieldWageType, model.FieldBaseWage, model.FieldPaymentDay,
	}},
	{id: "retirement", fields: []model.FieldKey{
		model.FieldEmploymentRulesExist, model.FieldDisciplinaryArticle,
	}},
	{id: "parties", fields: []model.FieldKey{
		model.FieldWorkerName, model.FieldCompanyName, model.FieldCompanyAddress,
		model.FieldRepresentativeName, model.FieldCompanyPhone,
	}},
}

// buildはlangの通知書を組み立てます。langが日本語なら併記しません。
func build(answers model.AnswerSet, derived rule.DerivedRuleSet, labels LabelTable, lang model.Language) Document {
	bilingual := lang != model.DefaultLanguage
	foreign := func(s string) string {
		if !bilingual {
			return ""
		}
		return s
	}

	ja := labels[model.Japanese]
	doc := Document{
		Language:    lang,
		Bilingual:   bilingual,
		Title:       Text{Ja: ja.Title, Foreign: foreign(labels[lang].Title)},
		Intro:       Text{Ja: ja.Intro, Foreign: foreign(labels[lang].Intro)},
		RuleVersion: derived.Version(),
	}

	for _, layout := range sections {
		section := Section{
			ID:    layout.id,
			Title: Text{Ja: ja.Sections[layout.id], Foreign: foreign(labels[lang].Sections[layout.id])},
		}
		for _, key := range layout.fields {
			// 非表示の項目は通知書にも載せない
			if !derived.IsVisible(key) {
				continue
			}
			value := formatValue(answers, labels, lang, key)
			if !bilingual {
				value.Foreign = ""
			}
			section.Rows = append(section.Rows, Row{
				Field: key,
				Label: Text{Ja: schema.Lookup(key).Label, Foreign: foreign(labels.field(lang, key))},
				Value: value,
			})
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc
}

func formatValue(answers model.AnswerSet, labels LabelTable, lang model.Language, key model.FieldKey) Text {
	field := schema.Lookup(key)
	switch field.Type {
	case model.FieldTypeCheckbox:
		on := answers.Flag(key)
		return Text{Ja: labels.flag(model.Japanese, on), Foreign: labels.flag(lang, on)}
	case model.FieldTypeSelect:
		v := answers.Text(key)
		if v == "" {
			return Text{}
		}
		return Text{Ja: schema.OptionLabel(key, v), Foreign: labels.value(lang, key, v)}
	case model.FieldTypeMultiSelect:
		var ja, fr []string
		for _, item := range answers.Items(key) {
			ja = append(ja, schema.OptionLabel(key, item))
			if l := labels.value(lang, key, item); l != "" {
				fr = append(fr, l)
			}
		}
		return Text{Ja: strings.Join(ja, "、"), Foreign: strings.Join(fr, ", ")}
	case model.FieldTypeDate:
		v := answers.Text(key)
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return Text{Ja: v}
		}
		return Text{Ja: d.Format("2006年1月2日"), Foreign: v}
	case model.FieldTypeNumber:
		v := answers.Text(key)
		n, err := strconv.Atoi(v)
		if err != nil {
			return Text{Ja: v}
		}
		switch key {
		case model.FieldBaseWage:
			return Text{Ja: groupDigits(n) + "円", Foreign: groupDigits(n)}
		case model.FieldBreakMinutes:
			return Text{Ja: v + "分", Foreign: v}
		}
		return Text{Ja: v}
	default:
		return Text{Ja: answers.Text(key)}
	}
}

// groupDigitsは3桁ごとにカンマを入れます。
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
