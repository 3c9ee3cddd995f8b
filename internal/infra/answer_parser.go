package infra

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/schema"
	"golang.org/x/text/width"
)

// ErrUnknownAnswerKeyは回答ファイルに未定義の項目があることを表します。
var ErrUnknownAnswerKey = errors.New("未定義の項目です")

// AnswerParserは回答ファイルの値をウィザードが受け付ける値に変換します。
// 日本語の表示名(「期間の定めなし」など)や「25万円」のような表記も受け付けます。
type AnswerParser interface {
	ParseValue(key model.FieldKey, raw any) (any, error)
	ParseAnswers(raw map[string]any) (model.AnswerSet, error)
}

type AnswerPatterns struct {
	AmountPattern    *regexp.Regexp // 「25万」「2.5万」など単位付きの金額
	JapaneseTime     *regexp.Regexp // 「9時」「9時30分」
	ColonTime        *regexp.Regexp // 「9:00」
	ItemSeparator    *regexp.Regexp // 複数選択の区切り
	TruthyExpression []string
	FalsyExpression  []string
}

type answerParser struct {
	patterns AnswerPatterns
}

func NewAnswerParser(patterns AnswerPatterns) *answerParser {
	return &answerParser{
		patterns: patterns,
	}
}

// ParseAnswersは回答ファイル1件分を既定値入りの回答セットに変換します。
//
// args:
//
//	raw: 項目キーから値へのマップ
//
// return:
//
//	model.AnswerSet: 変換後の回答セット
//	error: 未定義の項目や変換できない値がある場合のエラー
func (p *answerParser) ParseAnswers(raw map[string]any) (model.AnswerSet, error) {
	answers := model.NewAnswerSet()
	var errs []error
	for k, v := range raw {
		key := model.FieldKey(k)
		value, err := p.ParseValue(key, v)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		answers = answers.With(key, value)
	}
	if len(errs) > 0 {
		return model.AnswerSet{}, errors.Join(errs...)
	}
	return answers, nil
}

// ParseValueは項目の型に合わせて値を変換します。nilは未入力として扱います。
func (p *answerParser) ParseValue(key model.FieldKey, raw any) (any, error) {
	if !schema.Has(key) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAnswerKey, key)
	}
	if raw == nil {
		return nil, nil
	}

	field := schema.Lookup(key)
	var (
		value any
		err   error
	)
	switch field.Type {
	case model.FieldTypeCheckbox:
		value, err = p.parseFlag(raw)
	case model.FieldTypeMultiSelect:
		value, err = p.parseItems(key, raw)
	case model.FieldTypeSelect:
		value = p.parseOption(key, p.text(raw))
	case model.FieldTypeDate:
		value, err = p.parseDate(raw)
	case model.FieldTypeTime:
		value, err = p.parseTime(raw)
	case model.FieldTypeNumber:
		value, err = p.parseAmount(raw)
	default:
		value = p.text(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%s の値の変換に失敗しました: %w", key, err)
	}
	return value, nil
}

func (p *answerParser) text(raw any) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimFunc(v, unicode.IsSpace)
	case time.Time:
		return v.Format(time.DateOnly)
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// normalizeStringは全角英数字・記号を半角にそろえ、前後の空白と制御文字を取り除きます。
func (p *answerParser) normalizeString(s string) string {
	s = width.Fold.String(s)
	s = strings.TrimFunc(s, unicode.IsSpace)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func (p *answerParser) parseFlag(raw any) (bool, error) {
	if b, ok := raw.(bool); ok {
		return b, nil
	}
	s := strings.ToLower(p.normalizeString(p.text(raw)))
	for _, t := range p.patterns.TruthyExpression {
		if s == t {
			return true, nil
		}
	}
	for _, f := range p.patterns.FalsyExpression {
		if s == f {
			return false, nil
		}
	}
	return false, fmt.Errorf("真偽値として解釈できません: %v", raw)
}

func (p *answerParser) parseItems(key model.FieldKey, raw any) ([]string, error) {
	var items []string
	switch v := raw.(type) {
	case []string:
		items = v
	case []any:
		for _, item := range v {
			items = append(items, p.text(item))
		}
	case string:
		items = p.patterns.ItemSeparator.Split(v, -1)
	default:
		return nil, fmt.Errorf("複数選択の値として解釈できません: %v", raw)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimFunc(item, unicode.IsSpace)
		if item == "" {
			continue
		}
		out = append(out, p.parseOption(key, item))
	}
	return out, nil
}

// parseOptionは選択肢の値または表示名を値に変換します。どちらにも一致しなければそのまま返し、
// 選択肢にない値として入力チェックで扱います。
func (p *answerParser) parseOption(key model.FieldKey, s string) string {
	var candidates []schema.Option
	if key == model.FieldSector {
		for _, visa := range []model.VisaCategory{model.SpecifiedSkill1, model.SpecifiedSkill2, model.Ikusei} {
			candidates = append(candidates, schema.SectorOptions[visa]...)
		}
	} else {
		candidates = schema.OptionsFor(key, "")
	}
	for _, o := range candidates {
		if s == o.Value || s == o.Label {
			return o.Value
		}
	}
	// 曜日は「土」「土曜」「祝」のような省略形も受け付ける
	if key == model.FieldRestDays && s != "" {
		for _, o := range candidates {
			if strings.HasPrefix(o.Label, s) {
				return o.Value
			}
		}
		for _, o := range candidates {
			if strings.Contains(o.Label, s) {
				return o.Value
			}
		}
	}
	return s
}

func (p *answerParser) parseDate(raw any) (string, error) {
	if t, ok := raw.(time.Time); ok {
		return t.Format(time.DateOnly), nil
	}
	s := p.normalizeString(p.text(raw))
	if s == "" {
		return "", nil
	}
	formats := []string{
		"2006-01-02",  // 例: 2026-04-01
		"2006/01/02",  // 例: 2026/04/01
		"2006/1/2",    // 例: 2026/4/1
		"2006.01.02",  // 例: 2026.04.01
		"2006年1月2日",   // 例: 2026年4月1日
		"2006年01月02日", // 例: 2026年04月01日
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t.Format(time.DateOnly), nil
		}
	}
	return "", fmt.Errorf("日付として解釈できません: %s", s)
}

func (p *answerParser) parseTime(raw any) (string, error) {
	s := p.normalizeString(p.text(raw))
	if s == "" {
		return "", nil
	}
	for _, re := range []*regexp.Regexp{p.patterns.ColonTime, p.patterns.JapaneseTime} {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if len(m) > 2 && m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour > 23 || minute > 59 {
			return "", fmt.Errorf("時刻の範囲外です: %s", s)
		}
		return fmt.Sprintf("%02d:%02d", hour, minute), nil
	}
	return "", fmt.Errorf("時刻として解釈できません: %s", s)
}

// parseAmountは「25万円」「250,000円」「60分」などを整数の文字列に変換します。
func (p *answerParser) parseAmount(raw any) (string, error) {
	s := p.normalizeString(p.text(raw))
	if s == "" {
		return "", nil
	}

	unitMap := map[string]float64{
		"万": 1e4,
		"千": 1e3,
	}
	for unit, multiplier := range unitMap {
		if !strings.Contains(s, unit) {
			continue
		}
		matches := p.patterns.AmountPattern.FindStringSubmatch(strings.ReplaceAll(s, ",", ""))
		if len(matches) < 2 {
			return "", fmt.Errorf("金額として解釈できません: %s", s)
		}
		amount, err := strconv.ParseFloat(matches[1], 64)
		if err != nil {
			return "", fmt.Errorf("金額の数値変換に失敗しました: %w", err)
		}
		return strconv.FormatInt(int64(math.Round(amount*multiplier)), 10), nil
	}

	// 通常の数値(カンマ・単位を除去)
	clean := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if clean == "" {
		return "", fmt.Errorf("数値として解釈できません: %s", s)
	}
	if _, err := strconv.ParseUint(clean, 10, 64); err != nil {
		return "", fmt.Errorf("数値の変換に失敗しました: %w", err)
	}
	return clean, nil
}
