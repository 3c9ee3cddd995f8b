package document

import (
	_ "embed"
	"fmt"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/goccy/go-yaml"
)

//go:embed labels.yaml
var defaultLabels []byte

// LabelSetは1言語分のラベルです。
type LabelSet struct {
	Title    string            `yaml:"title"`
	Intro    string            `yaml:"intro"`
	Sections map[string]string `yaml:"sections"`
	Fields   map[string]string `yaml:"fields"`
	// Valuesのキーは "yes" / "no" または "<項目キー>.<選択肢の値>" です。
	Values map[string]string `yaml:"values"`
}

// LabelTableは言語ごとのラベル表です。
type LabelTable map[model.Language]LabelSet

// LoadLabelTableはYAMLからラベル表を読み込みます。
// 対応言語すべての見出しと節名が揃っていない場合はエラーを返します。
func LoadLabelTable(data []byte) (LabelTable, error) {
	raw := map[string]LabelSet{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ラベル表のYAML解析に失敗しました: %w", err)
	}

	table := make(LabelTable, len(raw))
	for lang, set := range raw {
		table[model.Language(lang)] = set
	}
	for _, lang := range model.Languages {
		set, ok := table[lang]
		if !ok {
			return nil, fmt.Errorf("ラベル表に言語 %s がありません", lang)
		}
		if set.Title == "" {
			return nil, fmt.Errorf("ラベル表の言語 %s に表題がありません", lang)
		}
		for _, s := range sections {
			if set.Sections[s.id] == "" {
				return nil, fmt.Errorf("ラベル表の言語 %s に節 %s がありません", lang, s.id)
			}
		}
	}
	return table, nil
}

// DefaultLabelTableは組み込みのラベル表を返します。
func DefaultLabelTable() (LabelTable, error) {
	return LoadLabelTable(defaultLabels)
}

func (t LabelTable) field(lang model.Language, key model.FieldKey) string {
	return t[lang].Fields[string(key)]
}

func (t LabelTable) value(lang model.Language, key model.FieldKey, value string) string {
	return t[lang].Values[string(key)+"."+value]
}

func (t LabelTable) flag(lang model.Language, on bool) string {
	if on {
		return t[lang].Values["yes"]
	}
	return t[lang].Values["no"]
}
