package wizard

import (
	"fmt"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/document"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/schema"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/validation"
)

// FieldViewは表示中の1項目です。
type FieldView struct {
	Key         model.FieldKey
	Type        model.FieldType
	Label       string
	Placeholder string
	Required    bool
	Value       any
	Error       string
	Options     []schema.Option
}

// TabViewはステップのタブです。Reachableなタブはクリックで移動できます。
type TabView struct {
	Step      model.Step
	Heading   string
	Current   bool
	Completed bool
	Reachable bool
}

type GenerateView struct {
	Enabled bool
	// Advisoryは生成できない理由です。日本語選択中は言語選択の案内になります。
	Advisory string
	Pending  bool
	Artifact *document.Artifact
	// Staleは生成後に回答が変更されたことを表します。
	Stale bool
}

// Viewは現在のステップの表示内容です。
type View struct {
	Step     model.Step
	Heading  string
	Fields   []FieldView
	Banner   string
	Tabs     []TabView
	CanNext  bool
	CanBack  bool
	Generate GenerateView
	// Previewは確認ステップでのみ設定されます。
	Preview *document.Document
}

// Messagesはエラーメッセージを表示順で返します。
func (v View) Messages() []string {
	var out []string
	for _, f := range v.Fields {
		if f.Error != "" {
			out = append(out, f.Error)
		}
	}
	return out
}

// Fieldはkeyが表示中であればその項目を返します。
func (v View) Field(key model.FieldKey) (FieldView, bool) {
	for _, f := range v.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldView{}, false
}

// Viewは状態から表示内容を導出します。
func (m *Machine) View(s State) (View, error) {
	derived, err := m.engine.Derive(s.Answers)
	if err != nil {
		return View{}, fmt.Errorf("条件ルールの導出に失敗しました: %w", err)
	}

	view := View{
		Step:    s.Step,
		Heading: schema.Heading(s.Step),
		CanNext: CanNext(s).Allowed,
		CanBack: CanBack(s).Allowed,
	}
	if s.Banner {
		view.Banner = validation.BannerMessage
	}

	for _, key := range derived.VisibleFields(s.Step) {
		f := schema.Lookup(key)
		value, _ := s.Answers.Value(key)
		view.Fields = append(view.Fields, FieldView{
			Key:         key,
			Type:        f.Type,
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Required:    derived.IsRequired(key),
			Value:       value,
			Error:       s.Errors[key],
			Options:     derived.Options(key),
		})
	}

	for step := model.FirstStep; step <= model.LastStep; step++ {
		view.Tabs = append(view.Tabs, TabView{
			Step:      step,
			Heading:   schema.Heading(step),
			Current:   step == s.Step,
			Completed: s.Completed(step),
			Reachable: step == s.Step || CanJumpTo(s, step).Allowed,
		})
	}

	if s.Step == model.StepReview {
		guard := CanGenerate(s)
		view.Generate = GenerateView{
			Enabled:  guard.Allowed,
			Advisory: guard.Reason,
			Pending:  s.Generation.Pending(),
			Artifact: s.Generation.Artifact,
			Stale:    s.Generation.Artifact != nil && s.Generation.Revision != s.Revision,
		}
		if m.assembler != nil {
			doc, err := m.assembler.Preview(s.Answers)
			if err != nil {
				return View{}, fmt.Errorf("プレビューの作成に失敗しました: %w", err)
			}
			view.Preview = &doc
		}
	}
	return view, nil
}
