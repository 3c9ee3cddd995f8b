package document

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"slices"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/rule"
)

// LanguageAdvisoryは日本語選択中に生成ボタンの横へ表示する案内文です。
const LanguageAdvisory = "外国語を1つ選択するとPDFを生成できます"

var (
	// ErrLanguageNotSelectedは出力言語が日本語のまま生成を要求されたことを表します。
	// 入力エラーではなく案内として扱います。
	ErrLanguageNotSelected = errors.New(LanguageAdvisory)
	ErrUnsupportedLanguage = errors.New("対応していない出力言語です")
	// ErrIncompleteLayoutは描画したHTMLに表示中の項目の行が欠けていることを表します。
	ErrIncompleteLayout = errors.New("通知書に記載されていない項目があります")
)

//go:embed notice.html.tmpl
var noticeTemplate string

// RendererはHTMLをPDFに変換します。
type Renderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// LayoutInspectorは描画済みHTMLから属性値を取り出します。
type LayoutInspector interface {
	ExtractAttributes(html, selector, attr string) ([]string, error)
}

// Artifactは生成されたPDFです。
type Artifact struct {
	Filename string
	Language model.Language
	Content  []byte
}

type AssemblerArgs struct {
	Engine    *rule.Engine
	Labels    LabelTable
	Renderer  Renderer
	Inspector LayoutInspector
}

type Assembler struct {
	engine    *rule.Engine
	labels    LabelTable
	tmpl      *template.Template
	renderer  Renderer
	inspector LayoutInspector
}

// NewAssemblerはAssemblerを生成します。Labelsを省略すると組み込みのラベル表を使います。
func NewAssembler(args AssemblerArgs) (*Assembler, error) {
	if args.Engine == nil {
		return nil, errors.New("条件ルールのエンジンが指定されていません")
	}
	labels := args.Labels
	if labels == nil {
		var err error
		labels, err = DefaultLabelTable()
		if err != nil {
			return nil, err
		}
	}
	tmpl, err := template.New("notice").Parse(noticeTemplate)
	if err != nil {
		return nil, fmt.Errorf("通知書テンプレートの解析に失敗しました: %w", err)
	}
	return &Assembler{
		engine:    args.Engine,
		labels:    labels,
		tmpl:      tmpl,
		renderer:  args.Renderer,
		inspector: args.Inspector,
	}, nil
}

// Previewは現在の回答セットから通知書を組み立てます。言語に関係なく常に利用できます。
func (a *Assembler) Preview(answers model.AnswerSet) (Document, error) {
	lang := answers.Language()
	if !lang.Supported() {
		lang = model.DefaultLanguage
	}
	derived, err := a.engine.Derive(answers)
	if err != nil {
		return Document{}, fmt.Errorf("条件ルールの導出に失敗しました: %w", err)
	}
	return build(answers, derived, a.labels, lang), nil
}

// RenderHTMLは通知書をHTMLに描画します。
func (a *Assembler) RenderHTML(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("通知書の描画に失敗しました: %w", err)
	}
	return buf.String(), nil
}

// Generateはlangとの併記でPDFを生成します。
//
// args:
//
//	ctx: PDF変換のキャンセルに使用
//	answers: 回答セット
//	lang: 出力言語(日本語は不可)
//
// return:
//
//	Artifact: 生成したPDF
//	error: 日本語選択時は ErrLanguageNotSelected
func (a *Assembler) Generate(ctx context.Context, answers model.AnswerSet, lang model.Language) (Artifact, error) {
	if lang == model.DefaultLanguage {
		return Artifact{}, ErrLanguageNotSelected
	}
	if !lang.Supported() {
		return Artifact{}, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	if a.renderer == nil {
		return Artifact{}, errors.New("PDFレンダラーが設定されていません")
	}

	derived, err := a.engine.Derive(answers)
	if err != nil {
		return Artifact{}, fmt.Errorf("条件ルールの導出に失敗しました: %w", err)
	}
	doc := build(answers, derived, a.labels, lang)
	html, err := a.RenderHTML(doc)
	if err != nil {
		return Artifact{}, err
	}
	if err := a.verifyLayout(html, derived); err != nil {
		return Artifact{}, err
	}

	pdf, err := a.renderer.RenderPDF(ctx, html)
	if err != nil {
		return Artifact{}, fmt.Errorf("PDFの生成に失敗しました: %w", err)
	}
	return Artifact{
		Filename: Filename(lang),
		Language: lang,
		Content:  pdf,
	}, nil
}

// verifyLayoutはステップ1〜4の表示中の項目すべてに行があることを確認します。
func (a *Assembler) verifyLayout(html string, derived rule.DerivedRuleSet) error {
	if a.inspector == nil {
		return nil
	}
	found, err := a.inspector.ExtractAttributes(html, "tr[data-field]", "data-field")
	if err != nil {
		return fmt.Errorf("通知書レイアウトの検査に失敗しました: %w", err)
	}
	for step := model.StepBasicInfo; step < model.StepReview; step++ {
		for _, key := range derived.VisibleFields(step) {
			if !slices.Contains(found, string(key)) {
				return fmt.Errorf("%w: %s", ErrIncompleteLayout, key)
			}
		}
	}
	return nil
}

// Filenameは生成するPDFのファイル名です。
func Filename(lang model.Language) string {
	return fmt.Sprintf("labor_condition_notice_%s.pdf", lang)
}
