package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/document"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/wizard"
	"github.com/Altair29/J-GLOW-sub002/internal/infra"
	"github.com/Altair29/J-GLOW-sub002/internal/logger"
)

// ReplayArgsは、操作スクリプト再生ユースケースを構築するための引数を保持します。
type ReplayArgs struct {
	Loader    *infra.AnswerFileLoader
	Parser    infra.AnswerParser
	Machine   *wizard.Machine
	Assembler *document.Assembler
	Document  infra.HTMLDocument
	Out       io.Writer
	Logger    logger.AppLogger
}

// ReplayScriptUseCaseは、操作スクリプトを1操作ずつウィザードに適用し、各時点の画面を出力します。
type ReplayScriptUseCase struct {
	loader    *infra.AnswerFileLoader
	parser    infra.AnswerParser
	machine   *wizard.Machine
	assembler *document.Assembler
	document  infra.HTMLDocument
	out       io.Writer
	logger    logger.AppLogger
}

func NewReplayScriptUseCase(args ReplayArgs) *ReplayScriptUseCase {
	return &ReplayScriptUseCase{
		loader:    args.Loader,
		parser:    args.Parser,
		machine:   args.Machine,
		assembler: args.Assembler,
		document:  args.Document,
		out:       args.Out,
		logger:    args.Logger,
	}
}

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	errorColor   = color.New(color.FgRed)
	okColor      = color.New(color.FgGreen)
	noticeColor  = color.New(color.FgYellow)
)

// Runは、スクリプトの操作を順に適用します。
// PDF生成の依頼はその場で実行し、結果をウィザードに戻してから次の操作に進みます。
//
// args:
//
//	ctx  : コンテキスト
//	path : 操作スクリプトのパス
//
// return:
//
//	wizard.State : 最後の操作を適用した後の状態
//	error        : スクリプトの読み込みや値の変換に失敗した場合のエラー
func (u *ReplayScriptUseCase) Run(ctx context.Context, path string) (wizard.State, error) {
	script, err := u.loader.LoadActionScript(path)
	if err != nil {
		return wizard.State{}, err
	}
	u.logger.Info("操作スクリプトを再生します", "name", script.Name, "steps", len(script.Steps))

	s := wizard.Initial()
	if err := u.printView(s, 0, "start"); err != nil {
		return s, err
	}

	for i, step := range script.Steps {
		action, err := u.toAction(step)
		if err != nil {
			return s, fmt.Errorf("%d番目の操作の変換に失敗しました: %w", i+1, err)
		}

		next, commands, err := u.machine.Reduce(s, action)
		if err != nil {
			return s, fmt.Errorf("%d番目の操作(%s)の適用に失敗しました: %w", i+1, wizard.ActionName(action), err)
		}
		s = next

		for _, c := range commands {
			s, err = u.runCommand(ctx, s, c)
			if err != nil {
				return s, err
			}
		}

		if err := u.printView(s, i+1, wizard.ActionName(action)); err != nil {
			return s, err
		}
	}
	return s, nil
}

func (u *ReplayScriptUseCase) toAction(step infra.ScriptStep) (wizard.Action, error) {
	switch step.Action {
	case "set":
		value, err := u.parser.ParseValue(model.FieldKey(step.Key), step.Value)
		if err != nil {
			return nil, err
		}
		return wizard.SetField{Key: model.FieldKey(step.Key), Value: value}, nil
	case "next":
		return wizard.Next{}, nil
	case "back":
		return wizard.Back{}, nil
	case "jump":
		return wizard.JumpTo{Step: model.Step(step.Step)}, nil
	case "generate":
		return wizard.RequestGenerate{}, nil
	default:
		return nil, fmt.Errorf("未定義の操作です: %s", step.Action)
	}
}

// runCommandは、ウィザードが出した依頼を実行し、必要なら結果をウィザードに戻します。
func (u *ReplayScriptUseCase) runCommand(ctx context.Context, s wizard.State, c wizard.Command) (wizard.State, error) {
	switch cmd := c.(type) {
	case wizard.GenerateCommand:
		u.logger.Debug("PDFを生成します", "token", cmd.Token, "language", string(cmd.Language))
		artifact, genErr := u.assembler.Generate(ctx, cmd.Answers, cmd.Language)
		if genErr != nil {
			u.logger.Warn("PDFの生成に失敗しました", "token", cmd.Token, "error", genErr)
		}
		next, _, err := u.machine.Reduce(s, wizard.GenerateResult{Token: cmd.Token, Artifact: artifact, Err: genErr})
		if err != nil {
			return s, fmt.Errorf("生成結果の反映に失敗しました: %w", err)
		}
		return next, nil
	case wizard.AbandonGenerateCommand:
		u.logger.Info("生成待ちの依頼を破棄しました", "token", cmd.Token)
		return s, nil
	default:
		return s, fmt.Errorf("未定義のコマンドです: %s", wizard.CommandName(c))
	}
}

// printViewは、現在の画面をテキストで出力します。
func (u *ReplayScriptUseCase) printView(s wizard.State, index int, action string) error {
	view, err := u.machine.View(s)
	if err != nil {
		return fmt.Errorf("表示内容の作成に失敗しました: %w", err)
	}

	fmt.Fprintf(u.out, "#%d %s\n", index, action)
	fmt.Fprintf(u.out, "%s\n", headingColor.Sprintf("[%d/%d] %s", view.Step, model.LastStep, view.Heading))
	fmt.Fprintf(u.out, "  %s\n", formatTabs(view.Tabs))

	if view.Banner != "" {
		fmt.Fprintf(u.out, "  %s\n", errorColor.Sprint("! "+view.Banner))
	}
	for _, f := range view.Fields {
		if f.Error != "" {
			fmt.Fprintf(u.out, "  %s %s\n", errorColor.Sprint("×"), f.Error)
		}
	}

	if view.Step == model.StepReview {
		if err := u.printReview(view); err != nil {
			return err
		}
	}
	fmt.Fprintln(u.out)
	return nil
}

func formatTabs(tabs []wizard.TabView) string {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := fmt.Sprintf("%d.%s", t.Step, t.Heading)
		switch {
		case t.Current:
			label = headingColor.Sprint("▶" + label)
		case t.Completed:
			label = okColor.Sprint("✓" + label)
		case !t.Reachable:
			label = " " + label
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " | ")
}

func (u *ReplayScriptUseCase) printReview(view wizard.View) error {
	g := view.Generate
	switch {
	case g.Pending:
		fmt.Fprintf(u.out, "  %s\n", noticeColor.Sprint("PDF: 生成中"))
	case g.Artifact != nil && g.Stale:
		fmt.Fprintf(u.out, "  %s\n", noticeColor.Sprintf("PDF: %s (回答変更あり)", g.Artifact.Filename))
	case g.Artifact != nil:
		fmt.Fprintf(u.out, "  %s\n", okColor.Sprintf("PDF: %s (%dバイト)", g.Artifact.Filename, len(g.Artifact.Content)))
	case !g.Enabled:
		fmt.Fprintf(u.out, "  %s\n", noticeColor.Sprint("PDF: "+g.Advisory))
	default:
		fmt.Fprintf(u.out, "  PDF: 生成できます\n")
	}

	if view.Preview == nil || u.assembler == nil {
		return nil
	}
	html, err := u.assembler.RenderHTML(*view.Preview)
	if err != nil {
		return fmt.Errorf("プレビューの描画に失敗しました: %w", err)
	}
	rows, err := u.document.ExtractText(html, "tr[data-field]")
	if err != nil {
		return fmt.Errorf("プレビューの読み取りに失敗しました: %w", err)
	}
	for _, row := range rows {
		fmt.Fprintf(u.out, "    %s\n", row)
	}
	return nil
}
