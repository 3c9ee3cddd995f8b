package wizard

import (
	"github.com/Altair29/J-GLOW-sub002/internal/domain/document"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
)

// Actionはウィザードへの入力イベントです。
type Action interface {
	actionName() string
}

// SetFieldは1項目の入力です。Valueにnilを渡すと未入力に戻します。
type SetField struct {
	Key   model.FieldKey
	Value any
}

type Next struct{}

type Back struct{}

// JumpToは完了済みタブからの移動です。
type JumpTo struct {
	Step model.Step
}

type RequestGenerate struct{}

// GenerateResultはGenerateCommandの実行結果です。
type GenerateResult struct {
	Token    string
	Artifact document.Artifact
	Err      error
}

func (SetField) actionName() string        { return "set_field" }
func (Next) actionName() string            { return "next" }
func (Back) actionName() string            { return "back" }
func (JumpTo) actionName() string          { return "jump_to" }
func (RequestGenerate) actionName() string { return "request_generate" }
func (GenerateResult) actionName() string  { return "generate_result" }

// Commandはウィザードが外部に依頼する処理です。
type Command interface {
	commandName() string
}

// GenerateCommandはPDF生成の依頼です。結果はTokenを付けたGenerateResultで返してください。
type GenerateCommand struct {
	Token    string
	Answers  model.AnswerSet
	Language model.Language
	Revision int
}

// AbandonGenerateCommandは生成待ちの依頼を破棄したことを知らせます。
// 実行側は処理を中断してよく、中断しなくても結果は無視されます。
type AbandonGenerateCommand struct {
	Token string
}

func (GenerateCommand) commandName() string        { return "generate" }
func (AbandonGenerateCommand) commandName() string { return "abandon_generate" }

// ActionNameはログ出力用のアクション名です。
func ActionName(a Action) string {
	if a == nil {
		return ""
	}
	return a.actionName()
}

// CommandNameはログ出力用のコマンド名です。
func CommandName(c Command) string {
	if c == nil {
		return ""
	}
	return c.commandName()
}
