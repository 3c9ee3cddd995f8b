// Package wizard は5ステップの入力ウィザードを純粋な状態遷移として表します。
//
// Reduce は (State, Action) から次の State と外部へ依頼する Command を返します。
// PDFの生成だけが非同期で、GenerateCommand として外に出し、結果を GenerateResult で受け取ります。
package wizard

import (
	"maps"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/document"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
)

type GenerationStatus string

const (
	GenerationIdle      GenerationStatus = "IDLE"
	GenerationPending   GenerationStatus = "PENDING"
	GenerationSucceeded GenerationStatus = "SUCCEEDED"
)

// GenerationはPDF生成の進行状況です。
type Generation struct {
	Status   GenerationStatus
	Token    string
	Language model.Language
	// Revisionは生成を依頼した時点の回答の版です。
	Revision int
	Artifact *document.Artifact
	// priorは依頼前の状態です。
	prior *Generation
}

func (g Generation) Pending() bool {
	return g.Status == GenerationPending
}

// settleは依頼中の生成を取り消し、依頼前の状態に戻します。
// 以前に生成済みのPDFがあればそれが残ります。
func (g Generation) settle() Generation {
	if g.prior == nil {
		return Generation{Status: GenerationIdle}
	}
	return *g.prior
}

// Stateはウィザード1セッション分の状態です。値として扱い、Reduce以外で変更しないでください。
type State struct {
	Step model.Step
	// MaxCompletedはチェックを通過した最大のステップです。未通過なら0です。
	MaxCompleted model.Step
	Answers      model.AnswerSet
	Errors       map[model.FieldKey]string
	Banner       bool
	// Revisionは回答が変更されるたびに増えます。
	Revision   int
	Generation Generation
}

// Initialはウィザード開始時の状態を返します。
func Initial() State {
	return State{
		Step:       model.FirstStep,
		Answers:    model.NewAnswerSet(),
		Errors:     map[model.FieldKey]string{},
		Generation: Generation{Status: GenerationIdle},
	}
}

// Completedはstepがチェックを通過済みかを判定します。
func (s State) Completed(step model.Step) bool {
	return step <= s.MaxCompleted
}

func (s State) clone() State {
	next := s
	next.Errors = maps.Clone(s.Errors)
	if next.Errors == nil {
		next.Errors = map[model.FieldKey]string{}
	}
	return next
}
