package usecase

import (
	"fmt"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/wizard"
)

// stepFailureは「次へ」で止まったステップとその理由です。
type stepFailure struct {
	Step   model.Step
	Errors []fieldError
}

type fieldError struct {
	Key     model.FieldKey
	Message string
}

// fillAnswersは、回答を1項目ずつSetFieldとしてウィザードに入力します。
//
// args:
//
//	machine: ウィザードの遷移規則
//	answers: 入力する回答
//
// return:
//
//	wizard.State: 入力後の状態(ステップ1のまま)
//	error: 型の合わない値があった場合のエラー
func fillAnswers(machine *wizard.Machine, answers model.AnswerSet) (wizard.State, error) {
	s := wizard.Initial()
	for _, key := range answers.Keys() {
		value, _ := answers.Value(key)
		next, _, err := machine.Reduce(s, wizard.SetField{Key: key, Value: value})
		if err != nil {
			return s, fmt.Errorf("%s の入力に失敗しました: %w", key, err)
		}
		s = next
	}
	return s, nil
}

// advanceToReviewは、確認ステップに着くかチェックで止まるまで「次へ」を繰り返します。
// 止まった場合はそのステップのエラーをstepFailureとして返します。
func advanceToReview(machine *wizard.Machine, s wizard.State) (wizard.State, *stepFailure, error) {
	for s.Step != model.StepReview {
		next, _, err := machine.Reduce(s, wizard.Next{})
		if err != nil {
			return s, nil, fmt.Errorf("ステップ%dのチェックに失敗しました: %w", s.Step, err)
		}
		if next.Step == s.Step {
			view, err := machine.View(next)
			if err != nil {
				return next, nil, fmt.Errorf("表示内容の作成に失敗しました: %w", err)
			}
			failure := &stepFailure{Step: next.Step}
			for _, f := range view.Fields {
				if f.Error != "" {
					failure.Errors = append(failure.Errors, fieldError{Key: f.Key, Message: f.Error})
				}
			}
			return next, failure, nil
		}
		s = next
	}
	return s, nil, nil
}
