package wizard

import (
	"errors"
	"fmt"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/document"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/rule"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/schema"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/validation"
	"github.com/google/uuid"
)

var (
	ErrUnknownField  = errors.New("未定義の項目です")
	ErrTypeMismatch  = errors.New("項目の型と値の型が一致しません")
	ErrUnknownAction = errors.New("未定義のアクションです")
)

type MachineArgs struct {
	Engine *rule.Engine
	// Assemblerは確認ステップのプレビューに使います。nilならプレビューを表示しません。
	Assembler *document.Assembler
	// NewTokenは生成依頼のトークンを発行します。省略時はUUIDです。
	NewToken func() string
}

// Machineはウィザードの遷移規則です。状態を持たないため並行に利用できます。
type Machine struct {
	engine    *rule.Engine
	validator *validation.Validator
	assembler *document.Assembler
	newToken  func() string
}

func NewMachine(args MachineArgs) (*Machine, error) {
	if args.Engine == nil {
		return nil, errors.New("条件ルールのエンジンが指定されていません")
	}
	newToken := args.NewToken
	if newToken == nil {
		newToken = uuid.NewString
	}
	return &Machine{
		engine:    args.Engine,
		validator: validation.NewValidator(args.Engine),
		assembler: args.Assembler,
		newToken:  newToken,
	}, nil
}

// Reduceはactionを適用した次の状態を返します。sは変更しません。
//
// 許可されない遷移(最初のステップでの「戻る」など)は状態を変えずにそのまま返します。
// errorは入力値の誤りやルール評価の失敗など、呼び出し側の誤りを表します。
func (m *Machine) Reduce(s State, action Action) (State, []Command, error) {
	switch a := action.(type) {
	case SetField:
		return m.setField(s, a)
	case Next:
		return m.next(s)
	case Back:
		return m.back(s)
	case JumpTo:
		return m.jumpTo(s, a)
	case RequestGenerate:
		return m.requestGenerate(s)
	case GenerateResult:
		return m.generateResult(s, a)
	default:
		return s, nil, fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}
}

func (m *Machine) setField(s State, a SetField) (State, []Command, error) {
	if !schema.Has(a.Key) {
		return s, nil, fmt.Errorf("%w: %s", ErrUnknownField, a.Key)
	}
	if err := checkType(schema.Lookup(a.Key), a.Value); err != nil {
		return s, nil, err
	}

	next := s.clone()
	next.Answers = s.Answers.With(a.Key, a.Value)
	next.Revision++
	// エラーは入力された項目の分だけ消し、他の項目は次の「次へ」まで残す
	if !next.Answers.IsEmpty(a.Key) {
		delete(next.Errors, a.Key)
	}
	if len(next.Errors) == 0 {
		next.Banner = false
	}
	return next, nil, nil
}

func checkType(field schema.Field, value any) error {
	if value == nil {
		return nil
	}
	ok := false
	switch field.Type {
	case model.FieldTypeCheckbox:
		_, ok = value.(bool)
	case model.FieldTypeMultiSelect:
		_, ok = value.([]string)
	default:
		_, ok = value.(string)
	}
	if !ok {
		return fmt.Errorf("%w: %s (%s) に %T", ErrTypeMismatch, field.Key, field.Type, value)
	}
	return nil
}

func (m *Machine) next(s State) (State, []Command, error) {
	if !CanNext(s).Allowed {
		return s, nil, nil
	}
	res, err := m.validator.Validate(s.Step, s.Answers)
	if err != nil {
		return s, nil, fmt.Errorf("入力チェックに失敗しました: %w", err)
	}

	next := s.clone()
	if !res.OK {
		next.Errors = res.Errors
		next.Banner = res.Banner
		return next, nil, nil
	}
	next.Errors = map[model.FieldKey]string{}
	next.Banner = false
	next.MaxCompleted = max(s.MaxCompleted, s.Step)
	next.Step = s.Step + 1
	return next, nil, nil
}

func (m *Machine) back(s State) (State, []Command, error) {
	if !CanBack(s).Allowed {
		return s, nil, nil
	}
	return moveTo(s, s.Step-1), abandon(s), nil
}

func (m *Machine) jumpTo(s State, a JumpTo) (State, []Command, error) {
	if !CanJumpTo(s, a.Step).Allowed {
		return s, nil, nil
	}
	return moveTo(s, a.Step), abandon(s), nil
}

// moveToは入力チェックなしでstepへ移動します。回答はそのまま引き継ぎます。
func moveTo(s State, step model.Step) State {
	next := s.clone()
	next.Step = step
	next.Errors = map[model.FieldKey]string{}
	next.Banner = false
	if s.Step == model.StepReview && s.Generation.Pending() {
		next.Generation = s.Generation.settle()
	}
	return next
}

func abandon(s State) []Command {
	if s.Step == model.StepReview && s.Generation.Pending() {
		return []Command{AbandonGenerateCommand{Token: s.Generation.Token}}
	}
	return nil
}

func (m *Machine) requestGenerate(s State) (State, []Command, error) {
	if !CanGenerate(s).Allowed {
		return s, nil, nil
	}
	token := m.newToken()
	lang := s.Answers.Language()

	prior := s.Generation
	next := s.clone()
	next.Generation = Generation{
		Status:   GenerationPending,
		Token:    token,
		Language: lang,
		Revision: s.Revision,
		prior:    &prior,
	}
	cmd := GenerateCommand{
		Token:    token,
		Answers:  s.Answers.Clone(),
		Language: lang,
		Revision: s.Revision,
	}
	return next, []Command{cmd}, nil
}

// generateResultは依頼中のトークンと一致する結果だけを反映します。
// 依頼後に回答が変わっていた場合、成功していても古い内容なので捨てます。
// 変換の失敗はウィザードの状態としては持たず、依頼前の状態に戻すだけです。原因の記録は呼び出し側で行います。
func (m *Machine) generateResult(s State, a GenerateResult) (State, []Command, error) {
	if !s.Generation.Pending() || a.Token != s.Generation.Token {
		return s, nil, nil
	}

	next := s.clone()
	switch {
	case s.Revision != s.Generation.Revision, a.Err != nil:
		next.Generation = s.Generation.settle()
	default:
		artifact := a.Artifact
		next.Generation = Generation{
			Status:   GenerationSucceeded,
			Language: s.Generation.Language,
			Revision: s.Generation.Revision,
			Artifact: &artifact,
		}
	}
	return next, nil, nil
}
