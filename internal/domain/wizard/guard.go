package wizard

import (
	"github.com/Altair29/J-GLOW-sub002/internal/domain/document"
	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
)

// GuardResultは遷移の可否と、不可の場合の理由です。
type GuardResult struct {
	Allowed bool
	Reason  string
}

func allow() GuardResult {
	return GuardResult{Allowed: true}
}

func deny(reason string) GuardResult {
	return GuardResult{Reason: reason}
}

// CanNextは「次へ」が押せるかを判定します。入力チェックは押した後に行います。
func CanNext(s State) GuardResult {
	if s.Step >= model.LastStep {
		return deny("確認ステップに「次へ」はありません")
	}
	return allow()
}

func CanBack(s State) GuardResult {
	if s.Step <= model.FirstStep {
		return deny("最初のステップです")
	}
	return allow()
}

// CanJumpToはチェックを通過したことのあるステップへの移動だけを許可します。
func CanJumpTo(s State, step model.Step) GuardResult {
	switch {
	case !step.Valid():
		return deny("存在しないステップです")
	case step == s.Step:
		return deny("現在のステップです")
	case step > s.MaxCompleted:
		return deny("未完了のステップには移動できません")
	}
	return allow()
}

// CanGenerateはPDF生成を依頼できるかを判定します。
// 日本語選択中は案内文を理由として返します。
func CanGenerate(s State) GuardResult {
	lang := s.Answers.Language()
	switch {
	case s.Step != model.StepReview:
		return deny("確認ステップでのみPDFを生成できます")
	case s.Generation.Pending():
		return deny("PDFを生成中です")
	case lang == model.DefaultLanguage:
		return deny(document.LanguageAdvisory)
	case !lang.Supported():
		return deny(document.ErrUnsupportedLanguage.Error())
	}
	return allow()
}
