package constants

import (
	"regexp"

	"github.com/Altair29/J-GLOW-sub002/internal/infra"
)

// GetAnswerPatternsは、回答ファイルの正規化で使用するコンパイル済みの正規表現パターンを返します。
func GetAnswerPatterns() infra.AnswerPatterns {
	return infra.AnswerPatterns{
		AmountPattern:    regexp.MustCompile(`(\d+(?:\.\d+)?)`),
		JapaneseTime:     regexp.MustCompile(`^(\d{1,2})時(?:(\d{1,2})分)?$`),
		ColonTime:        regexp.MustCompile(`^(\d{1,2}):(\d{2})$`),
		ItemSeparator:    regexp.MustCompile(`[、,，/\s]+`),
		TruthyExpression: []string{"true", "yes", "on", "1", "有", "有り", "あり", "はい", "○"},
		FalsyExpression:  []string{"false", "no", "off", "0", "", "無", "無し", "なし", "いいえ", "×"},
	}
}

// GetValidationReportHeadersは、一括チェックが出力するCSVファイルのヘッダーを返します。
func GetValidationReportHeaders() []string {
	return []string{
		"ファイル", "労働者氏名", "在留資格", "結果", "未完了ステップ", "項目", "メッセージ",
	}
}

// GetAnswerFileExtensionsは、一括チェックの対象とする回答ファイルの拡張子を返します。
func GetAnswerFileExtensions() []string {
	return []string{".yaml", ".yml"}
}

const (
	LogBatchCount = 100
)
