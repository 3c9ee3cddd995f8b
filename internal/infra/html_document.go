package infra

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLDocumentは描画済みの通知書HTMLを検査します。
type HTMLDocument interface {
	ExtractText(html string, selector string) ([]string, error)
	ExtractAttributes(html string, selector, attr string) ([]string, error)
}

type htmlDocument struct{}

func NewHTMLDocument() HTMLDocument {
	return &htmlDocument{}
}

// ExtractText はHTMLから特定のセレクタにマッチする要素のテキストを抽出します。
// 連続する空白は1つにまとめます。
//
// 使用例:
//
//   - 見出しの抽出: ExtractText(html, "section h2")
//     入力: <h2>契約期間<span class="foreign">Period of contract</span></h2>
//     出力: ["契約期間Period of contract"]
//
//   - 行の抽出: ExtractText(html, `tr[data-field="worker_name"] td`)
//     入力: <tr data-field="worker_name"><th>労働者氏名</th><td>NGUYEN VAN A</td></tr>
//     出力: ["NGUYEN VAN A"]
//
// パラメータ:
//   - html: 解析対象のHTML文字列
//   - selector: 要素を選択するためのCSSセレクタ
//
// 戻り値:
//   - []string: 抽出されたテキストの配列
//   - error: エラーが発生した場合のエラー情報
func (h *htmlDocument) ExtractText(html string, selector string) ([]string, error) {
	document, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("HTMLの解析に失敗しました: %w", err)
	}

	var texts []string
	document.Find(selector).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.Join(strings.Fields(s.Text()), " "))
	})

	return texts, nil
}

// ExtractAttributes はHTMLから特定のセレクタにマッチする要素の属性値を抽出します。
//
// 使用例:
//
//   - 通知書の行に対応する項目キーの抽出: ExtractAttributes(html, "tr[data-field]", "data-field")
//     入力: <tr data-field="worker_name">...</tr><tr data-field="company_name">...</tr>
//     出力: ["worker_name", "company_name"]
//
// パラメータ:
//   - html: 解析対象のHTML文字列
//   - selector: 要素を選択するためのCSSセレクタ
//   - attr: 抽出する属性名
//
// 戻り値:
//   - []string: 抽出された属性値の配列
//   - error: エラーが発生した場合のエラー情報
func (h *htmlDocument) ExtractAttributes(html string, selector, attr string) ([]string, error) {
	document, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("HTMLの解析に失敗しました: %w", err)
	}

	var attributes []string
	document.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if value, exists := s.Attr(attr); exists {
			attributes = append(attributes, value)
		}
	})

	return attributes, nil
}
