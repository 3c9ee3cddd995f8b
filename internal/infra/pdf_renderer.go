package infra

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Altair29/J-GLOW-sub002/internal/config"
	"github.com/playwright-community/playwright-go"
)

// PDFRendererは、通知書HTMLをPDFに変換するブラウザ操作のインターフェースです。
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
	Close() error
}

type pdfRenderer struct {
	pw      *playwright.Playwright
	cfg     *config.RendererConfig
	browser playwright.Browser
	context playwright.BrowserContext
}

// 通知書は自己完結したHTMLなので、外部への通信はすべて遮断する
var externalRequest = regexp.MustCompile(`^https?://`)

// NewPDFRendererは、Playwrightを用いたpdfRendererを生成します。
//
// args:
//
//	cfg: PDF変換の設定
//
// return:
//
//	*pdfRenderer: 生成されたレンダラー
//	error: 失敗時のエラー
func NewPDFRenderer(cfg *config.RendererConfig) (*pdfRenderer, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("playwrightの起動に失敗しました: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.EnableHeadless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("ブラウザの起動に失敗しました: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Locale: playwright.String("ja-JP"),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("ブラウザコンテキストの作成に失敗しました: %w", err)
	}

	if cfg.BlockExternalRequests {
		if err := setupRequestBlocking(context); err != nil {
			context.Close()
			browser.Close()
			pw.Stop()
			return nil, fmt.Errorf("リソースブロックの設定に失敗しました: %w", err)
		}
	}

	return &pdfRenderer{
		pw:      pw,
		cfg:     cfg,
		browser: browser,
		context: context,
	}, nil
}

func setupRequestBlocking(context playwright.BrowserContext) error {
	return context.Route(externalRequest, func(route playwright.Route) {
		route.Abort()
	})
}

// RenderPDFは、HTMLを新しいページに読み込んでPDFに変換します。
// ctxがキャンセルされた場合はページを閉じて変換を中断します。
//
// args:
//
//	ctx: キャンセル用のコンテキスト
//	html: 通知書のHTML
//
// return:
//
//	[]byte: PDFのバイト列
//	error: 失敗時のエラー
func (r *pdfRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	page, err := r.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("ページの作成に失敗しました: %w", err)
	}
	defer page.Close()

	type result struct {
		pdf []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		pdf, err := r.print(page, html)
		done <- result{pdf: pdf, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("PDF変換が中断されました: %w", ctx.Err())
	case res := <-done:
		return res.pdf, res.err
	}
}

func (r *pdfRenderer) print(page playwright.Page, html string) ([]byte, error) {
	timeout := playwright.Float(float64(r.cfg.TimeoutSeconds * 1000))
	if err := page.SetContent(html, playwright.PageSetContentOptions{
		Timeout:   timeout,
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		return nil, fmt.Errorf("HTMLの読み込みに失敗しました: %w", err)
	}

	pdf, err := page.PDF(playwright.PagePdfOptions{
		Format:          playwright.String(r.cfg.PaperFormat),
		PrintBackground: playwright.Bool(true),
		Margin: &playwright.Margin{
			Top:    playwright.String(r.cfg.Margin),
			Right:  playwright.String(r.cfg.Margin),
			Bottom: playwright.String(r.cfg.Margin),
			Left:   playwright.String(r.cfg.Margin),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("PDFの出力に失敗しました: %w", err)
	}
	return pdf, nil
}

// Closeは、ブラウザとPlaywrightインスタンスを閉じます。
//
// args: なし
// return:
//
//	error: 失敗時のエラー
func (r *pdfRenderer) Close() error {
	if err := r.context.Close(); err != nil {
		return fmt.Errorf("ブラウザコンテキストのクローズに失敗しました: %w", err)
	}

	if err := r.browser.Close(); err != nil {
		return fmt.Errorf("ブラウザを閉じれませんでした: %w", err)
	}

	if err := r.pw.Stop(); err != nil {
		return fmt.Errorf("playwrightの停止に失敗しました: %w", err)
	}
	return nil
}
