package cmd

import (
	"context"
	"sync"

	"github.com/Altair29/J-GLOW-sub002/internal/config"
	"github.com/Altair29/J-GLOW-sub002/internal/infra"
)

// lazyRendererは最初のPDF変換の時点でブラウザを起動します。
// PDFを生成しない操作スクリプトではブラウザを起動しません。
type lazyRenderer struct {
	cfg      *config.RendererConfig
	once     sync.Once
	renderer infra.PDFRenderer
	err      error
}

func newLazyRenderer(cfg *config.RendererConfig) *lazyRenderer {
	return &lazyRenderer{cfg: cfg}
}

func (l *lazyRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	l.once.Do(func() {
		l.renderer, l.err = infra.NewPDFRenderer(l.cfg)
	})
	if l.err != nil {
		return nil, l.err
	}
	return l.renderer.RenderPDF(ctx, html)
}

func (l *lazyRenderer) Close() error {
	if l.renderer == nil {
		return nil
	}
	return l.renderer.Close()
}
