package documento

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KromaEnergia/api-erp/internal/config"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

var ErrHTMLVazio = errors.New("HTML vazio")

// Renderer converte um documento HTML completo em PDF
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// A4 com margem de 12mm, em polegadas
const (
	larguraA4 = 210 / 25.4
	alturaA4  = 297 / 25.4
	margem    = 12 / 25.4
)

// ChromedpRenderer imprime o HTML num Chrome headless (local ou remoto)
type ChromedpRenderer struct {
	timeout     time.Duration
	log         *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

func NewChromedpRenderer(cfg config.PDFConfig, log *zap.Logger) *ChromedpRenderer {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	r := &ChromedpRenderer{timeout: timeout, log: log}

	if cfg.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return r
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

func (r *ChromedpRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrHTMLVazio
	}
	inicio := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx)
	defer browserCancel()
	// encerra a aba quando a requisição expira
	go func() {
		<-ctx.Done()
		browserCancel()
	}()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(larguraA4).
				WithPaperHeight(alturaA4).
				WithMarginTop(margem).
				WithMarginBottom(margem).
				WithMarginLeft(margem).
				WithMarginRight(margem).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("tempo esgotado ao gerar PDF após %v: %w", r.timeout, err)
		}
		return nil, fmt.Errorf("erro ao gerar PDF: %w", err)
	}
	if len(pdf) == 0 {
		return nil, errors.New("PDF gerado vazio")
	}
	r.log.Debug("pdf gerado", zap.Int("bytes", len(pdf)), zap.Duration("duracao", time.Since(inicio)))
	return pdf, nil
}

// Close encerra o navegador
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}
