package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"resume-builder/internal/shared/apperr"
)

const defaultRenderTimeout = 30 * time.Second

// Session is one isolated rendering engine instance.
type Session interface {
	// PrintPDF loads html into a fresh page, waits for the DOM to be parsed
	// and prints it to an A4 PDF with backgrounds.
	PrintPDF(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// Launcher starts rendering sessions.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}

// Renderer turns a filled HTML document into PDF bytes. Each call runs in
// its own session, which is closed on every exit path.
type Renderer struct {
	Launcher Launcher
	Timeout  time.Duration
}

func NewRenderer(launcher Launcher, timeout time.Duration) *Renderer {
	return &Renderer{Launcher: launcher, Timeout: timeout}
}

// Render converts html to PDF. Failures are apperr.ErrRenderFailure and never
// carry partial output.
func (r *Renderer) Render(ctx context.Context, html string) (out []byte, err error) {
	if r == nil || r.Launcher == nil {
		return nil, apperr.Wrap(apperr.ErrRenderFailure, "Failed to generate PDF.", errors.New("renderer not configured"))
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultRenderTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	session, err := r.Launcher.Launch(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrRenderFailure, "Failed to generate PDF.", fmt.Errorf("launch: %w", err))
	}
	defer func() {
		if cerr := session.Close(); cerr != nil && err == nil {
			out = nil
			err = apperr.Wrap(apperr.ErrRenderFailure, "Failed to generate PDF.", fmt.Errorf("close: %w", cerr))
		}
	}()

	pdf, err := session.PrintPDF(ctx, html)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrRenderFailure, "Failed to generate PDF.", fmt.Errorf("print: %w", err))
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, apperr.Wrap(apperr.ErrRenderFailure, "Failed to generate PDF.", errors.New("engine returned no document"))
	}
	return pdf, nil
}
