package render

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-builder/internal/shared/apperr"
)

type fakeSession struct {
	out      []byte
	err      error
	block    bool
	closeErr error
	closed   int
}

func (s *fakeSession) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.out, s.err
}

func (s *fakeSession) Close() error {
	s.closed++
	return s.closeErr
}

type fakeLauncher struct {
	session *fakeSession
	err     error
}

func (l *fakeLauncher) Launch(ctx context.Context) (Session, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.session, nil
}

func TestRenderSuccessClosesSession(t *testing.T) {
	session := &fakeSession{out: []byte("%PDF-1.4 body")}
	r := NewRenderer(&fakeLauncher{session: session}, time.Second)

	out, err := r.Render(context.Background(), "<html></html>")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(out) != "%PDF-1.4 body" {
		t.Fatalf("unexpected output %q", out)
	}
	if session.closed != 1 {
		t.Fatalf("expected session closed once, got %d", session.closed)
	}
}

func TestRenderReleasesSessionOnEveryFailure(t *testing.T) {
	tests := []struct {
		name    string
		session *fakeSession
	}{
		{"print error", &fakeSession{err: errors.New("navigate failed")}},
		{"empty output", &fakeSession{out: nil}},
		{"not a pdf", &fakeSession{out: []byte("<html>")}},
		{"close error", &fakeSession{out: []byte("%PDF-1.4"), closeErr: errors.New("zombie")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(&fakeLauncher{session: tt.session}, time.Second)
			out, err := r.Render(context.Background(), "<html></html>")
			if !errors.Is(err, apperr.ErrRenderFailure) {
				t.Fatalf("expected render failure, got %v", err)
			}
			if out != nil {
				t.Fatalf("expected no partial output, got %d bytes", len(out))
			}
			if tt.session.closed != 1 {
				t.Fatalf("expected session closed once, got %d", tt.session.closed)
			}
		})
	}
}

func TestRenderLaunchFailure(t *testing.T) {
	r := NewRenderer(&fakeLauncher{err: errors.New("no chrome")}, time.Second)
	if _, err := r.Render(context.Background(), "<html></html>"); !errors.Is(err, apperr.ErrRenderFailure) {
		t.Fatalf("expected render failure, got %v", err)
	}
}

func TestRenderTimeoutReleasesSession(t *testing.T) {
	session := &fakeSession{block: true}
	r := NewRenderer(&fakeLauncher{session: session}, 20*time.Millisecond)

	start := time.Now()
	_, err := r.Render(context.Background(), "<html></html>")
	if !errors.Is(err, apperr.ErrRenderFailure) {
		t.Fatalf("expected render failure, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("render did not honour timeout")
	}
	if session.closed != 1 {
		t.Fatalf("expected session closed after timeout")
	}
}

func TestRenderCallerCancellation(t *testing.T) {
	session := &fakeSession{block: true}
	r := NewRenderer(&fakeLauncher{session: session}, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	if _, err := r.Render(ctx, "<html></html>"); !errors.Is(err, apperr.ErrRenderFailure) {
		t.Fatalf("expected render failure, got %v", err)
	}
	if session.closed != 1 {
		t.Fatalf("expected session closed after cancellation")
	}
}

func TestNilRenderer(t *testing.T) {
	var r *Renderer
	if _, err := r.Render(context.Background(), ""); !errors.Is(err, apperr.ErrRenderFailure) {
		t.Fatalf("expected render failure, got %v", err)
	}
}
