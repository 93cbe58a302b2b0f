package reminder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Notifier delivers reminders to the user.
type Notifier interface {
	RequestPermission(ctx context.Context) (bool, error)
	Notify(ctx context.Context, n Notification) error
}

// TerminalNotifier prints a styled banner. Permission is granted unless the
// notifier was built disabled.
type TerminalNotifier struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
	title   lipgloss.Style
	box     lipgloss.Style
}

func NewTerminalNotifier(w io.Writer, enabled bool) *TerminalNotifier {
	return &TerminalNotifier{
		w:       w,
		enabled: enabled,
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FABD2F")),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#83A598")).
			Padding(0, 1),
	}
}

func (t *TerminalNotifier) RequestPermission(context.Context) (bool, error) {
	return t.enabled, nil
}

func (t *TerminalNotifier) Notify(_ context.Context, n Notification) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	banner := t.box.Render(t.title.Render(n.Title) + "\n" + n.Body)
	if _, err := fmt.Fprintln(t.w, banner); err != nil {
		return fmt.Errorf("writing reminder: %w", err)
	}
	return nil
}

// LogNotifier records reminders in the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) RequestPermission(context.Context) (bool, error) {
	return true, nil
}

func (l *LogNotifier) Notify(ctx context.Context, n Notification) error {
	l.logger.InfoContext(ctx, "revision reminder", "tag", n.Tag, "body", n.Body)
	return nil
}

// FuncNotifier adapts a function to Notifier; permission is always granted.
type FuncNotifier func(ctx context.Context, n Notification) error

func (FuncNotifier) RequestPermission(context.Context) (bool, error) {
	return true, nil
}

func (f FuncNotifier) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}
