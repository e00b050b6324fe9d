package sink

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/umputun/yourtube/app/enums"
	"github.com/umputun/yourtube/app/queue"
)

// Console prints status changes, log lines and queue updates to a terminal
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	colorize bool
	quiet    bool
}

// ConsoleParams configures Console
type ConsoleParams struct {
	Out     io.Writer // os.Stdout by default
	Quiet   bool      // skip job log lines, show status changes only
	NoColor bool      // disable colors even on a terminal
}

// NewConsole makes a Console, colors are enabled for terminals only
func NewConsole(p ConsoleParams) *Console {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out, quiet: p.Quiet, colorize: !p.NoColor && shouldColorize(out)}
}

// OnStatusChange prints the status with a kind marker
func (c *Console) OnStatusChange(kind enums.StatusKind, msg string) {
	c.print(statusColors(kind), "[%s] %s", kind, msg)
}

// OnLogLine prints a raw job log line, blank heartbeat lines are skipped
func (c *Console) OnLogLine(line string) {
	if c.quiet || strings.TrimSpace(line) == "" {
		return
	}
	c.print(nil, "  %s", line)
}

// OnError prints the error message
func (c *Console) OnError(msg string) {
	c.print(text.Colors{text.FgRed, text.Bold}, "error: %s", msg)
}

// OnQueueItemUpdate prints one line for the updated item
func (c *Console) OnQueueItemUpdate(item queue.Item) {
	c.print(queueColors(item.Status), "%s %-10s %5.1f%% %s", item.ID, item.Status, item.Progress, displayTitle(item))
}

// OnQueueSnapshot prints the whole collection as a table
func (c *Console) OnQueueSnapshot(items []queue.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, RenderQueue(items))
}

func (c *Console) print(colors text.Colors, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if c.colorize && len(colors) > 0 {
		line = colors.Sprint(line)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, line)
}

// RenderQueue renders queue items as a table, newest first as given
func RenderQueue(items []queue.Item) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Status", "Progress", "Title", "Quality", "Created"})
	for _, item := range items {
		created := ""
		if !item.CreatedAt.IsZero() {
			created = item.CreatedAt.Local().Format(time.DateTime)
		}
		title := displayTitle(item)
		if item.Error != "" {
			title += " (" + item.Error + ")"
		}
		tw.AppendRow(table.Row{item.ID, item.Status.String(), fmt.Sprintf("%.1f%%", item.Progress),
			text.Trim(title, 60), item.Quality, created})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft}})
	return tw.Render()
}

func displayTitle(item queue.Item) string {
	if item.Title != "" {
		return item.Title
	}
	return item.URL
}

func statusColors(kind enums.StatusKind) text.Colors {
	switch kind {
	case enums.StatusKindConnected:
		return text.Colors{text.FgBlue}
	case enums.StatusKindConnecting:
		return text.Colors{text.FgYellow}
	case enums.StatusKindLost, enums.StatusKindError:
		return text.Colors{text.FgRed}
	case enums.StatusKindComplete:
		return text.Colors{text.FgGreen, text.Bold}
	default:
		return nil
	}
}

func queueColors(st enums.QueueStatus) text.Colors {
	switch st {
	case enums.QueueStatusCompleted:
		return text.Colors{text.FgGreen}
	case enums.QueueStatusFailed:
		return text.Colors{text.FgRed}
	case enums.QueueStatusProcessing:
		return text.Colors{text.FgCyan}
	default:
		return nil
	}
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
