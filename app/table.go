package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/umputun/yourtube/app/history"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// showHistory prints recorded jobs and queue items, newest first
func showHistory(ctx context.Context, w io.Writer, dbPath string, limit int) error {
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no history at %s: %w", dbPath, err)
	}
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("can't open history: %w", err)
	}
	defer store.Close()

	streams, err := store.Streams(ctx, limit)
	if err != nil {
		return err
	}
	items, err := store.QueueItems(ctx, limit)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Jobs (%d)\n%s\n\nQueue (%d)\n%s\n", len(streams), renderStreams(streams),
		len(items), renderQueueItems(items))
	return nil
}

func renderStreams(records []history.StreamRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		result := "incomplete"
		if r.Completed {
			result = "completed"
		}
		rows = append(rows, []string{r.JobID, r.Token, result, formatTime(r.StartedAt),
			formatDuration(r.EndedAt.Sub(r.StartedAt)), strconv.Itoa(r.Lines), strconv.Itoa(r.Reconnects),
			text.Trim(r.LastStatus, 50)})
	}
	return renderTable([]string{"Job", "Dir", "Result", "Started", "Duration", "Lines", "Reconnects", "Last Status"},
		rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight})
}

func renderQueueItems(records []history.QueueRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		title := r.Title
		if title == "" {
			title = r.URL
		}
		if r.Error != "" {
			title += " (" + r.Error + ")"
		}
		rows = append(rows, []string{r.QueueID, r.Status.String(), fmt.Sprintf("%.1f%%", r.Progress),
			text.Trim(title, 60), r.Quality, formatTime(r.FinishedAt)})
	}
	return renderTable([]string{"ID", "Status", "Progress", "Title", "Quality", "Finished"},
		rows, []columnAlignment{alignLeft, alignLeft, alignRight})
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.DateTime)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return d.Truncate(time.Second).String()
}
