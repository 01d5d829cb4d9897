package engine

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"bord/internal/model"
)

// LineKind tells the presentation layer what a rendered line is.
type LineKind int

const (
	LineTitle LineKind = iota
	LineRule
	LineBlank
	LineBoardHeader
	LineTask
	LineSeparator
	LineSummary
)

// Line is one line of rendered output. Task is set for LineTask only.
type Line struct {
	Kind LineKind
	Text string
	Task *model.Task
}

// Report is the output of one render pass.
type Report struct {
	Lines []Line
}

func (r Report) String() string {
	var sb strings.Builder
	for _, l := range r.Lines {
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// PendingTasks returns the open tasks of a board in id order.
func PendingTasks(board *model.Board) []model.Task {
	return filterTasks(board, false)
}

// CompletedTasks returns the finished tasks of a board in id order.
func CompletedTasks(board *model.Board) []model.Task {
	return filterTasks(board, true)
}

func filterTasks(board *model.Board, completed bool) []model.Task {
	tasks := []model.Task{}
	for _, t := range board.Tasks {
		if t.IsCompleted == completed {
			tasks = append(tasks, t)
		}
	}
	slices.SortFunc(tasks, func(a, b model.Task) int { return cmp.Compare(a.ID, b.ID) })
	return tasks
}

// PriorityGlyph is always two characters wide.
func PriorityGlyph(task *model.Task) string {
	switch {
	case task.Priority >= model.PriorityHigh:
		return "!!"
	case task.Priority == model.PriorityMedium:
		return "! "
	default:
		return "  "
	}
}

func CompletionGlyph(task *model.Task) string {
	if task.IsCompleted {
		return "[X]"
	}
	return "[ ]"
}

// IDWidth is the number of decimal digits in maxID, at least 1.
func IDWidth(maxID uint) int {
	width := 1
	for maxID >= 10 {
		maxID /= 10
		width++
	}
	return width
}

// RenderTask formats a task as "<id> <priority> <completion> <description>"
// with the id zero-padded to idWidth digits.
func RenderTask(task *model.Task, idWidth int) string {
	return fmt.Sprintf("%0*d %s %s %s",
		idWidth, task.ID, PriorityGlyph(task), CompletionGlyph(task), task.Description)
}

// RenderBoard renders one board: its header, the pending tasks, the
// completed tasks behind a separator when there are any, and a summary.
func RenderBoard(board *model.Board, idWidth int) []Line {
	pending := PendingTasks(board)
	completed := CompletedTasks(board)

	lines := []Line{
		{Kind: LineBlank},
		{Kind: LineBoardHeader, Text: "@" + board.Name},
	}
	for i := range pending {
		lines = append(lines, Line{Kind: LineTask, Text: RenderTask(&pending[i], idWidth), Task: &pending[i]})
	}
	if len(completed) > 0 {
		lines = append(lines, Line{Kind: LineSeparator, Text: "---"})
		for i := range completed {
			lines = append(lines, Line{Kind: LineTask, Text: RenderTask(&completed[i], idWidth), Task: &completed[i]})
		}
	}
	lines = append(lines, Line{
		Kind: LineSummary,
		Text: fmt.Sprintf("Completed: %d | Pending: %d | Total: %d", len(completed), len(pending), len(board.Tasks)),
	})
	return lines
}

// RenderAll renders every board in id order. The id width is computed once
// from the highest task id in the store so that all lines align.
func (e *Engine) RenderAll(ctx context.Context) (Report, error) {
	boards, err := e.store.ListBoards(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list boards: %w", err)
	}
	maxID, err := e.store.MaxTaskID(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("highest task id: %w", err)
	}
	width := IDWidth(maxID)

	report := Report{Lines: []Line{
		{Kind: LineTitle, Text: "Bord"},
		{Kind: LineRule, Text: "---"},
	}}
	for i := range boards {
		report.Lines = append(report.Lines, RenderBoard(&boards[i], width)...)
	}
	return report, nil
}
