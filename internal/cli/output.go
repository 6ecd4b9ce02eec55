package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bunchhieng/bark/internal/model"
	"github.com/mattn/go-runewidth"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

const (
	maxURLLen   = 50
	maxTitleLen = 40
	maxNotesLen = 30
)

// PrintSuccess writes a green confirmation line.
func PrintSuccess(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s%s%s\n", colorGreen, msg, colorReset)
}

// PrintError writes a red error line.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%sError:%s %v\n", colorRed, colorReset, err)
}

// PrintBookmarksTable renders bookmarks as a boxed table.
func PrintBookmarksTable(w io.Writer, bookmarks []*model.Bookmark) {
	if len(bookmarks) == 0 {
		fmt.Fprintln(w, "No bookmarks found.")
		return
	}

	colIDLen := len("ID")
	colTitleLen := len("TITLE")
	colURLLen := len("URL")
	colNotesLen := len("NOTES")
	colAddedLen := len("ADDED")

	for _, b := range bookmarks {
		if idLen := len(strconv.FormatInt(b.ID, 10)); idLen > colIDLen {
			colIDLen = idLen
		}
		if l := truncateLen(runewidth.StringWidth(b.Title), maxTitleLen); l > colTitleLen {
			colTitleLen = l
		}
		if l := truncateLen(runewidth.StringWidth(b.URL), maxURLLen); l > colURLLen {
			colURLLen = l
		}
		if l := truncateLen(runewidth.StringWidth(b.Notes), maxNotesLen); l > colNotesLen {
			colNotesLen = l
		}
		if l := len(formatTime(b.DateAdded)); l > colAddedLen {
			colAddedLen = l
		}
	}

	// one space of padding on each side
	colIDLen += 2
	colTitleLen += 2
	colURLLen += 2
	colNotesLen += 2
	colAddedLen += 2

	totalWidth := colIDLen + colTitleLen + colURLLen + colNotesLen + colAddedLen + 4

	header := fmt.Sprintf("%s│%s %s%s%s │ %s%s%s │ %s%s%s │ %s%s%s │ %s%s%s %s│%s",
		colorDim, colorReset,
		colorBold, cell("ID", colIDLen-2), colorReset,
		colorBold, cell("TITLE", colTitleLen-2), colorReset,
		colorBold, cell("URL", colURLLen-2), colorReset,
		colorBold, cell("NOTES", colNotesLen-2), colorReset,
		colorBold, cell("ADDED", colAddedLen-2), colorReset,
		colorDim, colorReset)

	separator := fmt.Sprintf("%s├%s┼%s┼%s┼%s┼%s┤%s",
		colorDim,
		strings.Repeat("─", colIDLen),
		strings.Repeat("─", colTitleLen),
		strings.Repeat("─", colURLLen),
		strings.Repeat("─", colNotesLen),
		strings.Repeat("─", colAddedLen),
		colorReset)

	fmt.Fprintf(w, "%s┌%s┐%s\n", colorDim, strings.Repeat("─", totalWidth), colorReset)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, separator)

	for _, b := range bookmarks {
		row := fmt.Sprintf("%s│%s %s%s%s │ %s │ %s%s%s │ %s%s%s │ %s%s%s %s│%s",
			colorDim, colorReset,
			colorBold+colorCyan, cell(strconv.FormatInt(b.ID, 10), colIDLen-2), colorReset,
			cell(b.Title, colTitleLen-2),
			colorCyan, cell(b.URL, colURLLen-2), colorReset,
			colorYellow, cell(b.Notes, colNotesLen-2), colorReset,
			colorDim, cell(formatTime(b.DateAdded), colAddedLen-2), colorReset,
			colorDim, colorReset)
		fmt.Fprintln(w, row)
	}

	fmt.Fprintf(w, "%s└%s┘%s\n", colorDim, strings.Repeat("─", totalWidth), colorReset)
}

func truncateLen(n, max int) int {
	if n > max {
		return max
	}
	return n
}

// cell cuts s to width terminal columns and pads it to exactly width.
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "..."), width)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04 UTC")
}

// ParseID validates a bookmark ID argument.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID: %s", s)
	}
	return id, nil
}
