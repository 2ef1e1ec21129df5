// Package output provides styled terminal output helpers (success,
// error, warning, progression formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ripemerchant/repsync/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	rankStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)

	dispositionStyles = map[models.Disposition]lipgloss.Style{
		models.DispositionContact:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.DispositionCallback:      lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		models.DispositionVoicemail:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.DispositionNoAnswer:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		models.DispositionNotInterested: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		models.DispositionWrongNumber:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		models.DispositionBusy:          lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		models.DispositionDNC:           lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
	}
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// Subtle prints a de-emphasized message
func Subtle(format string, args ...interface{}) {
	fmt.Println(subtleStyle.Render(fmt.Sprintf(format, args...)))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Title renders a bold section heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Rank renders a rank code with emphasis.
func Rank(code string) string {
	return rankStyle.Render(code)
}

// RenderDisposition colors a disposition code.
func RenderDisposition(d models.Disposition) string {
	if style, ok := dispositionStyles[d]; ok {
		return style.Render(string(d))
	}
	return string(d)
}

// ProgressBar renders a simple XP bar of the given width.
func ProgressBar(current, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := current * width / total
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
