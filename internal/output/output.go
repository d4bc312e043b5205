// Package output renders scan results and status messages for the
// terminal, styled with lipgloss.
package output

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

var (
	dirStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	fileStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)

	verboseMode bool
)

// SetVerbose enables or disables verbose output. The CLI calls this when
// the --verbose flag is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// Error prints an error message in red.
func Error(msg string) {
	fmt.Println(errorStyle.Render("error: " + msg))
}

// Verbose prints a message only when verbose mode is enabled.
func Verbose(msg string) {
	if verboseMode {
		fmt.Println(summaryStyle.Render(msg))
	}
}

// Scan prints a directory→files mapping, directories sorted by path,
// files indented beneath each directory by base name.
func Scan(result map[string][]string) {
	dirs := make([]string, 0, len(result))
	for dir := range result {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		fmt.Println(dirStyle.Render(dir))
		for _, file := range result[dir] {
			fmt.Println(fileStyle.Render("  " + filepath.Base(file)))
		}
	}
}

// Summary prints directory, file, and skip counts in gray.
func Summary(dirs, files, skipped int) {
	msg := fmt.Sprintf("%d directories, %d files", dirs, files)
	if skipped > 0 {
		msg += fmt.Sprintf(", %d unreadable (skipped)", skipped)
	}
	fmt.Println(summaryStyle.Render(msg))
}
