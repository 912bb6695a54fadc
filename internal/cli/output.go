package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/story-labs/launcher/internal/manager"
	"github.com/story-labs/launcher/internal/tools"
	"github.com/story-labs/launcher/internal/updater"
)

var (
	cGreen  = lipgloss.Color("42")
	cYellow = lipgloss.Color("220")
	cRed    = lipgloss.Color("196")
	cGray   = lipgloss.Color("245")

	styleName    = lipgloss.NewStyle().Bold(true)
	styleOK      = lipgloss.NewStyle().Foreground(cGreen)
	styleUpdate  = lipgloss.NewStyle().Foreground(cYellow).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(cRed).Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(cGray)
	styleNameCol = styleName.Width(16)
)

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// formatStatus renders one status line, e.g.
// "resolve-sync    2.3.0 -> 2.4.0 (minor update available)".
func formatStatus(key string, st manager.ToolStatus) string {
	var b strings.Builder
	b.WriteString(styleNameCol.Render(key))

	switch {
	case st.HasUpdate:
		b.WriteString(*st.InstalledVersion + " -> " + *st.LatestVersion + " ")
		kind := "update available"
		if st.UpdateKind != updater.UpdateNone {
			kind = string(st.UpdateKind) + " " + kind
		}
		b.WriteString(styleUpdate.Render("(" + kind + ")"))
	case st.Installed:
		b.WriteString(*st.InstalledVersion + " ")
		if st.LatestVersion != nil {
			b.WriteString(styleOK.Render("(up to date)"))
		}
	default:
		b.WriteString(styleMuted.Render("not installed"))
		if st.LatestVersion != nil {
			b.WriteString(styleMuted.Render(" (latest " + *st.LatestVersion + ")"))
		}
	}

	if st.Error != nil {
		b.WriteString(" " + styleError.Render("check failed: "+*st.Error))
	}
	return b.String()
}

func formatResult(res manager.ActionResult) string {
	if res.Success {
		return styleOK.Render(res.Message)
	}
	return styleError.Render(res.Message)
}

func formatTool(d tools.Descriptor) string {
	return styleNameCol.Render(d.Key) + d.DisplayName + styleMuted.Render(" ("+d.Repository+")")
}

// progressPrinter renders download progress as a percentage on one line.
func progressPrinter(w io.Writer) updater.ProgressFunc {
	return func(done, total int64) {
		if total <= 0 {
			fmt.Fprintf(w, "\rDownloading... %d KB", done/1024)
			return
		}
		percent := done * 100 / total
		fmt.Fprintf(w, "\rDownloading... %d%%", percent)
		if done >= total {
			fmt.Fprintln(w)
		}
	}
}
