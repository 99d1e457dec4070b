package editors

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/dori/kanri/internal/ui/theme"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by preset and wrap width. A fixed style avoids
	// the terminal background query of WithAutoStyle.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	t := theme.Current.Theme
	key := fmt.Sprintf("%s:%d", t.Name, width)

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()

	r := mdRenderers[key]
	if r == nil {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStyles(markdownStyle(t)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[key] = r
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// markdownStyle is the dark glamour style recolored with the theme
func markdownStyle(t theme.Theme) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	zero := uint(0)
	cfg.Document.Margin = &zero

	fg := string(t.Foreground)
	primary := string(t.Primary)
	highlight := string(t.Highlight)

	cfg.Text.Color = &fg
	cfg.Heading.Color = &primary
	cfg.H1.Color = &primary
	cfg.H1.BackgroundColor = nil
	cfg.Link.Color = &highlight
	cfg.LinkText.Color = &highlight
	cfg.Strong.Color = nil
	cfg.Emph.Color = nil
	return cfg
}
