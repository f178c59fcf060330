package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/tabulon/internal/config"
	"github.com/xonecas/tabulon/internal/convert"
	"github.com/xonecas/tabulon/internal/doc"
	"github.com/xonecas/tabulon/internal/store"
	"github.com/xonecas/tabulon/internal/tui"
)

// sampleMarkup seeds a brand-new document so there is something to
// resize on first launch.
const sampleMarkup = `<p>Quarterly numbers</p>
<table><tbody>
<tr><td>Region</td><td>Q1</td><td>Q2</td><td>Q3</td></tr>
<tr><td>North</td><td>112</td><td>98</td><td>140</td></tr>
<tr><td>South</td><td>87</td><td>101</td><td>95</td></tr>
</tbody></table>
`

func main() {
	configPath := flag.String("config", "", "path to config file (TOML)")
	docPath := flag.String("doc", "scratch", "document name to open")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tabulon: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tabulon: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	storePath, err := cfg.Store.PathOrDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tabulon: %v\n", err)
		os.Exit(1)
	}
	st, err := store.Open(storePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tabulon: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	document, err := loadDocument(st, *docPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tabulon: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.New(cfg, document, st, *docPath),
		tea.WithFilter(tui.MouseEventFilter),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tabulon: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging routes the global logger to a file. The terminal belongs
// to the TUI, so nothing may log to stderr after this point.
func setupLogging(cfg *config.Config) (func(), error) {
	level, err := zerolog.ParseLevel(cfg.Log.LevelOrDefault())
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	path, err := cfg.Log.PathOrDefault()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { f.Close() }, nil
}

// loadDocument reads a stored document, seeding a sample on first open.
func loadDocument(st *store.Store, path string) (*doc.Document, error) {
	markup, ok := st.LoadDocument(path)
	if !ok {
		markup = sampleMarkup
		if err := st.SaveDocument(path, markup); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("could not seed sample document")
		}
	}
	document, err := convert.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return document, nil
}
