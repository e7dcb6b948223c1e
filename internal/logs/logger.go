package logs

import (
	"io"
	"log"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	Logger  = log.New(io.Discard, "", 0)
	logFile *os.File
	mu      sync.Mutex
)

// Initialize points the logger at path. An empty path keeps logging
// disabled. The terminal belongs to the TUI, so logs only ever go to a file.
func Initialize(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		return nil
	}

	f, err := tea.LogToFile(path, "dialcal")
	if err != nil {
		return err
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	Logger = log.New(f, "[dialcal] ", log.LstdFlags|log.Lshortfile)
	return nil
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		Logger = log.New(io.Discard, "", 0)
		return err
	}
	return nil
}
