package app

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"

	"ked/internal/buffer"
	"ked/internal/config"
	"ked/internal/editor"
	"ked/internal/logger"
	"ked/internal/terminal"
)

// App is the top-level runtime for ked.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

// Run owns the terminal from the raw-mode switch to the restore. Everything
// in between happens on one locked goroutine: paint a frame, read a key,
// dispatch, repeat.
func (a *App) Run() (err error) {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The editor still runs if the log file cannot be opened.
	_ = logger.Init(cfg.Log.File, cfg.Log.Debug)
	defer logger.Close()

	in, out := os.Stdin, os.Stdout
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdin is not a terminal")
	}

	raw, err := terminal.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := raw.Restore(); rerr != nil && err == nil {
			err = fmt.Errorf("restore terminal: %w", rerr)
		}
	}()

	rows, cols, err := terminal.Size(in, out)
	if err != nil {
		return fmt.Errorf("window size: %w", err)
	}
	logger.Info("session start", "rows", rows, "cols", cols, "args", a.args)

	buf := buffer.New(cfg.Editor.TabWidth)
	if len(a.args) > 0 {
		if err := buf.Load(a.args[0]); err != nil {
			logger.Error("open failed", "path", a.args[0], "error", err)
			return fmt.Errorf("open %s: %w", a.args[0], err)
		}
		logger.Info("opened", "path", a.args[0], "lines", buf.LineCount())
	}

	ed := editor.New(buf, rows, cols)
	ed.SetStatusMessage("Help: Ctrl-s = save | Ctrl-q = quit")

	keys := terminal.Input(fd)
	for {
		if _, err := out.WriteString(ed.Frame()); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
		key, err := keys.ReadKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		if ed.HandleKey(key) {
			break
		}
	}

	if _, err := out.WriteString("\x1b[2J\x1b[H"); err != nil {
		return fmt.Errorf("clear screen: %w", err)
	}
	logger.Info("session end")
	return nil
}
