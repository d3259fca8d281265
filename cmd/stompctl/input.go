package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ergochat/readline"
	"golang.org/x/term"
)

// lineReader abstracts interactive and piped stdin behind one blocking
// read-a-line call.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

func newLineReader(cfg clientConfig) lineReader {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return &scannerReader{scanner: bufio.NewScanner(os.Stdin)}
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		HistoryFile:            cfg.HistoryFile,
		HistoryLimit:           cfg.HistoryLimit,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		// Degrade to plain scanning when the terminal lacks support.
		return &scannerReader{scanner: bufio.NewScanner(os.Stdin)}
	}
	return &readlineReader{rl: rl}
}

type readlineReader struct {
	rl *readline.Instance
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		return "", err
	}
	if trimmed := strings.TrimSpace(line); trimmed != "" {
		r.rl.SaveToHistory(trimmed)
	}
	return line, nil
}

func (r *readlineReader) Close() error {
	return r.rl.Close()
}

type scannerReader struct {
	scanner *bufio.Scanner
}

func (r *scannerReader) ReadLine(prompt string) (string, error) {
	fmt.Print(prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *scannerReader) Close() error { return nil }
