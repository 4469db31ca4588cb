package main

import (
	"fmt"
	"strings"

	"cpplint/internal/diagfmt"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "", "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// wantsUI decides whether the progress view is shown. auto needs a
// terminal on both streams and a line-oriented output format.
func (f *lintFlags) wantsUI(a *app, format diagfmt.Format) (bool, error) {
	mode, err := readUIMode(f.ui)
	if err != nil {
		return false, err
	}
	switch mode {
	case uiModeOn:
		return true, nil
	case uiModeOff:
		return false, nil
	default:
		return !format.Collected() && isTerminal(a.stdout) && isTerminal(a.stderr), nil
	}
}
