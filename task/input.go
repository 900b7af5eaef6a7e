package task

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/aexvir/binstall"
)

// ParsePackages splits a raw delimited input into trimmed package names.
// Whitespace and commas both act as delimiters, so ci variable values like
// "ripgrep, cargo-audit" and "ripgrep cargo-audit" parse the same way.
func ParsePackages(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
}

// validate is the first pipeline stage. An empty package list terminates the
// run immediately, before any filesystem or network side effect.
func (t *Task) validate(_ context.Context) error {
	pkgs := ParsePackages(t.cfg.Packages)
	if len(pkgs) == 0 {
		return binstall.NewStageError(binstall.ErrEmptyInput, "validate", nil)
	}

	t.packages = pkgs
	binstall.LogStep(fmt.Sprintf("installing %d packages: %s", len(pkgs), strings.Join(pkgs, ", ")))
	return nil
}
