//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

func bin() string { return filepath.Join(binDir, binName) }

// Digest builds the CLI and writes today's report from every enabled source.
func Digest() error {
	mg.Deps(Init, Build)
	return sh.RunV(bin(), "fetch", "--all")
}

// Quick writes today's report without translated summaries.
func Quick() error {
	mg.Deps(Init, Build)
	return sh.RunV(bin(), "fetch", "--all", "--no-summary")
}

// Diagnose prints section counts, tag distribution and duplicate titles for
// today's recorded run.
func Diagnose() error {
	mg.Deps(Build)
	for _, sub := range []string{"sections", "tags", "dupes"} {
		fmt.Printf("== %s ==\n", sub)
		if err := sh.RunV(bin(), "history", sub); err != nil {
			return err
		}
	}
	return nil
}
