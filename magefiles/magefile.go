//go:build mage

// Package main provides build targets for the djinn project using Mage.
//
// Usage:
//
//	mage build      Compile the djinn binary to bin/
//	mage test       Run all tests
//	mage cover      Run tests with coverage and print the summary
//	mage lint       Run golangci-lint
//	mage clean      Remove build artifacts
//	mage install    Install djinn to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName   = "djinn"
	binaryDir    = "bin"
	cmdDir       = "./cmd/djinn"
	coverProfile = "coverage.out"
)

// Build compiles the djinn binary to bin/ with version info baked in.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	ldflags := fmt.Sprintf(
		"-X github.com/example/djinn/internal/version.Commit=%s -X github.com/example/djinn/internal/version.BuildTime=%s",
		commit(), time.Now().UTC().Format(time.RFC3339),
	)
	return sh.RunV("go", "build", "-v", "-ldflags", ldflags, "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Cover runs all tests with coverage and prints the per-function summary.
func Cover() error {
	if err := sh.RunV("go", "test", "-coverprofile", coverProfile, "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func", coverProfile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	if err := os.Remove(coverProfile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// commit returns the short git commit hash, or "unknown" outside a checkout.
func commit() string {
	out, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		return "unknown"
	}
	return out
}
