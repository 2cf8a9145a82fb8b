//go:build mage

// Package main contains Mage build targets for flashgen developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir    = "bin"
	binName   = "flashgen"
	cmdPkg    = "./cmd/flashgen"
	lambdaPkg = "./cmd/lambda"
	// API Gateway custom runtimes expect the executable to be called bootstrap.
	lambdaBin = "bootstrap"
)

// Default target to run when none is specified.
var Default = All

// ldflags stamps the version into the CLI.
func ldflags() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("-s -w -X main.version=%s", version)
}

// All formats, vets, tests and builds.
func All() {
	mg.SerialDeps(Fmt, Vet, Test, Build)
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", ldflags(), "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Lambda cross-compiles the Lambda entrypoint for the provided.al2023 arm64 runtime.
func Lambda() error {
	dir := filepath.Join(binDir, "lambda")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	env := map[string]string{
		"GOOS":        "linux",
		"GOARCH":      "arm64",
		"CGO_ENABLED": "0",
	}
	out := filepath.Join(dir, lambdaBin)
	if err := sh.RunWithV(env, "go", "build", "-tags", "lambda.norpc", "-ldflags", ldflags(), "-o", out, lambdaPkg); err != nil {
		return fmt.Errorf("go build lambda: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Cover writes a coverage profile to coverage.out and prints the summary.
func Cover() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Fmt formats the source tree.
func Fmt() error {
	return sh.RunV("gofmt", "-s", "-w", "cmd", "internal", "magefiles")
}

// Clean removes build output.
func Clean() error {
	for _, path := range []string{binDir, "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}
