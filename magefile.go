//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "fanyi"

// Default target to run when none is specified
var Default = Build

// Build builds the fanyi binary
func Build() error {
	return sh.RunV("go", "build", "-o", binary, "./cmd/fanyi")
}

// Install installs fanyi into GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "./cmd/fanyi")
}

// Test runs all unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm(binary)
}
