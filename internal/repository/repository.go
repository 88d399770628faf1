package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import "errors"

// ErrNotFound is returned when the addressed row does not exist.
var ErrNotFound = errors.New("record not found")
