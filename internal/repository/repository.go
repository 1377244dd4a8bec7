package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
// Absent rows are reported as sql.ErrNoRows so services can translate them
// into their own not-found errors.
