// Package test contains helper functions shared by the tests of the other
// packages, plus a generator for minimal ELF executables so that tests can
// exercise the real loading path without binary fixtures on disk.
package test
