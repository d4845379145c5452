// Package sump owns the SUMP wire contract and capture orchestration.
//
// Ownership boundary:
// - command frame encoding
// - extended metadata stream parsing
// - device identification and capability merge
// - capture parameter derivation, arm sequence, sample retrieval
package sump
