// Package vcd encodes captured samples as a Value Change Dump document.
//
// Ownership boundary:
// - named bit-group value specs
// - time scale derivation from the capture clock
// - change-compressed waveform emission
package vcd
