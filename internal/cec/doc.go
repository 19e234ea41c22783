// Package cec decodes HDMI Consumer Electronics Control frames.
//
// Ownership boundary:
// - header split into initiator/destination logical addresses
// - opcode lookup and parameter layout resolution
// - per-opcode parameter field decoding and summary fragments
// - frame diagnostics (poll, feature abort, trailing bytes)
//
// Decoding is pure: lookup tables are read-only package data and a decode call
// keeps no state between frames.
package cec
