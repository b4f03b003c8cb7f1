// Package terminal provides direct ANSI terminal control for cell-at-a-time painting.
//
// Features:
//   - True color (24-bit) output with xterm-256 fallback
//   - Immediate cell writes (paint/erase) through a buffered writer, flushed once per frame
//   - Raw stdin input parsing with escape sequence swallowing
//   - Clean terminal restoration on exit and on panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// A tcell-backed Terminal is provided for terminals where raw ANSI is not an option.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
