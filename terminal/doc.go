// Package terminal provides direct ANSI terminal access for the painter:
// raw-mode lifecycle, bounded-timeout input reads, an incremental escape
// sequence parser, and the CSI geometry queries used at startup.
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI
// sequences. Target environments: Linux, macOS, BSDs with xterm-compatible
// terminals that implement SGR mouse reporting.
package terminal
