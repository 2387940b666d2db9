// Package platform chooses concrete implementations and OS defaults.
//
// Store selection:
//   - file: infra/filestore, a single image file (default)
//   - sqlite: infra/sqlite, one row per byte offset
//   - memory: eeprom.Memory, lost at exit
//
// The serial console split lives in the console package (termios on linux,
// unsupported elsewhere).
package platform
