//go:build !unix

package filestore

import "os"

// Advisory locking is only implemented on unix.

func lockFile(*os.File) error   { return nil }
func unlockFile(*os.File) error { return nil }
