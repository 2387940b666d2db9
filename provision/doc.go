// Package provision writes this node's identity into persistent storage and
// verifies it.
//
// A Writer runs once: it opens the diagnostic console, initializes a one-byte
// store, writes the node ID at offset 0, commits, reads it back and prints a
// verdict. The console lines are fixed so operators and scripts can match on
// them:
//
//	setting nodeId...
//	set nodeId = <id>
//	read nodeId: <value>
//	SUCCESS | *** FAIL ***
//
// After the verdict the Writer is idle for the rest of the process lifetime.
package provision
