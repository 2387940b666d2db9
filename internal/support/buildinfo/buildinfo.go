// Package buildinfo holds values stamped in at link time.
//
//	go build -ldflags "-X setnodeid/internal/support/buildinfo.NodeID=7 \
//	  -X setnodeid/internal/support/buildinfo.Version=v1.2.0" ./cmd/setnodeid
package buildinfo

var (
	// Version of the binary.
	Version = "dev"

	// NodeID is the identity this build writes. Each deployed unit gets its
	// own build instead of a source edit.
	NodeID = "1"
)
