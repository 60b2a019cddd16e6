// Package files groups file-related functionality into sub-packages.
//
//   - filesystem: the Gateway abstraction over file operations, with an OS
//     implementation and an in-memory one for tests
//
// # Usage
//
//	import "github.com/vvka-141/lfm/internal/files/filesystem"
//
//	gw := filesystem.NewOSGateway()
//	children, err := gw.ListChildren("/var/log")
package files
