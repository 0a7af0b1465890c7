// Package file provides the TOML configuration store.
//
// The file lives at ~/.extractview/config.toml unless another directory
// is given. Keys are read and written in dot notation; on disk they are
// nested tables:
//
//	[outline]
//	expanded = true
//	collapsed = ["identifiers"]
package file
