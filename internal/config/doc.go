// Package config loads the optional install configuration.
//
// The installer works without any configuration. A project can adjust how
// gitman is built and where it lands by committing .gitman/install.lua:
//
//	install = {
//	  build = {
//	    tool = "go",
//	    flags = { "-trimpath" },
//	    package = "./cmd/gitman",
//	  },
//	  destination = platform.is_windows and "D:\\Tools\\bin" or nil,
//	}
//
// The file runs in a sandboxed gopher-lua VM: os, io, module loading and
// the debug library are removed. A read-only platform table describing the
// host is available to branch on.
package config
