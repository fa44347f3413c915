package config

// Lua schema names.
const (
	luaGlobalInstall = "install"
	luaFieldBuild    = "build"
	luaFieldTool     = "tool"
	luaFieldFlags    = "flags"
	luaFieldPackage  = "package"
	luaFieldDest     = "destination"
)

// Location of the project configuration, relative to the working directory.
const (
	DirName  = ".gitman"
	FileName = "install.lua"
)

// MaxConfigSize caps the size of an install.lua file.
const MaxConfigSize = 64 * 1024

// DefaultBuildTool is the executable invoked to build gitman.
const DefaultBuildTool = "go"

// DefaultBuildPackage is the main package of the gitman command, relative to
// the repository root.
const DefaultBuildPackage = "./cmd/gitman"
