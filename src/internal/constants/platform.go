// Package constants defines common constants used across phptune
package constants

// Operating systems
const (
	OSWindows = "windows"
	OSDarwin  = "darwin"
	OSLinux   = "linux"
)

// CPU architectures
const (
	ArchAMD64 = "amd64"
	ArchARM64 = "arm64"
	Arch386   = "386"
)

// User responses
const (
	ResponseYes = "yes"
	ResponseY   = "y"
	ResponseNo  = "no"
	ResponseN   = "n"
)

// File extensions
const (
	ExtExe   = ".exe"
	ExtDLL   = ".dll"
	ExtSO    = ".so"
	ExtDylib = ".dylib"
	ExtIni   = ".ini"
)

// PHP executable names
const (
	PHPBinary    = "php"
	PHPBinaryWin = "php.exe"
)
