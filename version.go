package harbor

import "fmt"

const (
	// Maj is the major version number (updated on breaking release).
	Maj = 0
	// Min is the minor version number (updated on minor releases).
	Min = 3
	// Fix is the patch number (updated on bugfix releases).
	Fix = 0
)

// GitCommit set by build flags.
var GitCommit = ""

// Version is the string to be displayed.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d", Maj, Min, Fix)
	if GitCommit != "" {
		v += " " + GitCommit
	}
	return v
}
