package utils

import (
	"fmt"
	"time"
)

// TimeTrack logs the elapsed time since start, tagged with a name.
func TimeTrack(start time.Time, name string) {
	fmt.Printf("%s took %s\n", name, time.Since(start))
}

// VerbosePrint prints only when the verbose option is set.
func VerbosePrint(format string, a ...interface{}) (n int, err error) {
	if Opts().Verbose() {
		return fmt.Printf(format, a...)
	}
	return 0, nil
}
