package logger

import (
	"log"
	"os"
)

// ProgressLogger logs the main steps of the table layout.
var ProgressLogger = log.New(os.Stdout, "tablelayout.progress: ", log.LstdFlags)

// WarningLogger emits a warning for each non fatal error, like malformed
// colspan/rowspan attributes, misplaced table children or invalid explicit
// sizes. Layout never aborts on such input; it degrades and logs here.
var WarningLogger = log.New(os.Stdout, "tablelayout.warning: ", log.Lmsgprefix)
