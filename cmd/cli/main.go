// Loggaliza - Server Log File Analyzer
//
// Loggaliza ingests unstructured server log files of mixed format, extracts
// structured fields from each line via pattern matching, and reports
// aggregate statistics as colorized console text or JSON.
package main

import (
	"os"

	"github.com/loggaliza/loggaliza/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
