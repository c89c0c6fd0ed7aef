package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"SessionSpectra/internal/counter"
)

const version = 1

func showHelp(stream io.Writer, execName string) {
	const help = `
%s version %d

Usage:
 %s [OPTIONS] INTERVALS_FILE

 Generates a report on the number of concurrent sessions during each second.

Parameters:
 INTERVALS_FILE  the file containing session intervals

Options:
 -h, --help     show help and exit
 -v, --version  show version and exit

Summary:
 Generates a report on the number of concurrent sessions during each second. It
 reads an interval report with the following format.

 START_TIME STOP_TIME ...

 START_TIME is the time when a session started in seconds since the POSIX epoch.
 STOP_TIME is the time when the same session ended in seconds since the POSIX
 epoch. The rest of the line is ignored.

 The generated report is written to standard output where each line has the
 following format.

 TIME OPEN_SESSION_COUNT

 TIME is in seconds since the POSIX epoch. OPEN_SESSION_COUNT is the number of
 open sessions at TIME.

 The report is sorted by time with the first time being the earliest start time
 and the last time being the latest stop time.
`
	fmt.Fprintf(stream, help, execName, version, execName)
}

func main() {
	execName := filepath.Base(os.Args[0])

	var showHelpFlag, showVersionFlag bool
	flag.BoolVar(&showHelpFlag, "h", false, "show help and exit")
	flag.BoolVar(&showHelpFlag, "help", false, "show help and exit")
	flag.BoolVar(&showVersionFlag, "v", false, "show version and exit")
	flag.BoolVar(&showVersionFlag, "version", false, "show version and exit")
	flag.Usage = func() { showHelp(os.Stderr, execName) }
	flag.Parse()

	if showHelpFlag {
		showHelp(os.Stdout, execName)
		return
	}

	if showVersionFlag {
		fmt.Println(version)
		return
	}

	if flag.NArg() < 1 {
		showHelp(os.Stderr, execName)
		os.Exit(1)
	}

	if err := counter.CountSessions(flag.Arg(0), os.Stdout); err != nil {
		log.Fatalf("Fatal: %v", err)
	}
}
