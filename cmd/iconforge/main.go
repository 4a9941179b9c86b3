package main

import (
	"fmt"
	"os"
	"runtime"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	args := os.Args[1:]
	logEnabled := false

	// Parse flags
	filtered := args[:0]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--log":
			logEnabled = true
		default:
			filtered = append(filtered, args[i])
		}
	}

	if len(filtered) == 0 {
		runGenerate("", logEnabled)
		return
	}

	switch filtered[0] {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-V", "--version":
		printVersion()
	case "history":
		historyCmd(filtered[1:])
	case "inspect":
		inspectCmd(filtered[1:])
	default:
		if len(filtered) > 1 {
			fmt.Fprintf(os.Stderr, "Error: expected at most one output directory\n")
			fmt.Fprintf(os.Stderr, "Run 'iconforge help' for usage.\n")
			os.Exit(1)
		}
		runGenerate(filtered[0], logEnabled)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printVersion() {
	fmt.Printf("iconforge %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("iconforge %s - Generate the app icon set (ICO, ICNS, PNG)\n", version)
	fmt.Println(`
Usage:
  iconforge [options] [outdir]

Options:
  --log                  Record the build in the history database

Commands:
  inspect <file>         Show the contents of a generated .ico/.icns/.png
  history [n]            Show the last n recorded builds (default 10)
  history summary [days] Aggregate builds per day (default 7, or "all")
  history clean [days]   Drop history older than n days
  history clear          Delete all build history
  version, -V            Show version and build date
  help, -h, --help       Show this help message

Output:
  <outdir>/icon.ico      16, 32, 48, 64, 128, 256 px
  <outdir>/icon.icns     16 px up to 1024 px including the @2x slots
  <outdir>/icon.png      512 px flat image

Without an outdir the files go to the assets directory one level above
the binary.

Examples:
  iconforge                        Write icons to the default assets dir
  iconforge ./build/icons          Write icons to ./build/icons
  iconforge --log ./build/icons    Also record the build in history
  iconforge inspect icon.icns      List the elements of an ICNS file

Created by Thomas Häuser
https://mavwarf.netlify.app/
https://github.com/Mavwarf/iconforge`)
}
