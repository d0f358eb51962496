package utils

import (
	"fmt"
	"io"

	"github.com/alexflint/go-arg"
)

// Parses args using go-arg and returns a boolean value indicating if the
// parse consumed the invocation. This usually happens when the user is
// requesting usage information or passed something we could not parse.
func ParseArgs(stdout io.Writer, stderr io.Writer, name string, args []string, destination any) (retcode int, consumed bool) {
	parser, err := arg.NewParser(arg.Config{Program: name}, destination)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err.Error())
		return 2, true
	}

	// Borrowed from MustParse.
	err = parser.Parse(args)
	switch err {
	case nil:
		return 0, false

	case arg.ErrHelp:
		parser.WriteHelp(stdout)
		return 0, true

	case arg.ErrVersion:
		version := "unknown"
		if versioned, ok := destination.(arg.Versioned); ok {
			version = versioned.Version()
		}
		fmt.Fprintln(stdout, version)
		return 0, true

	default:
		parser.WriteUsage(stderr)
		fmt.Fprintln(stderr, "error:", err.Error())
		return 2, true
	}
}
