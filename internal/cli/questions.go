package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// FillInitOptionsInteractive prompts the user to confirm or override defaults.
// If in is exhausted, it will keep the provided defaults.
func FillInitOptionsInteractive(opts *InitOptions, in io.Reader, out io.Writer) {
	reader := bufio.NewReader(in)
	ask := func(prompt, def string) string {
		fmt.Fprintf(out, "%s [%s]: ", prompt, def)
		if s, _ := reader.ReadString('\n'); strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		return def
	}

	// Name (directory)
	opts.Name = ask("Directory name", opts.Name)

	// Title
	defTitle := opts.Title
	if defTitle == "" {
		defTitle = opts.Name
	}
	opts.Title = ask("Site title", defTitle)

	defURL := opts.BaseURL
	if defURL == "" {
		defURL = "http://localhost:3000"
	}
	opts.BaseURL = ask("Base URL", defURL)

	// BuildDir
	defBuild := opts.BuildDir
	if defBuild == "" {
		defBuild = "public"
	}
	opts.BuildDir = ask("Build directory", defBuild)
}
