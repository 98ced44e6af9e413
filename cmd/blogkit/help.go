package main

import (
	"fmt"
	"io"
)

// commandNames lists the dispatchable commands.
var commandNames = []string{"render", "feed", "build", "serve", "doctor", "version", "help"}

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogkit <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render one markdown document to HTML")
	fmt.Fprintln(w, "  feed       Write the RSS feed for the content directory")
	fmt.Fprintln(w, "  build      Render every document, the index and the feed")
	fmt.Fprintln(w, "  serve      Serve the site, re-reading content on each request")
	fmt.Fprintln(w, "  doctor     Check configuration, content and output directory")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'blogkit help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: blogkit)")
	fmt.Fprintln(w, "      --site <url>          Site root URL")
	fmt.Fprintln(w, "      --content <dir>       Content directory")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  BLOGKIT_CONFIG, BLOGKIT_SITE_ROOT, BLOGKIT_CONTENT_DIR,")
	fmt.Fprintln(w, "  BLOGKIT_OUTPUT_DIR, BLOGKIT_ADDR, BLOGKIT_WORKERS")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogkit render <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one markdown document. Heading ids, heading links and math")
	fmt.Fprintln(w, "are applied; math errors are reported and left as literal text.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "      --page                Write a complete page, not just the body")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printFeedUsage prints usage for the feed command.
func printFeedUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogkit feed [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the RSS feed. Documents without a title or publication date")
	fmt.Fprintln(w, "are excluded. Without a site root, links start with [NOT SET?].")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogkit build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write <slug>/index.html for every document, index.html and rss.xml.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: dist)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel renders (0 = auto)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogkit serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve pages at /<slug>/, the index at / and the feed at /rss.xml.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default: :4321)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogkit doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the site can be built: configuration, site root, content")
	fmt.Fprintln(w, "listing, feed exclusions, templates and output directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --json                Machine-readable output")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "feed":
		printFeedUsage(env.Stdout)
	case "build":
		printBuildUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: blogkit version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: blogkit help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
