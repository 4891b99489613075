package cli

import (
	"flag"
	"io"
	"os"

	"github.com/xonecas/tactus/internal/config"
)

// Flags holds parsed command-line flags.
type Flags struct {
	ShowHelp      bool
	ShowVersion   bool
	ConfigPath    string
	ConfigSet     bool // ConfigPath came from -c/--config
	Debug         bool
	Headless      bool
	ListSessions  bool
	DeleteSession string
}

// ParseFlags parses command-line flags and returns the result. Help and
// version requests are answered here and exit the process.
func ParseFlags(version string) *Flags {
	f, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		PrintHelp(version)
		os.Exit(2)
	}

	// Handle version flag
	if f.ShowVersion {
		PrintVersion(version)
		os.Exit(0)
	}

	// Handle help flag
	if f.ShowHelp {
		PrintHelp(version)
		os.Exit(0)
	}

	return f
}

func parseArgs(args []string, output io.Writer) (*Flags, error) {
	var f Flags

	fs := flag.NewFlagSet("tactus", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {}

	fs.BoolVar(&f.ShowHelp, "help", false, "Show help and exit")
	fs.BoolVar(&f.ShowHelp, "h", false, "Show help and exit (shorthand)")
	fs.BoolVar(&f.ShowVersion, "version", false, "Show version and exit")
	fs.BoolVar(&f.ShowVersion, "v", false, "Show version and exit (shorthand)")
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.StringVar(&f.ConfigPath, "c", "", "Path to config file (shorthand)")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.Debug, "d", false, "Enable debug logging (shorthand)")
	fs.BoolVar(&f.Headless, "headless", false, "Run without the terminal UI, reading commands from stdin")
	fs.BoolVar(&f.Headless, "H", false, "Run headless (shorthand)")
	fs.BoolVar(&f.ListSessions, "list-sessions", false, "List recent practice sessions and exit")
	fs.BoolVar(&f.ListSessions, "l", false, "List recent practice sessions and exit (shorthand)")
	fs.StringVar(&f.DeleteSession, "delete-session", "", "Delete a practice session by ID or prefix")
	fs.StringVar(&f.DeleteSession, "D", "", "Delete a practice session (shorthand)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Resolve config path if not specified
	f.ConfigSet = f.ConfigPath != ""
	f.ConfigPath = config.ResolvePath(f.ConfigPath)

	return &f, nil
}
