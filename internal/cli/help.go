package cli

import (
	"fmt"

	"github.com/xonecas/tactus/internal/styles"
)

// PrintVersion displays the version information.
func PrintVersion(version string) {
	fmt.Printf("Tactus %s\n", version)
}

// PrintHelp displays usage information with CLI styling.
func PrintHelp(version string) {
	fmt.Println(styles.Brand.Render("╔══════════════════════════════════════╗"))
	fmt.Println(styles.Brand.Render("║") + "  " + styles.BrandBold.Render("Tactus") + " - haptic metronome " + styles.Muted.Render(padVersion(version)) + styles.Brand.Render("║"))
	fmt.Println(styles.Brand.Render("╚══════════════════════════════════════╝"))
	fmt.Println()
	fmt.Println(styles.BrandBold.Render("USAGE:"))
	fmt.Println("  tactus [flags]")
	fmt.Println()
	fmt.Println(styles.BrandBold.Render("FLAGS:"))
	fmt.Println("  " + styles.Secondary.Render("-h, --help") + "              Show this help message")
	fmt.Println("  " + styles.Secondary.Render("-v, --version") + "           Show version information")
	fmt.Println("  " + styles.Secondary.Render("-c, --config") + " PATH       Path to config file (default: config.toml)")
	fmt.Println("  " + styles.Secondary.Render("-d, --debug") + "             Enable debug logging")
	fmt.Println("  " + styles.Secondary.Render("-H, --headless") + "          Read commands from stdin instead of the terminal UI")
	fmt.Println("  " + styles.Secondary.Render("-l, --list-sessions") + "     List recent practice sessions and exit")
	fmt.Println("  " + styles.Secondary.Render("-D, --delete-session") + " ID Delete a practice session and exit")
	fmt.Println()
	fmt.Println(styles.BrandBold.Render("EXAMPLES:"))
	fmt.Println("  # Start the metronome")
	fmt.Println("  tactus")
	fmt.Println()
	fmt.Println("  # Pulse a MIDI device from a script")
	fmt.Println("  echo '+' | tactus -H -c midi.toml")
	fmt.Println()
	fmt.Println("  # Delete a session by ID prefix")
	fmt.Println("  tactus -D 3f2a")
	fmt.Println()
	fmt.Println(styles.BrandBold.Render("KEYS:"))
	fmt.Println("  " + styles.Secondary.Render("up/k, down/j") + "           Tempo up/down by 2 BPM")
	fmt.Println("  " + styles.Secondary.Render("space, enter") + "           Start/stop pulsing")
	fmt.Println("  " + styles.Secondary.Render("right/l, left/h") + "        Accent interval up/down")
	fmt.Println("  " + styles.Secondary.Render("s") + "                      Accent settings view")
	fmt.Println("  " + styles.Secondary.Render("q, ctrl+c") + "              Quit")
	fmt.Println()
	fmt.Println(styles.BrandBold.Render("HEADLESS COMMANDS:"))
	fmt.Println("  " + styles.Secondary.Render("+, -") + "                   Tempo up/down")
	fmt.Println("  " + styles.Secondary.Render("t, toggle") + "              Start/stop pulsing")
	fmt.Println("  " + styles.Secondary.Render("a+, a-") + "                 Accent interval up/down")
	fmt.Println("  " + styles.Secondary.Render("i N") + "                    Set pulse duration to N ms")
	fmt.Println("  " + styles.Secondary.Render("status") + "                 Print the current state")
	fmt.Println("  " + styles.Secondary.Render("q, quit, exit") + "          Exit")
	fmt.Println()
	fmt.Println(styles.Muted.Render("Note: drop {\"vibe_duration\": N} into the inbox file to change the pulse while running."))
	fmt.Println()
}

func padVersion(version string) string {
	const width = 17
	if len(version) >= width {
		return version
	}
	return fmt.Sprintf("%-*s", width, version)
}
