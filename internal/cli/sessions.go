package cli

import (
	"fmt"
	"time"

	"github.com/xonecas/tactus/internal/session"
	"github.com/xonecas/tactus/internal/styles"
)

// ListSessionsCmd prints recent practice sessions.
func ListSessionsCmd(mgr *session.Manager) error {
	sessions, err := mgr.List(20)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions found")
		return nil
	}

	fmt.Println(styles.Brand.Render("Recent Sessions:"))
	fmt.Println()

	now := time.Now()
	for _, sess := range sessions {
		fmt.Printf("%s  ", styles.Muted.Render(shortID(sess.ID)))
		fmt.Print(styles.BrandBold.Render(fmt.Sprintf("%d BPM", sess.Tempo)))
		if sess.AccentInterval > 0 {
			fmt.Printf(" - accent every %d", sess.AccentInterval)
		}
		fmt.Printf(" - %d beats", sess.Beats)
		if sess.EndedAt == nil {
			fmt.Print(styles.Secondary.Render(" (open)"))
		}
		fmt.Println()

		length := session.Length(sess, now)
		fmt.Printf("       %s\n", styles.Muted.Render(fmt.Sprintf("%s, ran %s",
			session.FormatAgo(now.Sub(sess.StartedAt)), length.Round(time.Second))))
		fmt.Println()
	}

	return nil
}

// DeleteSessionCmd deletes a practice session by ID or unique prefix.
func DeleteSessionCmd(mgr *session.Manager, id string) error {
	sess, err := mgr.Delete(id)
	if err != nil {
		return err
	}

	fmt.Printf("  ID: %s\n", sess.ID)
	fmt.Printf("  Tempo: %d BPM\n", sess.Tempo)
	fmt.Printf("  Beats: %d\n", sess.Beats)
	fmt.Printf("  Started: %s\n", session.FormatAgo(time.Since(sess.StartedAt)))
	fmt.Println()
	fmt.Println(styles.Success.Render(fmt.Sprintf("Deleted session '%s'", shortID(sess.ID))))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
