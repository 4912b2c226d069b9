package cli

import (
	"fmt"
	"strings"

	"github.com/tempo-sh/tempo/internal/api"
	"github.com/tempo-sh/tempo/internal/daemon"
	"github.com/tempo-sh/tempo/internal/domain"
)

// apiClient builds a client for the configured daemon address.
func apiClient() (*api.Client, error) {
	if rootAddr != "" {
		return api.NewClient(strings.TrimSuffix(rootAddr, "/")), nil
	}
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return nil, err
	}
	return api.NewClient(fmt.Sprintf("http://%s:%d", cfg.API.Host, cfg.API.Port)), nil
}

// formatClock renders seconds as MM:SS.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// printTimer renders a one-screen summary of the current timer.
func printTimer(t *domain.Timer) {
	fmt.Printf("%s  [%s]\n", formatClock(t.RemainingTime), strings.ToLower(string(t.Status)))
	if t.Task != "" {
		fmt.Printf("  task: %s\n", t.Task)
	}
	if len(t.Tags) > 0 {
		fmt.Printf("  tags: %s\n", strings.Join(t.Tags, ", "))
	}
	if t.RemainingTime != t.Duration {
		fmt.Printf("  %s of %s elapsed\n", formatClock(t.Elapsed()), formatClock(t.Duration))
	}
}
