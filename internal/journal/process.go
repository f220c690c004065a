package journal

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// GameRunning reports whether a process with the given executable name is
// alive. The match ignores case and a trailing ".exe".
func GameRunning(ctx context.Context, name string) (bool, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return false, fmt.Errorf("listing processes: %w", err)
	}
	for _, p := range procs {
		n, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if processNameMatches(n, name) {
			return true, nil
		}
	}
	return false, nil
}

func processNameMatches(got, want string) bool {
	got = strings.TrimSuffix(strings.ToLower(got), ".exe")
	want = strings.TrimSuffix(strings.ToLower(want), ".exe")
	return want != "" && got == want
}
