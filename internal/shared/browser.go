package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

const moviePageURL = "https://www.themoviedb.org/movie/%d"

var getRuntime = func() string { return runtime.GOOS }

// MoviePageURL returns the public TMDB page for a movie id.
func MoviePageURL(id int64) string {
	return fmt.Sprintf(moviePageURL, id)
}

// browserCommand builds the platform specific command that opens url.
func browserCommand(url string) (*exec.Cmd, error) {
	switch rt := getRuntime(); rt {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", rt)
	}
}

// OpenBrowser opens the default system browser to the specified URL.
//
// Supports macOS, Linux, and Windows platforms.
func OpenBrowser(url string) error {
	cmd, err := browserCommand(url)
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
