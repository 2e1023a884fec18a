package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/studiowebux/postboard/internal/executor"
	"github.com/studiowebux/postboard/internal/types"
)

const (
	// ReleasesURL is the release feed checked by `postboard version --check`
	ReleasesURL  = "https://api.github.com/repos/studiowebux/postboard/releases/latest"
	checkTimeout = 5 * time.Second
)

// Version is the build version, overridden with -ldflags "-X .../version.Version=..."
var Version = "0.1.0"

type GitHubRelease struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// Update describes the outcome of a release check
type Update struct {
	Available bool
	Latest    string
	URL       string
}

// CheckForUpdate asks releasesURL whether a version newer than currentVersion exists
func CheckForUpdate(ctx context.Context, releasesURL, currentVersion string) (*Update, error) {
	req := &types.FetchRequest{
		Name:    "release-check",
		Method:  http.MethodGet,
		URL:     releasesURL,
		Headers: map[string]string{"User-Agent": "postboard/" + currentVersion},
	}

	result, err := executor.Execute(ctx, req, nil, checkTimeout)
	if err != nil {
		return nil, err
	}
	if result.Error != "" {
		return nil, fmt.Errorf("failed to fetch latest release: %s", result.Error)
	}
	if result.Status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", result.Status)
	}

	var release GitHubRelease
	if err := json.Unmarshal([]byte(result.Body), &release); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(currentVersion, "v")

	return &Update{
		Available: latest != "" && isNewerVersion(latest, current),
		Latest:    latest,
		URL:       release.HTMLURL,
	}, nil
}

// isNewerVersion compares two semantic versions and returns true if latest > current
// Supports versions like "0.0.28", "1.2.3", "0.0.29-dev", etc.
func isNewerVersion(latest, current string) bool {
	latestParts := parseVersion(latest)
	currentParts := parseVersion(current)

	// Pad shorter version with zeros
	maxLen := len(latestParts)
	if len(currentParts) > maxLen {
		maxLen = len(currentParts)
	}

	for len(latestParts) < maxLen {
		latestParts = append(latestParts, 0)
	}
	for len(currentParts) < maxLen {
		currentParts = append(currentParts, 0)
	}

	// Compare each part
	for i := 0; i < maxLen; i++ {
		if latestParts[i] > currentParts[i] {
			return true
		}
		if latestParts[i] < currentParts[i] {
			return false
		}
	}

	return false
}

// parseVersion parses a version string into integer parts
// Handles pre-release versions by stripping everything after "-" or "+"
func parseVersion(version string) []int {
	// Strip pre-release and build metadata (everything after - or +)
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))

	for _, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil {
			// If we can't parse a number, skip it
			continue
		}
		result = append(result, num)
	}

	return result
}
