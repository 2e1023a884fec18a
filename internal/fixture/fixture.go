package fixture

import (
	"fmt"
	"os"

	"github.com/studiowebux/postboard/internal/types"
	"gopkg.in/yaml.v3"
)

// Generate returns n deterministic posts shaped like the public demo API:
// ten posts per user, ids starting at 1.
func Generate(n int) []types.Post {
	posts := make([]types.Post, 0, n)
	for i := 1; i <= n; i++ {
		posts = append(posts, types.Post{
			ID:     i,
			UserID: (i-1)/10 + 1,
			Title:  fmt.Sprintf("post %d", i),
			Body:   fmt.Sprintf("body of post %d", i),
		})
	}
	return posts
}

// LoadFile reads posts from a YAML or JSON file (a list of {id, title, body})
func LoadFile(path string) ([]types.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var posts []types.Post
	if err := yaml.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("failed to parse fixture file %s: %w", path, err)
	}

	seen := make(map[int]bool, len(posts))
	for _, p := range posts {
		if seen[p.ID] {
			return nil, fmt.Errorf("fixture file %s: duplicate post id %d", path, p.ID)
		}
		seen[p.ID] = true
	}

	return posts, nil
}
