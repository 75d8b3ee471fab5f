package store

import (
	"os"
	"testing"
)

func writeRaw(s *FileStore, resource Resource, content string) error {
	return os.WriteFile(s.Path(resource), []byte(content), 0o644)
}

func snapshot(t *testing.T, s *FileStore) map[Resource]string {
	t.Helper()
	out := make(map[Resource]string)
	for _, resource := range Resources() {
		b, err := os.ReadFile(s.Path(resource))
		if err != nil {
			t.Fatalf("read %s: %v", resource, err)
		}
		out[resource] = string(b)
	}
	return out
}
