package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Ftotnem/auction-state/shared/mongodb"
	redisu "github.com/Ftotnem/auction-state/shared/redis"
	"github.com/alicebob/miniredis/v2"
)

// testDocumentStore runs the behavior every backend shares.
func testDocumentStore(t *testing.T, s DocumentStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		exists, err := s.Exists(ctx, ResourceTeams)
		if err != nil {
			t.Fatalf("exists: %v", err)
		}
		if exists {
			t.Fatal("expected teams to be absent")
		}
		if _, err := s.Load(ctx, ResourceTeams); !errors.Is(err, ErrDocumentNotFound) {
			t.Fatalf("expected ErrDocumentNotFound, got %v", err)
		}
	})

	t.Run("save and load", func(t *testing.T) {
		if err := s.Save(ctx, ResourcePlayers, []byte(`[{"name":"Alice","base":200}]`)); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := s.Load(ctx, ResourcePlayers)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		want := "[\n  {\n    \"name\": \"Alice\",\n    \"base\": 200\n  }\n]\n"
		if string(got) != want {
			t.Fatalf("unexpected document\n got: %q\nwant: %q", got, want)
		}
		exists, err := s.Exists(ctx, ResourcePlayers)
		if err != nil || !exists {
			t.Fatalf("expected players to exist, got %v, %v", exists, err)
		}
	})

	t.Run("replace", func(t *testing.T) {
		if err := s.Save(ctx, ResourceSession, []byte(`{"b":1,"a":2}`)); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := s.Save(ctx, ResourceSession, []byte(`{"z":true}`)); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := s.Load(ctx, ResourceSession)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if string(got) != "{\n  \"z\": true\n}\n" {
			t.Fatalf("unexpected document %q", got)
		}
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		if err := s.Save(ctx, ResourceSession, []byte("\n\t {\"a\":1}   \r\n")); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := s.Load(ctx, ResourceSession)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if string(got) != "{\n  \"a\": 1\n}\n" {
			t.Fatalf("expected stable layout, got %q", got)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if err := s.Save(ctx, ResourceTeams, []byte(`{"broken":`)); !errors.Is(err, ErrInvalidDocument) {
			t.Fatalf("expected ErrInvalidDocument, got %v", err)
		}
		if exists, _ := s.Exists(ctx, ResourceTeams); exists {
			t.Fatal("invalid save must not create the document")
		}
		if err := s.Save(ctx, Resource("bids"), []byte(`[]`)); !errors.Is(err, ErrUnknownResource) {
			t.Fatalf("expected ErrUnknownResource, got %v", err)
		}
	})

	t.Run("concurrent saves", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := s.Save(ctx, ResourceTeams, []byte(`[{"id":1}]`)); err != nil {
					t.Errorf("save: %v", err)
				}
			}()
		}
		wg.Wait()
		if _, err := s.Load(ctx, ResourceTeams); err != nil {
			t.Fatalf("load after concurrent saves: %v", err)
		}
	})
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	testDocumentStore(t, s)

	if got := s.Path(ResourceSession); got != filepath.Join(dir, "auction_session.json") {
		t.Fatalf("unexpected session path %q", got)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFileStoreCorruptDocument(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := os.WriteFile(s.Path(ResourceTeams), []byte("not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.Load(context.Background(), ResourceTeams); !errors.Is(err, ErrCorruptDocument) {
		t.Fatalf("expected ErrCorruptDocument, got %v", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "db", "auction.db"))
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	defer s.Close()
	testDocumentStore(t, s)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := redisu.NewRedisClient([]string{mr.Addr()}, "")
	if err != nil {
		t.Fatalf("new redis client: %v", err)
	}
	s := NewRedisStore(rdb)
	defer s.Close()
	testDocumentStore(t, s)

	if !mr.Exists("auction:document:{auction_session}:") {
		t.Fatal("expected session key in redis")
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongodb.NewClient(ctx, uri, "auction_test")
	if err != nil {
		t.Fatalf("new mongo client: %v", err)
	}
	collection := "documents_" + time.Now().Format("20060102150405.000000")
	s := NewMongoStore(client, collection)
	defer s.Close()
	defer client.Collection(collection).Drop(context.Background())
	testDocumentStore(t, s)
}
