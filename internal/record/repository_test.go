package record

import (
	"context"
	"testing"
)

func TestInMemoryRepository_SeedAndCopies(t *testing.T) {
	repo := NewInMemoryRepository([]Record{{ID: "fixed", FirstName: "A"}, {FirstName: "B"}})

	all := repo.All()
	if len(all) != 2 || all[0].ID != "fixed" || all[1].ID == "" {
		t.Fatalf("unexpected seed %+v", all)
	}
	all[0].FirstName = "mutated"
	if repo.All()[0].FirstName != "A" {
		t.Fatalf("All must return a copy")
	}
}

func TestInMemoryRepository_SaveIgnoresCallerID(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	saved, err := repo.Save(context.Background(), Record{ID: "caller", FirstName: "A"})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.ID == "caller" || saved.ID == "" {
		t.Fatalf("expected store-assigned id, got %q", saved.ID)
	}
}

func TestOpenStore_Memory(t *testing.T) {
	store, closeStore, err := OpenStore(context.Background(), StoreOptions{Driver: DriverMemory})
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	defer closeStore(context.Background())
	if _, ok := store.(*InMemoryRepository); !ok {
		t.Fatalf("expected in-memory store, got %T", store)
	}
}

func TestOpenStore_Errors(t *testing.T) {
	ctx := context.Background()
	if _, _, err := OpenStore(ctx, StoreOptions{Driver: "cassandra"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
	if _, _, err := OpenStore(ctx, StoreOptions{Driver: DriverPostgres}); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
	if _, _, err := OpenStore(ctx, StoreOptions{Driver: DriverMongo}); err == nil {
		t.Fatalf("expected error without MONGO_URI")
	}
}
