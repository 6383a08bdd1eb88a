package memory_test

import (
	"testing"

	"github.com/wanderplan/wanderplan/pkg/adapters/memory"
	"github.com/wanderplan/wanderplan/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSessionStoreContract(t, store)
}
