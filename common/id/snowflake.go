package id

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	mu   sync.RWMutex
)

// Init initializes the Snowflake node with the given node ID.
// The worker and the API server must use different node IDs.
func Init(nodeID int64) error {
	mu.Lock()
	defer mu.Unlock()

	if node != nil {
		return nil
	}

	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("creating snowflake node %d: %w", nodeID, err)
	}
	node = n
	return nil
}

// New generates a new time-ordered int64 ID for an organization or user row.
// Panics if Init was never called.
func New() int64 {
	mu.RLock()
	defer mu.RUnlock()

	if node == nil {
		panic("id: New called before Init")
	}
	return node.Generate().Int64()
}
