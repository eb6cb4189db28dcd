package idgen

import (
	"fmt"
	"log"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// MaxNodeID is the largest node id the default snowflake layout allows.
const MaxNodeID = 1023

var (
	mu   sync.RWMutex
	node *snowflake.Node
)

// Init binds the generator to nodeID. Each API or sweeper process sharing a
// broker needs its own node id, otherwise event ids can collide.
func Init(nodeID int64) error {
	if nodeID < 0 || nodeID > MaxNodeID {
		return fmt.Errorf("snowflake node id %d out of range [0,%d]", nodeID, MaxNodeID)
	}
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("snowflake node %d: %w", nodeID, err)
	}
	mu.Lock()
	node = n
	mu.Unlock()
	log.Printf("[IDGen] snowflake node initialized: nodeID=%d", nodeID)
	return nil
}

func current() *snowflake.Node {
	mu.RLock()
	n := node
	mu.RUnlock()
	if n != nil {
		return n
	}

	mu.Lock()
	defer mu.Unlock()
	if node == nil {
		// tools and tests that never called Init get node 1
		node, _ = snowflake.NewNode(1)
	}
	return node
}

// EventID is the id carried by published messages.
func EventID() string {
	return current().Generate().String()
}

// Next returns a raw id.
func Next() int64 {
	return current().Generate().Int64()
}
