package idgen

import (
	"log"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// Init sets the snowflake node. Must run before the first GenerateID call
// when more than one instance writes to the same database.
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	nodeOnce.Do(func() {})
	node = n
	return nil
}

func GenerateID() int64 {
	nodeOnce.Do(func() {
		if node != nil {
			return
		}
		n, err := snowflake.NewNode(1)
		if err != nil {
			log.Fatalf("Failed to init Snowflake: %v", err)
		}
		node = n
	})
	return node.Generate().Int64()
}
