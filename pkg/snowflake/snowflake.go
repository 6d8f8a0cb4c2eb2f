// Package snowflake provides process-wide unique ID generation backed
// by a single snowflake node.
package snowflake

import (
	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

// Init creates the process-wide generator node. Valid node IDs are
// 0 through 1023.
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	node = n
	return nil
}

// NextID returns the next unique ID. Init must be called first.
func NextID() int64 {
	return node.Generate().Int64()
}
