package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// IDGenerator hands out the opaque primary keys of billing rows.
// Snowflake ids are time ordered and unique per node, so two bills for the
// same table within one millisecond still get distinct ids.
type IDGenerator struct {
	node *snowflake.Node
}

// NewIDGenerator creates a generator for the given snowflake node (0-1023)
func NewIDGenerator(node int64) (*IDGenerator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}
	return &IDGenerator{node: n}, nil
}

// NewOrderID returns "<table>-<snowflake>"
func (g *IDGenerator) NewOrderID(tableID string) string {
	return tableID + "-" + g.node.Generate().String()
}

// NewBillID returns "b-<snowflake>"
func (g *IDGenerator) NewBillID() string {
	return "b-" + g.node.Generate().String()
}

// NewDueID returns "d-<snowflake>"
func (g *IDGenerator) NewDueID() string {
	return "d-" + g.node.Generate().String()
}

// OrderItemID is unique because an order holds at most one line per item.
func OrderItemID(orderID, itemID string) string {
	return "oi-" + orderID + "-" + itemID
}

// NewRequestID generates a request correlation id
func NewRequestID() string {
	return uuid.NewString()
}

var (
	nonSlugChars = regexp.MustCompile("[^a-z0-9-]")
	dashes       = regexp.MustCompile("-+")
)

// Slugify converts a string to a URL-friendly slug, used for catalog item ids
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = dashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
