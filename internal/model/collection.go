package model

// Collection maps a series name to its table. Names are unique; Order
// holds the caller-supplied iteration order used for progress reporting.
type Collection struct {
	Order  []string
	Tables map[string]*Table
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{Tables: make(map[string]*Table)}
}

// Add inserts a table under name. Re-adding a name replaces the table
// without duplicating the order entry.
func (c *Collection) Add(name string, t *Table) {
	if _, ok := c.Tables[name]; !ok {
		c.Order = append(c.Order, name)
	}
	c.Tables[name] = t
}

// Remove drops the named series.
func (c *Collection) Remove(name string) {
	if _, ok := c.Tables[name]; !ok {
		return
	}
	delete(c.Tables, name)
	for i, n := range c.Order {
		if n == name {
			c.Order = append(c.Order[:i], c.Order[i+1:]...)
			break
		}
	}
}

// Len returns the number of series.
func (c *Collection) Len() int { return len(c.Tables) }
