package model

// Collection is the insertion-ordered list of items. It is rebuilt from
// storage for every request and never cached.
type Collection []Item

// IndexOf returns the position of the item with the given id, or -1.
func (c Collection) IndexOf(id int64) int {
	for i, it := range c {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the item with the given id.
func (c Collection) Find(id int64) (Item, bool) {
	if i := c.IndexOf(id); i >= 0 {
		return c[i], true
	}
	return Item{}, false
}

// NextID returns the id the next created item should receive.
func (c Collection) NextID(strategy IDStrategy) int64 {
	if len(c) == 0 {
		return 1
	}
	if strategy == IDFromMax {
		var max int64
		for _, it := range c {
			if it.ID > max {
				max = it.ID
			}
		}
		return max + 1
	}
	return c[len(c)-1].ID + 1
}

// Append returns the collection with item added at the end.
func (c Collection) Append(item Item) Collection {
	return append(c, item)
}

// Replace swaps the non-id fields of the item with the given id.
// It reports false when no such item exists.
func (c Collection) Replace(id int64, f Fields) (Item, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return Item{}, false
	}
	c[i] = f.WithID(c[i].ID)
	return c[i], true
}

// Remove deletes the item with the given id, keeping the order of the rest.
func (c Collection) Remove(id int64) (Collection, Item, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return c, Item{}, false
	}
	removed := c[i]
	out := make(Collection, 0, len(c)-1)
	out = append(out, c[:i]...)
	out = append(out, c[i+1:]...)
	return out, removed, true
}
