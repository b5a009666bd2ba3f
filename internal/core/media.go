package core

// MediaItem is a catalog entry for a playable source. Duration is in
// seconds.
type MediaItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Kind     MediaKind `json:"kind"`
	Duration float64   `json:"duration"`
}

// Catalog is the ordered media pool of a project.
type Catalog []MediaItem

// Lookup returns the item with the given id, or nil.
func (c Catalog) Lookup(id string) *MediaItem {
	for i := range c {
		if c[i].ID == id {
			return &c[i]
		}
	}
	return nil
}
