package cache

// keyVersion is bumped whenever the encoded layout format changes.
const keyVersion = "v1"

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout for the given content hashes
	// of an item list and a params value.
	LayoutKey(itemsHash, paramsHash string) string
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(itemsHash, paramsHash string) string {
	return hashKey("layout", keyVersion, itemsHash, paramsHash)
}
