package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving tenants or
// deployments separate namespaces in a shared backend.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "team:atlas:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey implements Keyer.
func (k *ScopedKeyer) LayoutKey(itemsHash, paramsHash string) string {
	return k.prefix + k.inner.LayoutKey(itemsHash, paramsHash)
}
