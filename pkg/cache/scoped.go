package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving each tenant or
// workspace its own namespace in a shared backend.
//
//	userKeyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "user:abc123:")
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

func (k *ScopedKeyer) LayoutKey(worksheetHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(worksheetHash, opts)
}

func (k *ScopedKeyer) CompositionKey(workbookHash string, opts CompositionKeyOpts) string {
	return k.prefix + k.inner.CompositionKey(workbookHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

func (k *ScopedKeyer) OutlineKey(workbookHash string, opts OutlineKeyOpts) string {
	return k.prefix + k.inner.OutlineKey(workbookHash, opts)
}
