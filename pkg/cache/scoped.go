package cache

// ScopedKeyer prefixes every key of an inner [Keyer], so deployments that
// share one Redis database do not read each other's results.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer prefixes inner's keys with prefix. A nil inner means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

// ResultKey implements [Keyer].
func (k ScopedKeyer) ResultKey(frameHash, paramsHash string) string {
	return k.prefix + k.inner.ResultKey(frameHash, paramsHash)
}
