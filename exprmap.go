package gosimp

// ExprMap is an insertion-ordered map keyed by structural equality of
// expressions. The zero value is not usable; call NewExprMap.
type ExprMap[V any] struct {
	keys []Expr
	vals []V
	idx  map[string]int
}

func NewExprMap[V any]() *ExprMap[V] {
	return &ExprMap[V]{idx: map[string]int{}}
}

func (m *ExprMap[V]) Get(k Expr) (V, bool) {
	if i, ok := m.idx[k.Key()]; ok {
		return m.vals[i], true
	}
	var zero V
	return zero, false
}

func (m *ExprMap[V]) Has(k Expr) bool {
	_, ok := m.idx[k.Key()]
	return ok
}

// Set stores v under k. An existing key keeps its original position.
func (m *ExprMap[V]) Set(k Expr, v V) {
	if i, ok := m.idx[k.Key()]; ok {
		m.vals[i] = v
		return
	}
	m.idx[k.Key()] = len(m.keys)
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
}

func (m *ExprMap[V]) Delete(k Expr) {
	i, ok := m.idx[k.Key()]
	if !ok {
		return
	}
	delete(m.idx, k.Key())
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	for j := i; j < len(m.keys); j++ {
		m.idx[m.keys[j].Key()] = j
	}
}

func (m *ExprMap[V]) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *ExprMap[V]) Keys() []Expr {
	out := make([]Expr, len(m.keys))
	copy(out, m.keys)
	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *ExprMap[V]) Range(fn func(k Expr, v V) bool) {
	for i, k := range m.keys {
		if !fn(k, m.vals[i]) {
			return
		}
	}
}
