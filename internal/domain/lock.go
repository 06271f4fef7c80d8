package domain

import (
	"bytes"
	"sort"
)

// withLocks runs fn while holding the locks of every product and then the
// customer. Products are locked in ascending ID order so that checkouts over
// overlapping products cannot deadlock.
func withLocks[T any](customer *Customer, products []*Product, fn func() (T, error)) (T, error) {
	ordered := lockOrder(products)

	for _, p := range ordered {
		p.mu.Lock()
	}
	customer.mu.Lock()

	defer func() {
		customer.mu.Unlock()
		for i := len(ordered) - 1; i >= 0; i-- {
			ordered[i].mu.Unlock()
		}
	}()

	return fn()
}

func lockOrder(products []*Product) []*Product {
	ordered := make([]*Product, 0, len(products))
	seen := make(map[*Product]struct{}, len(products))

	for _, p := range products {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		ordered = append(ordered, p)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return bytes.Compare(ordered[i].ID[:], ordered[j].ID[:]) < 0
	})

	return ordered
}
