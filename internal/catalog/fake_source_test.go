package catalog

import (
	"context"
	"sync"
)

type fakeSource struct {
	mu     sync.Mutex
	calls  []Query
	listFn func(q Query) ([]Product, error)
	catFn  func() ([]Category, error)
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) List(_ context.Context, q Query) ([]Product, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	f.mu.Unlock()
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(q)
}

func (f *fakeSource) Get(context.Context, uint) (Product, error) {
	return Product{}, nil
}

func (f *fakeSource) Categories(context.Context) ([]Category, error) {
	if f.catFn == nil {
		return nil, nil
	}
	return f.catFn()
}

func (f *fakeSource) recorded() []Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Query(nil), f.calls...)
}
