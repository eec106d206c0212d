package reconcile_test

import (
	"context"
	"errors"
	"fmt"
	"io"

	"inventorysync/internal/feed"
	"inventorysync/internal/logger"
	"inventorysync/internal/models"
	"inventorysync/internal/store"
)

var errBoom = errors.New("boom")

func quietLogger() *logger.Logger {
	return logger.NewWithWriter("error", "json", io.Discard)
}

type fakeSettings struct {
	enabled bool
	url     string
	err     error
}

func (s *fakeSettings) SyncEnabled(ctx context.Context) (bool, error) {
	return s.enabled, s.err
}

func (s *fakeSettings) FeedURL(ctx context.Context) (string, error) {
	return s.url, s.err
}

type fakeFetcher struct {
	resp  *feed.Response
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*feed.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func okFeed(body string) *fakeFetcher {
	return &fakeFetcher{resp: &feed.Response{StatusCode: 200, Body: []byte(body)}}
}

type fakeProducts struct {
	bySKU    map[string]*models.Product
	saveErr  map[string]error
	panicSKU string
	saves    int
	nextID   int
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{bySKU: map[string]*models.Product{}, saveErr: map[string]error{}}
}

func (p *fakeProducts) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	if sku == p.panicSKU {
		panic("corrupt row")
	}
	product, ok := p.bySKU[sku]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", sku, store.ErrNotFound)
	}
	cp := *product
	cp.CategoryIDs = append([]string(nil), product.CategoryIDs...)
	return &cp, nil
}

func (p *fakeProducts) Save(ctx context.Context, product *models.Product) error {
	if err := p.saveErr[product.SKU]; err != nil {
		return err
	}
	if product.ID == "" {
		p.nextID++
		product.ID = fmt.Sprintf("p-%d", p.nextID)
	}
	p.saves++
	cp := *product
	cp.CategoryIDs = append([]string(nil), product.CategoryIDs...)
	p.bySKU[product.SKU] = &cp
	return nil
}

type fakeCategories struct {
	byName  map[string]*models.Category
	failFor map[string]error
	created int
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{byName: map[string]*models.Category{}, failFor: map[string]error{}}
}

func (c *fakeCategories) GetOrCreateByName(ctx context.Context, name string, build func() *models.Category) (*models.Category, bool, error) {
	if err := c.failFor[name]; err != nil {
		return nil, false, err
	}
	if existing, ok := c.byName[name]; ok {
		return existing, false, nil
	}
	category := build()
	category.Name = name
	c.created++
	category.ID = fmt.Sprintf("c-%d", c.created)
	c.byName[name] = category
	return category, true, nil
}

type fakeStock struct {
	batches [][]models.SourceItem
	err     error
}

func (s *fakeStock) SaveBatch(ctx context.Context, items []models.SourceItem) error {
	s.batches = append(s.batches, items)
	return s.err
}

type fakeIndexes struct {
	scheduled   map[string]bool
	failing     map[string]error
	reindexed   []string
	invalidated []string
}

func newFakeIndexes() *fakeIndexes {
	return &fakeIndexes{scheduled: map[string]bool{}, failing: map[string]error{}}
}

func (i *fakeIndexes) IsScheduled(ctx context.Context, id string) (bool, error) {
	return i.scheduled[id], nil
}

func (i *fakeIndexes) Invalidate(ctx context.Context, id string) error {
	i.invalidated = append(i.invalidated, id)
	return nil
}

func (i *fakeIndexes) ReindexAll(ctx context.Context, id string) error {
	if err := i.failing[id]; err != nil {
		return err
	}
	i.reindexed = append(i.reindexed, id)
	return nil
}
