package indexer

// RegisterDefaults adds the catalog and inventory indexers for storeID.
func RegisterDefaults(r *Registry, storeID int) {
	r.Register(&stockIndexer{id: StockID, title: "Stock"})
	r.Register(&categoryProductIndexer{id: CategoryProductID, title: "Category Products", storeID: storeID})
	r.Register(&categoryProductIndexer{id: ProductCategoryID, title: "Product Categories", storeID: storeID})
	r.Register(&priceIndexer{storeID: storeID})
	r.Register(attributeIndexer{})
	r.Register(fulltextIndexer{})
	r.Register(&stockIndexer{id: InventoryID, title: "Inventory"})
	r.Register(&stockIndexer{id: SourceItemID, title: "Inventory by Source Items"})
}
