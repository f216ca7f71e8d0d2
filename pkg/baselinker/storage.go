package baselinker

import "context"

// External storage operation names.
const (
	MethodGetExternalStoragesList               = "getExternalStoragesList"
	MethodGetExternalStorageCategories          = "getExternalStorageCategories"
	MethodGetExternalStorageProductsData        = "getExternalStorageProductsData"
	MethodGetExternalStorageProductsList        = "getExternalStorageProductsList"
	MethodGetExternalStorageProductsQuantity    = "getExternalStorageProductsQuantity"
	MethodGetExternalStorageProductsPrices      = "getExternalStorageProductsPrices"
	MethodUpdateExternalStorageProductsQuantity = "updateExternalStorageProductsQuantity"
)

// ExternalStorage groups operations on storages (shops, wholesalers)
// connected to Baselinker. Storage IDs look like "shop_2445" or "bl_19464".
type ExternalStorage struct {
	caller Caller
}

// ExternalProductsListRequest filters getExternalStorageProductsList.
type ExternalProductsListRequest struct {
	StorageID          string   `json:"storage_id"`
	FilterCategoryID   *string  `json:"filter_category_id"`
	FilterSort         *string  `json:"filter_sort"` // e.g. "id ASC", "price DESC"
	FilterID           *string  `json:"filter_id"`
	FilterEAN          *string  `json:"filter_ean"`
	FilterSKU          *string  `json:"filter_sku"`
	FilterName         *string  `json:"filter_name"`
	FilterPriceFrom    *float64 `json:"filter_price_from"`
	FilterPriceTo      *float64 `json:"filter_price_to"`
	FilterQuantityFrom *int     `json:"filter_quantity_from"`
	FilterQuantityTo   *int     `json:"filter_quantity_to"`
	FilterAvailable    *int     `json:"filter_available"` // 1 available, 0 unavailable
	Page               *int     `json:"page"`
}

// ExternalQuantityUpdate is one stock change: product, variant (0 for the
// main product) and the new quantity. It encodes as a three element array.
type ExternalQuantityUpdate struct {
	ProductID string
	VariantID int
	Quantity  int
}

// MarshalJSON encodes the update in the positional form the API expects.
func (u ExternalQuantityUpdate) MarshalJSON() ([]byte, error) {
	return marshalTuple(u.ProductID, u.VariantID, u.Quantity)
}

// GetExternalStoragesList returns the storages that can be referenced via API.
func (s *ExternalStorage) GetExternalStoragesList(ctx context.Context) (Response, error) {
	return s.caller.Call(ctx, MethodGetExternalStoragesList, nil)
}

// GetExternalStorageCategories returns the categories of a storage.
func (s *ExternalStorage) GetExternalStorageCategories(ctx context.Context, storageID string) (Response, error) {
	return s.caller.Call(ctx, MethodGetExternalStorageCategories, Params{
		"storage_id": storageID,
	})
}

// GetExternalStorageProductsData returns detailed data of selected products.
func (s *ExternalStorage) GetExternalStorageProductsData(ctx context.Context, storageID string, productIDs []string) (Response, error) {
	return s.caller.Call(ctx, MethodGetExternalStorageProductsData, Params{
		"storage_id": storageID,
		"products":   productIDs,
	})
}

// GetExternalStorageProductsList returns a filtered product list.
func (s *ExternalStorage) GetExternalStorageProductsList(ctx context.Context, req *ExternalProductsListRequest) (Response, error) {
	return s.caller.Call(ctx, MethodGetExternalStorageProductsList, req)
}

// GetExternalStorageProductsQuantity returns stock from a storage.
func (s *ExternalStorage) GetExternalStorageProductsQuantity(ctx context.Context, storageID string, page *int) (Response, error) {
	return s.caller.Call(ctx, MethodGetExternalStorageProductsQuantity, Params{
		"storage_id": storageID,
		"page":       page,
	})
}

// GetExternalStorageProductsPrices returns product prices from a storage.
func (s *ExternalStorage) GetExternalStorageProductsPrices(ctx context.Context, storageID string, page *int) (Response, error) {
	return s.caller.Call(ctx, MethodGetExternalStorageProductsPrices, Params{
		"storage_id": storageID,
		"page":       page,
	})
}

// UpdateExternalStorageProductsQuantity bulk updates stock, at most 1000
// products per call.
func (s *ExternalStorage) UpdateExternalStorageProductsQuantity(ctx context.Context, storageID string, updates []ExternalQuantityUpdate) (Response, error) {
	return s.caller.Call(ctx, MethodUpdateExternalStorageProductsQuantity, Params{
		"storage_id": storageID,
		"products":   updates,
	})
}
