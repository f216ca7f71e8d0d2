package baselinker

import "context"

// Catalog operation names.
const (
	MethodAddInventoryPriceGroup    = "addInventoryPriceGroup"
	MethodDeleteInventoryPriceGroup = "deleteInventoryPriceGroup"
	MethodGetInventoryPriceGroups   = "getInventoryPriceGroups"
	MethodAddInventoryWarehouse     = "addInventoryWarehouse"
	MethodDeleteInventoryWarehouse  = "deleteInventoryWarehouse"
	MethodGetInventoryWarehouses    = "getInventoryWarehouses"
	MethodAddInventory              = "addInventory"
	MethodDeleteInventory           = "deleteInventory"
	MethodGetInventories            = "getInventories"

	MethodAddInventoryCategory               = "addInventoryCategory"
	MethodDeleteInventoryCategory            = "deleteInventoryCategory"
	MethodGetInventoryCategories             = "getInventoryCategories"
	MethodGetInventoryTags                   = "getInventoryTags"
	MethodAddInventoryManufacturer           = "addInventoryManufacturer"
	MethodDeleteInventoryManufacturer        = "deleteInventoryManufacturer"
	MethodGetInventoryManufacturers          = "getInventoryManufacturers"
	MethodGetInventoryExtraFields            = "getInventoryExtraFields"
	MethodGetInventoryIntegrations           = "getInventoryIntegrations"
	MethodGetInventoryAvailableTextFieldKeys = "getInventoryAvailableTextFieldKeys"

	MethodAddInventoryProduct           = "addInventoryProduct"
	MethodDeleteInventoryProduct        = "deleteInventoryProduct"
	MethodGetInventoryProductsData      = "getInventoryProductsData"
	MethodGetInventoryProductsList      = "getInventoryProductsList"
	MethodGetInventoryProductsStock     = "getInventoryProductsStock"
	MethodUpdateInventoryProductsStock  = "updateInventoryProductsStock"
	MethodGetInventoryProductsPrices    = "getInventoryProductsPrices"
	MethodUpdateInventoryProductsPrices = "updateInventoryProductsPrices"
	MethodGetInventoryProductLogs       = "getInventoryProductLogs"
	MethodRunProductMacroTrigger        = "runProductMacroTrigger"

	MethodAddInventoryDocument                = "addInventoryDocument"
	MethodSetInventoryDocumentStatusConfirmed = "setInventoryDocumentStatusConfirmed"
	MethodGetInventoryDocuments               = "getInventoryDocuments"
	MethodGetInventoryDocumentItems           = "getInventoryDocumentItems"
	MethodAddInventoryDocumentItems           = "addInventoryDocumentItems"
	MethodGetInventoryDocumentSeries          = "getInventoryDocumentSeries"

	MethodGetInventorySuppliers           = "getInventorySuppliers"
	MethodAddInventorySupplier            = "addInventorySupplier"
	MethodDeleteInventorySupplier         = "deleteInventorySupplier"
	MethodGetInventoryPayers              = "getInventoryPayers"
	MethodAddInventoryPayer               = "addInventoryPayer"
	MethodDeleteInventoryPayer            = "deleteInventoryPayer"
	MethodGetInventoryPurchaseOrders      = "getInventoryPurchaseOrders"
	MethodGetInventoryPurchaseOrderItems  = "getInventoryPurchaseOrderItems"
	MethodGetInventoryPurchaseOrderSeries = "getInventoryPurchaseOrderSeries"
	MethodAddInventoryPurchaseOrder       = "addInventoryPurchaseOrder"
	MethodAddInventoryPurchaseOrderItems  = "addInventoryPurchaseOrderItems"
	MethodSetInventoryPurchaseOrderStatus = "setInventoryPurchaseOrderStatus"
	MethodGetInventoryPrintoutTemplates   = "getInventoryPrintoutTemplates"
)

// Catalog groups the inventory (BaseLinker catalog) operations.
type Catalog struct {
	caller Caller
}

// PriceGroupRequest creates or, when PriceGroupID is set, updates a price group.
type PriceGroupRequest struct {
	PriceGroupID *int   `json:"price_group_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Currency     string `json:"currency"`
}

// WarehouseRequest creates or updates a warehouse.
type WarehouseRequest struct {
	WarehouseID  *int   `json:"warehouse_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	StockEdition bool   `json:"stock_edition"`
}

// InventoryRequest creates or updates an inventory.
type InventoryRequest struct {
	InventoryID       *int     `json:"inventory_id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Languages         []string `json:"languages"`
	DefaultLanguage   string   `json:"default_language"`
	PriceGroups       []int    `json:"price_groups"`
	DefaultPriceGroup int      `json:"default_price_group"`
	Warehouses        []string `json:"warehouses"` // e.g. "bl_123"
	DefaultWarehouse  string   `json:"default_warehouse"`
	Reservations      bool     `json:"reservations"`
}

// CategoryRequest creates or updates a category.
type CategoryRequest struct {
	InventoryID *int   `json:"inventory_id"`
	CategoryID  *int   `json:"category_id"`
	Name        string `json:"name"`
	ParentID    int    `json:"parent_id"`
}

// ProductRequest creates or, when ProductID is set, updates a product.
type ProductRequest struct {
	InventoryID    int                       `json:"inventory_id"`
	ProductID      *string                   `json:"product_id"`
	ParentID       *string                   `json:"parent_id"`
	IsBundle       *bool                     `json:"is_bundle"`
	EAN            *string                   `json:"ean"`
	SKU            *string                   `json:"sku"`
	TaxRate        *float64                  `json:"tax_rate"`
	Weight         *float64                  `json:"weight"`
	Height         *float64                  `json:"height"`
	Width          *float64                  `json:"width"`
	Length         *float64                  `json:"length"`
	Star           *int                      `json:"star"`
	ManufacturerID *int                      `json:"manufacturer_id"`
	CategoryID     *int                      `json:"category_id"`
	Prices         map[string]float64        `json:"prices"`    // price group ID => price
	Stock          map[string]int            `json:"stock"`     // warehouse ID => quantity
	Locations      map[string]string         `json:"locations"` // warehouse ID => location
	TextFields     map[string]any            `json:"text_fields"`
	Images         []string                  `json:"images"`
	Links          map[string]map[string]any `json:"links"`
	BundleProducts map[string]int            `json:"bundle_products"`
}

// ProductsListRequest filters getInventoryProductsList.
type ProductsListRequest struct {
	InventoryID      int      `json:"inventory_id"`
	FilterID         *int     `json:"filter_id"`
	FilterCategoryID *int     `json:"filter_category_id"`
	FilterEAN        *string  `json:"filter_ean"`
	FilterSKU        *string  `json:"filter_sku"`
	FilterName       *string  `json:"filter_name"`
	FilterPriceFrom  *float64 `json:"filter_price_from"`
	FilterPriceTo    *float64 `json:"filter_price_to"`
	FilterStockFrom  *int     `json:"filter_stock_from"`
	FilterStockTo    *int     `json:"filter_stock_to"`
	Page             *int     `json:"page"`
	FilterSort       *string  `json:"filter_sort"`
}

// ProductLogsRequest filters getInventoryProductLogs.
type ProductLogsRequest struct {
	ProductID int     `json:"product_id"`
	DateFrom  *int64  `json:"date_from"` // unix timestamp
	DateTo    *int64  `json:"date_to"`
	LogType   []int   `json:"log_type"`
	Sort      *string `json:"sort"` // "ASC" or "DESC"
	Page      *int    `json:"page"`
}

// DocumentRequest creates an inventory document (goods receipt, issue, transfer).
type DocumentRequest struct {
	InventoryID       int              `json:"inventory_id"`
	SeriesID          *int             `json:"series_id"`
	Type              int              `json:"type"`
	WarehouseID       int              `json:"warehouse_id"`
	WarehouseIDTarget *int             `json:"warehouse_id_target"`
	Description       *string          `json:"description"`
	Items             []map[string]any `json:"items"`
}

// DocumentsRequest filters getInventoryDocuments.
type DocumentsRequest struct {
	InventoryID *int   `json:"inventory_id"`
	DocumentID  *int   `json:"document_id"`
	DateFrom    *int64 `json:"date_from"`
	DateTo      *int64 `json:"date_to"`
	Type        *int   `json:"type"`
	Page        *int   `json:"page"`
}

// ContractorRequest creates or updates a supplier or a payer.
type ContractorRequest struct {
	ID       *int    `json:"-"`
	Name     string  `json:"name"`
	Code     *string `json:"code"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Postcode *string `json:"postcode"`
	Country  *string `json:"country"`
	TaxID    *string `json:"tax_id"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

func (r *ContractorRequest) params(idKey string) Params {
	p := Params{
		idKey:      r.ID,
		"name":     r.Name,
		"code":     r.Code,
		"address":  r.Address,
		"city":     r.City,
		"postcode": r.Postcode,
		"country":  r.Country,
		"tax_id":   r.TaxID,
		"email":    r.Email,
		"phone":    r.Phone,
	}
	return p
}

// PurchaseOrdersRequest filters getInventoryPurchaseOrders.
type PurchaseOrdersRequest struct {
	OrderID    *int    `json:"order_id"`
	DateFrom   *int64  `json:"date_from"`
	DateTo     *int64  `json:"date_to"`
	IDFrom     *int    `json:"id_from"`
	SupplierID *int    `json:"supplier_id"`
	Status     *string `json:"status"`
	Page       *int    `json:"page"`
}

// PurchaseOrderRequest creates a purchase order.
type PurchaseOrderRequest struct {
	InventoryID          int              `json:"inventory_id"`
	SeriesID             *int             `json:"series_id"`
	SupplierID           int              `json:"supplier_id"`
	WarehouseID          int              `json:"warehouse_id"`
	Currency             string           `json:"currency"`
	Description          *string          `json:"description"`
	ExpectedDeliveryDate *int64           `json:"expected_delivery_date"`
	Items                []map[string]any `json:"items"`
}

// AddInventoryPriceGroup creates or updates a price group.
func (c *Catalog) AddInventoryPriceGroup(ctx context.Context, req *PriceGroupRequest) (Response, error) {
	return c.caller.Call(ctx, MethodAddInventoryPriceGroup, req)
}

// DeleteInventoryPriceGroup removes a price group.
func (c *Catalog) DeleteInventoryPriceGroup(ctx context.Context, priceGroupID int) (Response, error) {
	return c.caller.Call(ctx, MethodDeleteInventoryPriceGroup, Params{"price_group_id": priceGroupID})
}

// GetInventoryPriceGroups lists price groups.
func (c *Catalog) GetInventoryPriceGroups(ctx context.Context) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryPriceGroups, nil)
}

// AddInventoryWarehouse creates or updates a warehouse.
func (c *Catalog) AddInventoryWarehouse(ctx context.Context, req *WarehouseRequest) (Response, error) {
	return c.caller.Call(ctx, MethodAddInventoryWarehouse, req)
}

// DeleteInventoryWarehouse removes a warehouse.
func (c *Catalog) DeleteInventoryWarehouse(ctx context.Context, warehouseID int) (Response, error) {
	return c.caller.Call(ctx, MethodDeleteInventoryWarehouse, Params{"warehouse_id": warehouseID})
}

// GetInventoryWarehouses lists warehouses.
func (c *Catalog) GetInventoryWarehouses(ctx context.Context) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryWarehouses, nil)
}

// AddInventory creates or updates an inventory.
func (c *Catalog) AddInventory(ctx context.Context, req *InventoryRequest) (Response, error) {
	return c.caller.Call(ctx, MethodAddInventory, req)
}

// DeleteInventory removes an inventory.
func (c *Catalog) DeleteInventory(ctx context.Context, inventoryID int) (Response, error) {
	return c.caller.Call(ctx, MethodDeleteInventory, Params{"inventory_id": inventoryID})
}

// GetInventories lists inventories.
func (c *Catalog) GetInventories(ctx context.Context) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventories, nil)
}

// AddInventoryCategory creates or updates a category.
func (c *Catalog) AddInventoryCategory(ctx context.Context, req *CategoryRequest) (Response, error) {
	return c.caller.Call(ctx, MethodAddInventoryCategory, req)
}

// DeleteInventoryCategory removes a category.
func (c *Catalog) DeleteInventoryCategory(ctx context.Context, categoryID int) (Response, error) {
	return c.caller.Call(ctx, MethodDeleteInventoryCategory, Params{"category_id": categoryID})
}

// GetInventoryCategories lists categories, of every inventory when
// inventoryID is nil.
func (c *Catalog) GetInventoryCategories(ctx context.Context, inventoryID *int) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryCategories, Params{"inventory_id": inventoryID})
}

func (c *Catalog) GetInventoryTags(ctx context.Context) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryTags, nil)
}

// AddInventoryManufacturer creates or updates a manufacturer.
func (c *Catalog) AddInventoryManufacturer(ctx context.Context, manufacturerID *int, name string) (Response, error) {
	return c.caller.Call(ctx, MethodAddInventoryManufacturer, Params{
		"manufacturer_id": manufacturerID,
		"name":            name,
	})
}

func (c *Catalog) DeleteInventoryManufacturer(ctx context.Context, manufacturerID int) (Response, error) {
	return c.caller.Call(ctx, MethodDeleteInventoryManufacturer, Params{"manufacturer_id": manufacturerID})
}

func (c *Catalog) GetInventoryManufacturers(ctx context.Context) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryManufacturers, nil)
}

func (c *Catalog) GetInventoryExtraFields(ctx context.Context) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryExtraFields, nil)
}

// GetInventoryIntegrations lists the integrations whose text fields can be
// overwritten in the given inventory.
func (c *Catalog) GetInventoryIntegrations(ctx context.Context, inventoryID int) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryIntegrations, Params{"inventory_id": inventoryID})
}

func (c *Catalog) GetInventoryAvailableTextFieldKeys(ctx context.Context, inventoryID int) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryAvailableTextFieldKeys, Params{"inventory_id": inventoryID})
}

// AddInventoryProduct creates or updates a product or variant.
func (c *Catalog) AddInventoryProduct(ctx context.Context, req *ProductRequest) (Response, error) {
	return c.caller.Call(ctx, MethodAddInventoryProduct, req)
}

// DeleteInventoryProduct removes a product or variant.
func (c *Catalog) DeleteInventoryProduct(ctx context.Context, productID int) (Response, error) {
	return c.caller.Call(ctx, MethodDeleteInventoryProduct, Params{"product_id": productID})
}

// GetInventoryProductsData returns detailed data of selected products.
func (c *Catalog) GetInventoryProductsData(ctx context.Context, inventoryID int, productIDs []int) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryProductsData, Params{
		"inventory_id": inventoryID,
		"products":     productIDs,
	})
}

// GetInventoryProductsList returns a filtered, paginated product list.
func (c *Catalog) GetInventoryProductsList(ctx context.Context, req *ProductsListRequest) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryProductsList, req)
}

// GetInventoryProductsStock returns stock levels, 1000 products per page.
func (c *Catalog) GetInventoryProductsStock(ctx context.Context, inventoryID int, page *int) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryProductsStock, Params{
		"inventory_id": inventoryID,
		"page":         page,
	})
}

// UpdateInventoryProductsStock sets stock levels. products maps a product
// ID to warehouse ID => quantity.
func (c *Catalog) UpdateInventoryProductsStock(ctx context.Context, inventoryID int, products map[string]map[string]int) (Response, error) {
	return c.caller.Call(ctx, MethodUpdateInventoryProductsStock, Params{
		"inventory_id": inventoryID,
		"products":     products,
	})
}

// GetInventoryProductsPrices returns gross prices, 1000 products per page.
func (c *Catalog) GetInventoryProductsPrices(ctx context.Context, inventoryID int, page *int) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryProductsPrices, Params{
		"inventory_id": inventoryID,
		"page":         page,
	})
}

// UpdateInventoryProductsPrices sets prices. products maps a product ID to
// price group ID => price.
func (c *Catalog) UpdateInventoryProductsPrices(ctx context.Context, inventoryID int, products map[string]map[string]float64) (Response, error) {
	return c.caller.Call(ctx, MethodUpdateInventoryProductsPrices, Params{
		"inventory_id": inventoryID,
		"products":     products,
	})
}

// GetInventoryProductLogs returns the change log of a product.
func (c *Catalog) GetInventoryProductLogs(ctx context.Context, req *ProductLogsRequest) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryProductLogs, req)
}

// RunProductMacroTrigger runs a personal trigger for a product.
func (c *Catalog) RunProductMacroTrigger(ctx context.Context, productID, triggerID int) (Response, error) {
	return c.caller.Call(ctx, MethodRunProductMacroTrigger, Params{
		"product_id": productID,
		"trigger_id": triggerID,
	})
}

// AddInventoryDocument creates a document as a draft.
func (c *Catalog) AddInventoryDocument(ctx context.Context, req *DocumentRequest) (Response, error) {
	return c.caller.Call(ctx, MethodAddInventoryDocument, req)
}

// SetInventoryDocumentStatusConfirmed confirms a draft document.
func (c *Catalog) SetInventoryDocumentStatusConfirmed(ctx context.Context, documentID int) (Response, error) {
	return c.caller.Call(ctx, MethodSetInventoryDocumentStatusConfirmed, Params{"document_id": documentID})
}

func (c *Catalog) GetInventoryDocuments(ctx context.Context, req *DocumentsRequest) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryDocuments, req)
}

func (c *Catalog) GetInventoryDocumentItems(ctx context.Context, documentID int, page *int) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryDocumentItems, Params{
		"document_id": documentID,
		"page":        page,
	})
}

// AddInventoryDocumentItems appends items to a draft document.
func (c *Catalog) AddInventoryDocumentItems(ctx context.Context, documentID int, items []map[string]any) (Response, error) {
	return c.caller.Call(ctx, MethodAddInventoryDocumentItems, Params{
		"document_id": documentID,
		"items":       items,
	})
}

func (c *Catalog) GetInventoryDocumentSeries(ctx context.Context) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryDocumentSeries, nil)
}

func (c *Catalog) GetInventorySuppliers(ctx context.Context) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventorySuppliers, nil)
}

// AddInventorySupplier creates or, when req.ID is set, updates a supplier.
func (c *Catalog) AddInventorySupplier(ctx context.Context, req *ContractorRequest) (Response, error) {
	return c.caller.Call(ctx, MethodAddInventorySupplier, req.params("supplier_id"))
}

func (c *Catalog) DeleteInventorySupplier(ctx context.Context, supplierID int) (Response, error) {
	return c.caller.Call(ctx, MethodDeleteInventorySupplier, Params{"supplier_id": supplierID})
}

func (c *Catalog) GetInventoryPayers(ctx context.Context) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryPayers, nil)
}

// AddInventoryPayer creates or, when req.ID is set, updates a payer.
func (c *Catalog) AddInventoryPayer(ctx context.Context, req *ContractorRequest) (Response, error) {
	return c.caller.Call(ctx, MethodAddInventoryPayer, req.params("payer_id"))
}

func (c *Catalog) DeleteInventoryPayer(ctx context.Context, payerID int) (Response, error) {
	return c.caller.Call(ctx, MethodDeleteInventoryPayer, Params{"payer_id": payerID})
}

// GetInventoryPurchaseOrders lists purchase orders, 100 per page.
func (c *Catalog) GetInventoryPurchaseOrders(ctx context.Context, req *PurchaseOrdersRequest) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryPurchaseOrders, req)
}

func (c *Catalog) GetInventoryPurchaseOrderItems(ctx context.Context, orderID int, page *int) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryPurchaseOrderItems, Params{
		"order_id": orderID,
		"page":     page,
	})
}

func (c *Catalog) GetInventoryPurchaseOrderSeries(ctx context.Context) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryPurchaseOrderSeries, nil)
}

// AddInventoryPurchaseOrder creates a purchase order as a draft.
func (c *Catalog) AddInventoryPurchaseOrder(ctx context.Context, req *PurchaseOrderRequest) (Response, error) {
	return c.caller.Call(ctx, MethodAddInventoryPurchaseOrder, req)
}

func (c *Catalog) AddInventoryPurchaseOrderItems(ctx context.Context, orderID int, items []map[string]any) (Response, error) {
	return c.caller.Call(ctx, MethodAddInventoryPurchaseOrderItems, Params{
		"order_id": orderID,
		"items":    items,
	})
}

// SetInventoryPurchaseOrderStatus moves a purchase order to status.
func (c *Catalog) SetInventoryPurchaseOrderStatus(ctx context.Context, orderID int, status string) (Response, error) {
	return c.caller.Call(ctx, MethodSetInventoryPurchaseOrderStatus, Params{
		"order_id": orderID,
		"status":   status,
	})
}

func (c *Catalog) GetInventoryPrintoutTemplates(ctx context.Context) (Response, error) {
	return c.caller.Call(ctx, MethodGetInventoryPrintoutTemplates, nil)
}
