package baselinker

import (
	"encoding/json"
	"sort"
)

// Group names the resource family an operation belongs to.
type Group string

const (
	GroupCatalog         Group = "catalog"
	GroupOrders          Group = "orders"
	GroupShipments       Group = "shipments"
	GroupExternalStorage Group = "external_storage"
)

// Operation describes one remote operation known to the client.
type Operation struct {
	Name  string `json:"name"`
	Group Group  `json:"group"`
}

var operations = map[string]Group{
	// Catalog: price groups, warehouses, inventories
	MethodAddInventoryPriceGroup:    GroupCatalog,
	MethodDeleteInventoryPriceGroup: GroupCatalog,
	MethodGetInventoryPriceGroups:   GroupCatalog,
	MethodAddInventoryWarehouse:     GroupCatalog,
	MethodDeleteInventoryWarehouse:  GroupCatalog,
	MethodGetInventoryWarehouses:    GroupCatalog,
	MethodAddInventory:              GroupCatalog,
	MethodDeleteInventory:           GroupCatalog,
	MethodGetInventories:            GroupCatalog,

	// Catalog: categories, tags, manufacturers, metadata
	MethodAddInventoryCategory:               GroupCatalog,
	MethodDeleteInventoryCategory:            GroupCatalog,
	MethodGetInventoryCategories:             GroupCatalog,
	MethodGetInventoryTags:                   GroupCatalog,
	MethodAddInventoryManufacturer:           GroupCatalog,
	MethodDeleteInventoryManufacturer:        GroupCatalog,
	MethodGetInventoryManufacturers:          GroupCatalog,
	MethodGetInventoryExtraFields:            GroupCatalog,
	MethodGetInventoryIntegrations:           GroupCatalog,
	MethodGetInventoryAvailableTextFieldKeys: GroupCatalog,

	// Catalog: products
	MethodAddInventoryProduct:           GroupCatalog,
	MethodDeleteInventoryProduct:        GroupCatalog,
	MethodGetInventoryProductsData:      GroupCatalog,
	MethodGetInventoryProductsList:      GroupCatalog,
	MethodGetInventoryProductsStock:     GroupCatalog,
	MethodUpdateInventoryProductsStock:  GroupCatalog,
	MethodGetInventoryProductsPrices:    GroupCatalog,
	MethodUpdateInventoryProductsPrices: GroupCatalog,
	MethodGetInventoryProductLogs:       GroupCatalog,
	MethodRunProductMacroTrigger:        GroupCatalog,

	// Catalog: documents
	MethodAddInventoryDocument:                GroupCatalog,
	MethodSetInventoryDocumentStatusConfirmed: GroupCatalog,
	MethodGetInventoryDocuments:               GroupCatalog,
	MethodGetInventoryDocumentItems:           GroupCatalog,
	MethodAddInventoryDocumentItems:           GroupCatalog,
	MethodGetInventoryDocumentSeries:          GroupCatalog,

	// Catalog: suppliers, payers, purchase orders, printouts
	MethodGetInventorySuppliers:            GroupCatalog,
	MethodAddInventorySupplier:             GroupCatalog,
	MethodDeleteInventorySupplier:          GroupCatalog,
	MethodGetInventoryPayers:               GroupCatalog,
	MethodAddInventoryPayer:                GroupCatalog,
	MethodDeleteInventoryPayer:             GroupCatalog,
	MethodGetInventoryPurchaseOrders:       GroupCatalog,
	MethodGetInventoryPurchaseOrderItems:   GroupCatalog,
	MethodGetInventoryPurchaseOrderSeries:  GroupCatalog,
	MethodAddInventoryPurchaseOrder:        GroupCatalog,
	MethodAddInventoryPurchaseOrderItems:   GroupCatalog,
	MethodSetInventoryPurchaseOrderStatus:  GroupCatalog,
	MethodGetInventoryPrintoutTemplates:    GroupCatalog,

	// Orders
	MethodGetJournalList:             GroupOrders,
	MethodAddOrder:                   GroupOrders,
	MethodGetOrderSources:            GroupOrders,
	MethodGetOrderExtraFields:        GroupOrders,
	MethodGetOrders:                  GroupOrders,
	MethodGetOrderTransactionDetails: GroupOrders,
	MethodGetOrdersByEmail:           GroupOrders,
	MethodGetOrdersByPhone:           GroupOrders,
	MethodAddInvoice:                 GroupOrders,
	MethodGetInvoices:                GroupOrders,
	MethodGetSeries:                  GroupOrders,
	MethodGetOrderStatusList:         GroupOrders,
	MethodGetOrderPaymentsHistory:    GroupOrders,
	MethodGetNewReceipts:             GroupOrders,
	MethodGetReceipt:                 GroupOrders,
	MethodSetOrderFields:             GroupOrders,
	MethodAddOrderProduct:            GroupOrders,
	MethodSetOrderProductFields:      GroupOrders,
	MethodDeleteOrderProduct:         GroupOrders,
	MethodSetOrderPayment:            GroupOrders,
	MethodSetOrderStatus:             GroupOrders,
	MethodSetOrderStatuses:           GroupOrders,
	MethodSetOrderReceipt:            GroupOrders,
	MethodAddOrderInvoiceFile:        GroupOrders,
	MethodAddOrderReceiptFile:        GroupOrders,
	MethodGetInvoiceFile:             GroupOrders,
	MethodRunOrderMacroTrigger:       GroupOrders,

	// Shipments
	MethodCreatePackage:                   GroupShipments,
	MethodCreatePackageManual:             GroupShipments,
	MethodGetCouriersList:                 GroupShipments,
	MethodGetCourierFields:                GroupShipments,
	MethodGetCourierServices:              GroupShipments,
	MethodGetCourierAccounts:              GroupShipments,
	MethodGetLabel:                        GroupShipments,
	MethodGetProtocol:                     GroupShipments,
	MethodGetOrderPackages:                GroupShipments,
	MethodGetCourierPackagesStatusHistory: GroupShipments,
	MethodDeleteCourierPackage:            GroupShipments,
	MethodRequestParcelPickup:             GroupShipments,
	MethodGetRequestParcelPickupFields:    GroupShipments,

	// External storages
	MethodGetExternalStoragesList:               GroupExternalStorage,
	MethodGetExternalStorageCategories:          GroupExternalStorage,
	MethodGetExternalStorageProductsData:        GroupExternalStorage,
	MethodGetExternalStorageProductsList:        GroupExternalStorage,
	MethodGetExternalStorageProductsQuantity:    GroupExternalStorage,
	MethodGetExternalStorageProductsPrices:      GroupExternalStorage,
	MethodUpdateExternalStorageProductsQuantity: GroupExternalStorage,
}

// Operations returns every known operation sorted by group, then name.
func Operations() []Operation {
	out := make([]Operation, 0, len(operations))
	for name, group := range operations {
		out = append(out, Operation{Name: name, Group: group})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// IsKnownOperation reports whether name is a known remote operation.
func IsKnownOperation(name string) bool {
	_, ok := operations[name]
	return ok
}

// Ptr returns a pointer to v, for filling optional request fields.
func Ptr[T any](v T) *T {
	return &v
}

func marshalTuple(values ...any) ([]byte, error) {
	return json.Marshal(values)
}
