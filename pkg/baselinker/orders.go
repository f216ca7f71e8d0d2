package baselinker

import "context"

// Order operation names.
const (
	MethodGetJournalList             = "getJournalList"
	MethodAddOrder                   = "addOrder"
	MethodGetOrderSources            = "getOrderSources"
	MethodGetOrderExtraFields        = "getOrderExtraFields"
	MethodGetOrders                  = "getOrders"
	MethodGetOrderTransactionDetails = "getOrderTransactionDetails"
	MethodGetOrdersByEmail           = "getOrdersByEmail"
	MethodGetOrdersByPhone           = "getOrdersByPhone"
	MethodAddInvoice                 = "addInvoice"
	MethodGetInvoices                = "getInvoices"
	MethodGetSeries                  = "getSeries"
	MethodGetOrderStatusList         = "getOrderStatusList"
	MethodGetOrderPaymentsHistory    = "getOrderPaymentsHistory"
	MethodGetNewReceipts             = "getNewReceipts"
	MethodGetReceipt                 = "getReceipt"
	MethodSetOrderFields             = "setOrderFields"
	MethodAddOrderProduct            = "addOrderProduct"
	MethodSetOrderProductFields      = "setOrderProductFields"
	MethodDeleteOrderProduct         = "deleteOrderProduct"
	MethodSetOrderPayment            = "setOrderPayment"
	MethodSetOrderStatus             = "setOrderStatus"
	MethodSetOrderStatuses           = "setOrderStatuses"
	MethodSetOrderReceipt            = "setOrderReceipt"
	MethodAddOrderInvoiceFile        = "addOrderInvoiceFile"
	MethodAddOrderReceiptFile        = "addOrderReceiptFile"
	MethodGetInvoiceFile             = "getInvoiceFile"
	MethodRunOrderMacroTrigger       = "runOrderMacroTrigger"
)

// Orders groups the order management operations.
type Orders struct {
	caller Caller
}

// OrderCustomer holds the buyer, delivery and invoice fields shared by
// addOrder and setOrderFields. Nil fields are left out of the request.
type OrderCustomer struct {
	PaymentMethod    *string `json:"payment_method"`
	PaymentMethodCOD *bool   `json:"payment_method_cod"`
	UserComments     *string `json:"user_comments"`
	AdminComments    *string `json:"admin_comments"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	UserLogin        *string `json:"user_login"`

	DeliveryMethod        *string  `json:"delivery_method"`
	DeliveryPrice         *float64 `json:"delivery_price"`
	DeliveryFullname      *string  `json:"delivery_fullname"`
	DeliveryCompany       *string  `json:"delivery_company"`
	DeliveryAddress       *string  `json:"delivery_address"`
	DeliveryPostcode      *string  `json:"delivery_postcode"`
	DeliveryCity          *string  `json:"delivery_city"`
	DeliveryState         *string  `json:"delivery_state"`
	DeliveryCountryCode   *string  `json:"delivery_country_code"`
	DeliveryPointID       *string  `json:"delivery_point_id"`
	DeliveryPointName     *string  `json:"delivery_point_name"`
	DeliveryPointAddress  *string  `json:"delivery_point_address"`
	DeliveryPointPostcode *string  `json:"delivery_point_postcode"`
	DeliveryPointCity     *string  `json:"delivery_point_city"`

	InvoiceFullname    *string `json:"invoice_fullname"`
	InvoiceCompany     *string `json:"invoice_company"`
	InvoiceNIP         *string `json:"invoice_nip"`
	InvoiceAddress     *string `json:"invoice_address"`
	InvoicePostcode    *string `json:"invoice_postcode"`
	InvoiceCity        *string `json:"invoice_city"`
	InvoiceState       *string `json:"invoice_state"`
	InvoiceCountryCode *string `json:"invoice_country_code"`
	WantInvoice        *bool   `json:"want_invoice"`

	ExtraField1       *string        `json:"extra_field_1"`
	ExtraField2       *string        `json:"extra_field_2"`
	CustomExtraFields map[string]any `json:"custom_extra_fields"`
}

// OrderProduct is one line of an order.
type OrderProduct struct {
	Storage     *string  `json:"storage"` // "db", "shop" or "warehouse"
	StorageID   *int     `json:"storage_id"`
	ProductID   *string  `json:"product_id"`
	VariantID   *int     `json:"variant_id"`
	AuctionID   *string  `json:"auction_id"`
	Name        *string  `json:"name"`
	SKU         *string  `json:"sku"`
	EAN         *string  `json:"ean"`
	Location    *string  `json:"location"`
	WarehouseID *int     `json:"warehouse_id"`
	Attributes  *string  `json:"attributes"`
	PriceBrutto *float64 `json:"price_brutto"`
	TaxRate     *float64 `json:"tax_rate"`
	Quantity    *int     `json:"quantity"`
	Weight      *float64 `json:"weight"`
}

// AddOrderRequest creates an order.
type AddOrderRequest struct {
	OrderStatusID  int            `json:"order_status_id"`
	CustomSourceID *int           `json:"custom_source_id"`
	DateAdd        int64          `json:"date_add"` // unix timestamp
	Currency       string         `json:"currency"`
	Paid           bool           `json:"paid"`
	Products       []OrderProduct `json:"products"`
	OrderCustomer
}

// SetOrderFieldsRequest edits selected fields of an existing order.
type SetOrderFieldsRequest struct {
	OrderID   int  `json:"order_id"`
	PickState *int `json:"pick_state"`
	PackState *int `json:"pack_state"`
	OrderCustomer
}

// OrderProductRequest adds a product to an order, or edits an order
// product when OrderProductID is set.
type OrderProductRequest struct {
	OrderID        int  `json:"order_id"`
	OrderProductID *int `json:"order_product_id"`
	OrderProduct
}

// JournalRequest filters getJournalList.
type JournalRequest struct {
	LastLogID int   `json:"last_log_id"`
	LogsTypes []int `json:"logs_types"`
	OrderID   *int  `json:"order_id"`
}

// OrdersRequest filters getOrders. At most 100 orders are returned.
type OrdersRequest struct {
	OrderID                  *int    `json:"order_id"`
	DateConfirmedFrom        *int64  `json:"date_confirmed_from"`
	DateFrom                 *int64  `json:"date_from"`
	IDFrom                   *int    `json:"id_from"`
	GetUnconfirmedOrders     *bool   `json:"get_unconfirmed_orders"`
	IncludeCustomExtraFields *bool   `json:"include_custom_extra_fields"`
	StatusID                 *int    `json:"status_id"`
	FilterEmail              *string `json:"filter_email"`
	FilterOrderSource        *string `json:"filter_order_source"`
	FilterOrderSourceID      *int    `json:"filter_order_source_id"`
}

// InvoicesRequest filters getInvoices.
type InvoicesRequest struct {
	InvoiceID           *int   `json:"invoice_id"`
	OrderID             *int   `json:"order_id"`
	DateFrom            *int64 `json:"date_from"`
	IDFrom              *int   `json:"id_from"`
	SeriesID            *int   `json:"series_id"`
	GetExternalInvoices *bool  `json:"get_external_invoices"`
}

// PaymentRequest records a payment on an order.
type PaymentRequest struct {
	OrderID           int     `json:"order_id"`
	PaymentDone       float64 `json:"payment_done"`
	PaymentDate       int64   `json:"payment_date"`
	PaymentComment    string  `json:"payment_comment"`
	ExternalPaymentID *string `json:"external_payment_id"`
}

// ReceiptRequest marks a receipt as printed.
type ReceiptRequest struct {
	ReceiptID    int     `json:"receipt_id"`
	ReceiptNr    string  `json:"receipt_nr"`
	Date         int64   `json:"date"`
	PrinterError *bool   `json:"printer_error"`
	PrinterName  *string `json:"printer_name"`
}

// GetJournalList returns the order event log of the last three days.
func (o *Orders) GetJournalList(ctx context.Context, req *JournalRequest) (Response, error) {
	return o.caller.Call(ctx, MethodGetJournalList, req)
}

// AddOrder creates an order.
func (o *Orders) AddOrder(ctx context.Context, req *AddOrderRequest) (Response, error) {
	return o.caller.Call(ctx, MethodAddOrder, req)
}

func (o *Orders) GetOrderSources(ctx context.Context) (Response, error) {
	return o.caller.Call(ctx, MethodGetOrderSources, nil)
}

func (o *Orders) GetOrderExtraFields(ctx context.Context) (Response, error) {
	return o.caller.Call(ctx, MethodGetOrderExtraFields, nil)
}

// GetOrders returns orders matching req. A nil req lists confirmed orders
// from the last days.
func (o *Orders) GetOrders(ctx context.Context, req *OrdersRequest) (Response, error) {
	if req == nil {
		req = &OrdersRequest{}
	}
	return o.caller.Call(ctx, MethodGetOrders, req)
}

func (o *Orders) GetOrderTransactionDetails(ctx context.Context, orderID int) (Response, error) {
	return o.caller.Call(ctx, MethodGetOrderTransactionDetails, Params{"order_id": orderID})
}

func (o *Orders) GetOrdersByEmail(ctx context.Context, email string) (Response, error) {
	return o.caller.Call(ctx, MethodGetOrdersByEmail, Params{"email": email})
}

func (o *Orders) GetOrdersByPhone(ctx context.Context, phone string) (Response, error) {
	return o.caller.Call(ctx, MethodGetOrdersByPhone, Params{"phone": phone})
}

// AddInvoice issues an invoice for an order. vatRate is "DEFAULT", "ZW",
// "NP" or a number; nil keeps the series default.
func (o *Orders) AddInvoice(ctx context.Context, orderID, seriesID int, vatRate *string) (Response, error) {
	return o.caller.Call(ctx, MethodAddInvoice, Params{
		"order_id":  orderID,
		"series_id": seriesID,
		"vat_rate":  vatRate,
	})
}

func (o *Orders) GetInvoices(ctx context.Context, req *InvoicesRequest) (Response, error) {
	if req == nil {
		req = &InvoicesRequest{}
	}
	return o.caller.Call(ctx, MethodGetInvoices, req)
}

// GetSeries lists invoice and receipt numbering series.
func (o *Orders) GetSeries(ctx context.Context) (Response, error) {
	return o.caller.Call(ctx, MethodGetSeries, nil)
}

func (o *Orders) GetOrderStatusList(ctx context.Context) (Response, error) {
	return o.caller.Call(ctx, MethodGetOrderStatusList, nil)
}

// GetOrderPaymentsHistory returns payment changes of an order. With
// showFullHistory false only the latest entry is returned.
func (o *Orders) GetOrderPaymentsHistory(ctx context.Context, orderID int, showFullHistory *bool) (Response, error) {
	return o.caller.Call(ctx, MethodGetOrderPaymentsHistory, Params{
		"order_id":          orderID,
		"show_full_history": showFullHistory,
	})
}

// GetNewReceipts returns receipts waiting to be printed.
func (o *Orders) GetNewReceipts(ctx context.Context, seriesID, idFrom *int) (Response, error) {
	return o.caller.Call(ctx, MethodGetNewReceipts, Params{
		"series_id": seriesID,
		"id_from":   idFrom,
	})
}

// GetReceipt returns one receipt, looked up by order or receipt ID.
func (o *Orders) GetReceipt(ctx context.Context, orderID, receiptID *int) (Response, error) {
	return o.caller.Call(ctx, MethodGetReceipt, Params{
		"order_id":   orderID,
		"receipt_id": receiptID,
	})
}

// SetOrderFields edits order fields. Only non-nil fields are changed.
func (o *Orders) SetOrderFields(ctx context.Context, req *SetOrderFieldsRequest) (Response, error) {
	return o.caller.Call(ctx, MethodSetOrderFields, req)
}

func (o *Orders) AddOrderProduct(ctx context.Context, req *OrderProductRequest) (Response, error) {
	return o.caller.Call(ctx, MethodAddOrderProduct, req)
}

// SetOrderProductFields edits an order product; req.OrderProductID is required.
func (o *Orders) SetOrderProductFields(ctx context.Context, req *OrderProductRequest) (Response, error) {
	return o.caller.Call(ctx, MethodSetOrderProductFields, req)
}

func (o *Orders) DeleteOrderProduct(ctx context.Context, orderID, orderProductID int) (Response, error) {
	return o.caller.Call(ctx, MethodDeleteOrderProduct, Params{
		"order_id":         orderID,
		"order_product_id": orderProductID,
	})
}

// SetOrderPayment records the total amount paid for an order.
func (o *Orders) SetOrderPayment(ctx context.Context, req *PaymentRequest) (Response, error) {
	return o.caller.Call(ctx, MethodSetOrderPayment, req)
}

func (o *Orders) SetOrderStatus(ctx context.Context, orderID, statusID int) (Response, error) {
	return o.caller.Call(ctx, MethodSetOrderStatus, Params{
		"order_id":  orderID,
		"status_id": statusID,
	})
}

// SetOrderStatuses moves several orders to one status.
func (o *Orders) SetOrderStatuses(ctx context.Context, orderIDs []int, statusID int) (Response, error) {
	return o.caller.Call(ctx, MethodSetOrderStatuses, Params{
		"order_ids": orderIDs,
		"status_id": statusID,
	})
}

func (o *Orders) SetOrderReceipt(ctx context.Context, req *ReceiptRequest) (Response, error) {
	return o.caller.Call(ctx, MethodSetOrderReceipt, req)
}

// AddOrderInvoiceFile attaches an external PDF to an invoice. file is
// "data:" followed by base64 content, or "url:" followed by a link.
func (o *Orders) AddOrderInvoiceFile(ctx context.Context, invoiceID int, file, externalInvoiceNumber string) (Response, error) {
	return o.caller.Call(ctx, MethodAddOrderInvoiceFile, Params{
		"invoice_id":              invoiceID,
		"file":                    file,
		"external_invoice_number": externalInvoiceNumber,
	})
}

// AddOrderReceiptFile attaches an external PDF to a receipt.
func (o *Orders) AddOrderReceiptFile(ctx context.Context, receiptID int, file, externalReceiptNumber string) (Response, error) {
	return o.caller.Call(ctx, MethodAddOrderReceiptFile, Params{
		"receipt_id":              receiptID,
		"file":                    file,
		"external_receipt_number": externalReceiptNumber,
	})
}

func (o *Orders) GetInvoiceFile(ctx context.Context, invoiceID int) (Response, error) {
	return o.caller.Call(ctx, MethodGetInvoiceFile, Params{"invoice_id": invoiceID})
}

// RunOrderMacroTrigger runs a personal trigger for an order.
func (o *Orders) RunOrderMacroTrigger(ctx context.Context, orderID, triggerID int) (Response, error) {
	return o.caller.Call(ctx, MethodRunOrderMacroTrigger, Params{
		"order_id":   orderID,
		"trigger_id": triggerID,
	})
}
