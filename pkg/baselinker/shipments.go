package baselinker

import "context"

// Courier and package operation names.
const (
	MethodCreatePackage                   = "createPackage"
	MethodCreatePackageManual             = "createPackageManual"
	MethodGetCouriersList                 = "getCouriersList"
	MethodGetCourierFields                = "getCourierFields"
	MethodGetCourierServices              = "getCourierServices"
	MethodGetCourierAccounts              = "getCourierAccounts"
	MethodGetLabel                        = "getLabel"
	MethodGetProtocol                     = "getProtocol"
	MethodGetOrderPackages                = "getOrderPackages"
	MethodGetCourierPackagesStatusHistory = "getCourierPackagesStatusHistory"
	MethodDeleteCourierPackage            = "deleteCourierPackage"
	MethodRequestParcelPickup             = "requestParcelPickup"
	MethodGetRequestParcelPickupFields    = "getRequestParcelPickupFields"
)

// Shipments groups the courier and package operations.
type Shipments struct {
	caller Caller
}

// CourierField is one form field answer, as listed by getCourierFields.
// Multi-select checkboxes are sent as one CourierField per selected option.
type CourierField struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// CreatePackageRequest creates a shipment in the courier's system.
type CreatePackageRequest struct {
	OrderID     int              `json:"order_id"`
	CourierCode string           `json:"courier_code"`
	AccountID   *int             `json:"account_id"` // first account when nil
	Fields      []CourierField   `json:"fields"`
	Packages    []map[string]any `json:"packages"` // weight in kg, sizes in cm
}

// ManualPackageRequest attaches a shipment created outside Baselinker.
type ManualPackageRequest struct {
	OrderID        int    `json:"order_id"`
	CourierCode    string `json:"courier_code"`
	PackageNumber  string `json:"package_number"`
	PickupDate     int64  `json:"pickup_date"`
	ReturnShipment *bool  `json:"return_shipment"`
}

// CourierServicesRequest asks which services a courier offers for a package.
type CourierServicesRequest struct {
	CourierCode   string           `json:"courier_code"`
	PackageNumber *string          `json:"package_number"`
	AccountID     *int             `json:"account_id"`
	Fields        []CourierField   `json:"fields"`
	Packages      []map[string]any `json:"packages"`
}

// PackageRef identifies a package by Baselinker ID or by courier number.
// One of the two must be set.
type PackageRef struct {
	CourierCode   string  `json:"courier_code"`
	PackageID     *int    `json:"package_id"`
	PackageNumber *string `json:"package_number"`
}

// PackagesRequest selects several packages of one courier.
type PackagesRequest struct {
	CourierCode    string         `json:"courier_code"`
	PackageIDs     []int          `json:"package_ids"`
	PackageNumbers []string       `json:"package_numbers"`
	AccountID      *int           `json:"account_id"`
	Fields         []CourierField `json:"fields"`
}

// CreatePackage creates a shipment in the system of the selected courier.
func (s *Shipments) CreatePackage(ctx context.Context, req *CreatePackageRequest) (Response, error) {
	return s.caller.Call(ctx, MethodCreatePackage, req)
}

// CreatePackageManual records a shipment number created outside Baselinker.
func (s *Shipments) CreatePackageManual(ctx context.Context, req *ManualPackageRequest) (Response, error) {
	return s.caller.Call(ctx, MethodCreatePackageManual, req)
}

func (s *Shipments) GetCouriersList(ctx context.Context) (Response, error) {
	return s.caller.Call(ctx, MethodGetCouriersList, nil)
}

// GetCourierFields returns the form fields required to create a package.
func (s *Shipments) GetCourierFields(ctx context.Context, courierCode string) (Response, error) {
	return s.caller.Call(ctx, MethodGetCourierFields, Params{"courier_code": courierCode})
}

func (s *Shipments) GetCourierServices(ctx context.Context, req *CourierServicesRequest) (Response, error) {
	return s.caller.Call(ctx, MethodGetCourierServices, req)
}

func (s *Shipments) GetCourierAccounts(ctx context.Context, courierCode string) (Response, error) {
	return s.caller.Call(ctx, MethodGetCourierAccounts, Params{"courier_code": courierCode})
}

// GetLabel downloads the shipping label of a package.
func (s *Shipments) GetLabel(ctx context.Context, ref PackageRef) (Response, error) {
	return s.caller.Call(ctx, MethodGetLabel, ref)
}

// GetProtocol downloads the parcel handover protocol.
func (s *Shipments) GetProtocol(ctx context.Context, req *PackagesRequest) (Response, error) {
	return s.caller.Call(ctx, MethodGetProtocol, Params{
		"courier_code":    req.CourierCode,
		"package_ids":     req.PackageIDs,
		"package_numbers": req.PackageNumbers,
		"account_id":      req.AccountID,
	})
}

func (s *Shipments) GetOrderPackages(ctx context.Context, orderID int) (Response, error) {
	return s.caller.Call(ctx, MethodGetOrderPackages, Params{"order_id": orderID})
}

// GetCourierPackagesStatusHistory returns tracking history, at most 100
// packages per call.
func (s *Shipments) GetCourierPackagesStatusHistory(ctx context.Context, packageIDs []int) (Response, error) {
	return s.caller.Call(ctx, MethodGetCourierPackagesStatusHistory, Params{"package_ids": packageIDs})
}

// DeleteCourierPackage cancels a package. With force the package is removed
// from the order even when the courier API refuses the cancellation.
func (s *Shipments) DeleteCourierPackage(ctx context.Context, ref PackageRef, force *bool) (Response, error) {
	return s.caller.Call(ctx, MethodDeleteCourierPackage, Params{
		"courier_code":   ref.CourierCode,
		"package_id":     ref.PackageID,
		"package_number": ref.PackageNumber,
		"force_delete":   force,
	})
}

// RequestParcelPickup orders a courier pickup for the given packages.
func (s *Shipments) RequestParcelPickup(ctx context.Context, req *PackagesRequest) (Response, error) {
	return s.caller.Call(ctx, MethodRequestParcelPickup, req)
}

func (s *Shipments) GetRequestParcelPickupFields(ctx context.Context, courierCode string) (Response, error) {
	return s.caller.Call(ctx, MethodGetRequestParcelPickupFields, Params{"courier_code": courierCode})
}
