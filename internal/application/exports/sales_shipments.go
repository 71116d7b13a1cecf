package exports

import (
	"context"

	"github.com/erp/exporter/internal/domain/export"
)

// SalesShipments is the dispatched shipment export.
var SalesShipments = Resource{
	Key:         "sales_shipments",
	Category:    "sales",
	Label:       "Sales Shipments",
	Description: "Shipments with carrier and tracking detail",
	Dummy:       salesShipmentsDummy,
	FromAPI:     salesShipmentsFromAPI,
}

func salesShipmentsDummy() export.Result {
	return export.Result{
		SheetName: "SalesShipments",
		Headers:   []string{"ShipmentNumber", "CustomerName", "ShipmentDate", "Guid"},
		Rows: [][]any{
			{"SS-1001", "Cafe Nero", nil, "00000000-0000-0000-0000-000000000001"},
			{"SS-1002", "Coffee Corner", nil, "00000000-0000-0000-0000-000000000002"},
		},
	}
}

func salesShipmentsFromAPI(ctx context.Context, deps Deps) (export.Result, error) {
	doc, err := deps.Fetch(ctx, "SalesShipments", nil)
	if err != nil {
		return export.Result{}, err
	}

	res := export.Result{
		SheetName: "SalesShipments",
		Headers: []string{
			"ShipmentNumber",
			"ShipmentDate",
			"ShipmentStatus",
			"SalesOrderNumber",
			"SalesOrderGuid",
			"CustomerName",
			"CustomerCode",
			"CustomerGuid",
			"WarehouseName",
			"WarehouseGuid",
			"Carrier",
			"TrackingNumber",
			"Guid",
			"LastModifiedOn",
		},
	}

	for _, s := range export.Items(doc) {
		customer := export.FieldOf(s["Customer"])
		warehouse := export.FieldOf(s["Warehouse"])
		salesOrder := export.FieldOf(s["SalesOrder"])

		res.Row(
			s["ShipmentNumber"],
			export.DotNetDate(s["ShipmentDate"]),
			s["ShipmentStatus"],
			salesOrder.Sub("OrderNumber"),
			salesOrder.Object["Guid"],
			customer.Sub("CustomerName"),
			customer.Object["CustomerCode"],
			customer.Object["Guid"],
			warehouse.Sub("WarehouseName"),
			warehouse.Object["Guid"],
			s["Carrier"],
			s["TrackingNumber"],
			s["Guid"],
			export.DotNetDate(s["LastModifiedOn"]),
		)
	}

	return res, nil
}
