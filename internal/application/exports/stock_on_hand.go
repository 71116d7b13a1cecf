package exports

import (
	"context"

	"github.com/erp/exporter/internal/domain/export"
)

// StockOnHand is the inventory snapshot export.
var StockOnHand = Resource{
	Key:         "stock_on_hand",
	Category:    "inventory",
	Label:       "Stock on Hand",
	Description: "Inventory snapshot per product and warehouse",
	Dummy:       stockOnHandDummy,
	FromAPI:     stockOnHandFromAPI,
}

func stockOnHandDummy() export.Result {
	return export.Result{
		SheetName: "StockOnHand",
		Headers:   []string{"ProductCode", "WarehouseName", "QtyOnHand"},
		Rows: [][]any{
			{"P001", "Main Warehouse", 340},
			{"P002", "Main Warehouse", 120},
		},
	}
}

func stockOnHandFromAPI(ctx context.Context, deps Deps) (export.Result, error) {
	doc, err := deps.Fetch(ctx, "StockOnHand", nil)
	if err != nil {
		return export.Result{}, err
	}

	res := export.Result{
		SheetName: "StockOnHand",
		Headers: []string{
			"ProductCode",
			"ProductDescription",
			"ProductGuid",
			"WarehouseName",
			"WarehouseGuid",
			"QtyOnHand",
			"QtyAllocated",
			"QtyAvailable",
			"QtyOnPurchase",
			"QtyOnSalesOrder",
			"AvgLandCost",
			"TotalValue",
			"LastModifiedOn",
		},
	}

	for _, item := range export.Items(doc) {
		product := export.FieldOf(item["Product"])
		warehouse := export.FieldOf(item["Warehouse"])

		res.Row(
			product.Sub("ProductCode"),
			product.Object["ProductDescription"],
			product.Object["Guid"],
			warehouse.Sub("WarehouseName"),
			warehouse.Object["Guid"],
			item["QtyOnHand"],
			item["QtyAllocated"],
			item["QtyAvailable"],
			item["QtyOnPurchase"],
			item["QtyOnSalesOrder"],
			item["AvgLandCost"],
			item["TotalValue"],
			export.DotNetDate(item["LastModifiedOn"]),
		)
	}

	return res, nil
}
