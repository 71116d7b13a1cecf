package exports

import (
	"context"

	"github.com/erp/exporter/internal/domain/export"
)

// Warehouses is the warehouse master export. Address columns flatten the
// nested Address object; a missing address yields empty cells, not an error.
var Warehouses = Resource{
	Key:         "warehouses",
	Category:    "inventory",
	Label:       "Warehouses",
	Description: "Warehouse master data and addresses",
	Dummy:       warehousesDummy,
	FromAPI:     warehousesFromAPI,
}

func warehousesDummy() export.Result {
	return export.Result{
		SheetName: "Warehouses",
		Headers:   []string{"WarehouseCode", "WarehouseName", "Guid"},
		Rows: [][]any{
			{"MAIN", "Main Warehouse", "00000000-0000-0000-0000-000000000001"},
			{"CPT", "Cape Town", "00000000-0000-0000-0000-000000000002"},
		},
	}
}

func warehousesFromAPI(ctx context.Context, deps Deps) (export.Result, error) {
	doc, err := deps.Fetch(ctx, "Warehouses", nil)
	if err != nil {
		return export.Result{}, err
	}

	res := export.Result{
		SheetName: "Warehouses",
		Headers: []string{
			"WarehouseCode",
			"WarehouseName",
			"IsDefault",
			"IsObsolete",
			"StreetAddress",
			"Suburb",
			"City",
			"Region",
			"Country",
			"PostCode",
			"Guid",
			"LastModifiedOn",
		},
	}

	for _, w := range export.Items(doc) {
		// Address is only ever an object; a nil map indexes to nil cells.
		address := export.FieldOf(w["Address"]).Object
		res.Row(
			w["WarehouseCode"],
			w["WarehouseName"],
			w["IsDefault"],
			w["IsObsolete"],
			address["StreetAddress"],
			address["Suburb"],
			address["City"],
			address["Region"],
			address["Country"],
			address["PostCode"],
			w["Guid"],
			export.DotNetDate(w["LastModifiedOn"]),
		)
	}

	return res, nil
}
