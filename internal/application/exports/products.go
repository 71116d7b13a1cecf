package exports

import (
	"context"

	"github.com/erp/exporter/internal/domain/export"
)

// Products is the product master export.
var Products = Resource{
	Key:         "products",
	Category:    "products",
	Label:       "Products",
	Description: "Product master, groups, and pricing",
	Dummy:       productsDummy,
	FromAPI:     productsFromAPI,
}

func productsDummy() export.Result {
	return export.Result{
		SheetName: "Products",
		Headers:   []string{"ProductCode", "ProductDescription", "Guid"},
		Rows: [][]any{
			{"P001", "Espresso Beans", "00000000-0000-0000-0000-000000000001"},
			{"P002", "Milk Powder", "00000000-0000-0000-0000-000000000002"},
		},
	}
}

func productsFromAPI(ctx context.Context, deps Deps) (export.Result, error) {
	doc, err := deps.Fetch(ctx, "Products", nil)
	if err != nil {
		return export.Result{}, err
	}

	res := export.Result{
		SheetName: "Products",
		Headers: []string{
			"ProductCode",
			"ProductDescription",
			"Barcode",
			"IsObsolete",
			"IsComponent",
			"DefaultPurchasePrice",
			"DefaultSellPrice",
			"AverageLandCost",
			"ProductGroup",
			"UnitOfMeasure",
			"Guid",
			"LastModifiedOn",
		},
	}

	for _, p := range export.Items(doc) {
		res.Row(
			p["ProductCode"],
			p["ProductDescription"],
			p["Barcode"],
			p["IsObsolete"],
			p["IsComponent"],
			p["DefaultPurchasePrice"],
			p["DefaultSellPrice"],
			p["AverageLandCost"],
			export.Relation(p, "ProductGroup", "GroupName"),
			export.Relation(p, "UnitOfMeasure", "Name"),
			p["Guid"],
			export.DotNetDate(p["LastModifiedOn"]),
		)
	}

	return res, nil
}
