package exports

import (
	"context"

	"github.com/erp/exporter/internal/domain/export"
)

// Suppliers is the supplier master export.
var Suppliers = Resource{
	Key:         "suppliers",
	Category:    "purchasing",
	Label:       "Suppliers",
	Description: "Supplier master data",
	Dummy:       suppliersDummy,
	FromAPI:     suppliersFromAPI,
}

func suppliersDummy() export.Result {
	return export.Result{
		SheetName: "Suppliers",
		Headers:   []string{"SupplierCode", "SupplierName", "Email"},
		Rows: [][]any{
			{"SUP001", "Bean Importers Ltd", "orders@beanimporters.com"},
			{"SUP002", "Packaging Co", "sales@packagingco.com"},
		},
	}
}

func suppliersFromAPI(ctx context.Context, deps Deps) (export.Result, error) {
	doc, err := deps.Fetch(ctx, "Suppliers", nil)
	if err != nil {
		return export.Result{}, err
	}

	res := export.Result{
		SheetName: "Suppliers",
		Headers: []string{
			"SupplierCode",
			"SupplierName",
			"Email",
			"PhoneNumber",
			"MobileNumber",
			"Website",
			"SupplierRef",
			"Currency",
			"Guid",
			"LastModifiedOn",
		},
	}

	for _, s := range export.Items(doc) {
		res.Row(
			s["SupplierCode"],
			s["SupplierName"],
			s["Email"],
			s["PhoneNumber"],
			s["MobileNumber"],
			s["Website"],
			s["SupplierRef"],
			export.Relation(s, "Currency", "CurrencyCode"),
			s["Guid"],
			export.DotNetDate(s["LastModifiedOn"]),
		)
	}

	return res, nil
}
