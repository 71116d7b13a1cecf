package exports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/erp/exporter/internal/domain/export"
)

// Invoices is the sales invoice export.
var Invoices = Resource{
	Key:         "invoices",
	Category:    "sales",
	Label:       "Invoices",
	Description: "Sales invoices with order and warehouse references",
	Dummy:       invoicesDummy,
	FromAPI:     invoicesFromAPI,
}

func invoicesDummy() export.Result {
	return export.Result{
		SheetName: "Invoices",
		Headers:   []string{"InvoiceNumber", "CustomerName", "InvoiceDate", "Total", "Guid"},
		Rows: [][]any{
			{"INV-1001", "Cafe Nero", nil, decimal.NewFromFloat(2450.00), "00000000-0000-0000-0000-000000000001"},
			{"INV-1002", "Coffee Corner", nil, decimal.NewFromFloat(1320.00), "00000000-0000-0000-0000-000000000002"},
		},
	}
}

func invoicesFromAPI(ctx context.Context, deps Deps) (export.Result, error) {
	doc, err := deps.Fetch(ctx, "Invoices", nil)
	if err != nil {
		return export.Result{}, err
	}

	res := export.Result{
		SheetName: "Invoices",
		Headers: []string{
			"InvoiceNumber",
			"InvoiceDate",
			"DueDate",
			"Status",
			"CustomerName",
			"CustomerCode",
			"CustomerGuid",
			"Currency",
			"ExchangeRate",
			"SubTotal",
			"TaxTotal",
			"Total",
			"SalesOrderNumber",
			"SalesOrderGuid",
			"WarehouseName",
			"WarehouseGuid",
			"Guid",
			"LastModifiedOn",
		},
	}

	for _, inv := range export.Items(doc) {
		customer := export.FieldOf(inv["Customer"])
		salesOrder := export.FieldOf(inv["SalesOrder"])
		warehouse := export.FieldOf(inv["Warehouse"])

		res.Row(
			inv["InvoiceNumber"],
			export.DotNetDate(inv["InvoiceDate"]),
			export.DotNetDate(inv["DueDate"]),
			inv["Status"],
			customer.Sub("CustomerName"),
			customer.Object["CustomerCode"],
			customer.Object["Guid"],
			export.Relation(inv, "Currency", "CurrencyCode"),
			inv["ExchangeRate"],
			inv["SubTotal"],
			inv["TaxTotal"],
			inv["Total"],
			salesOrder.Sub("OrderNumber"),
			salesOrder.Object["Guid"],
			warehouse.Sub("WarehouseName"),
			warehouse.Object["Guid"],
			inv["Guid"],
			export.DotNetDate(inv["LastModifiedOn"]),
		)
	}

	return res, nil
}
