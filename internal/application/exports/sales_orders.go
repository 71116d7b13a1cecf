package exports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/erp/exporter/internal/domain/export"
)

// SalesOrders is the sales order export. It is a join: one output row per
// (order, order-line) pair, with the order-level columns repeated on every
// line. An order with zero lines contributes no rows.
var SalesOrders = Resource{
	Key:         "sales_orders",
	Category:    "sales",
	Label:       "Sales Orders",
	Description: "Sales orders denormalized to line level",
	Dummy:       salesOrdersDummy,
	FromAPI:     salesOrdersFromAPI,
}

func salesOrdersDummy() export.Result {
	return export.Result{
		SheetName: "SalesOrders",
		Headers:   []string{"OrderNumber", "Customer", "Total", "Status"},
		Rows: [][]any{
			{"SO-1001", "Cafe Nero", decimal.NewFromFloat(2450.00), "Completed"},
			{"SO-1002", "Coffee Corner", decimal.NewFromFloat(1320.00), "Pending"},
		},
	}
}

func salesOrdersFromAPI(ctx context.Context, deps Deps) (export.Result, error) {
	doc, err := deps.Fetch(ctx, "SalesOrders", nil)
	if err != nil {
		return export.Result{}, err
	}

	res := export.Result{
		SheetName: "SalesOrders",
		Headers: []string{
			"OrderNumber",
			"OrderDate",
			"RequiredDate",
			"CompletedDate",
			"ReceivedDate",
			"OrderStatus",
			"CustomerName",
			"CustomerGuid",
			"CustomerRef",
			"Warehouse",
			"WarehouseGuid",
			"Currency",
			"ExchangeRate",
			"SubTotal",
			"TaxTotal",
			"Total",
			"OrderGuid",
			"LastModifiedOn",
			"LineNumber",
			"ProductCode",
			"ProductDescription",
			"ProductGuid",
			"DueDate",
			"OrderQuantity",
			"UnitPrice",
			"LineTotal",
			"LineTax",
			"LineGuid",
			"LineLastModifiedOn",
		},
	}

	for _, order := range export.Items(doc) {
		customer := export.FieldOf(order["Customer"])
		warehouse := export.FieldOf(order["Warehouse"])

		for _, line := range export.Objects(order, "SalesOrderLines") {
			product := export.FieldOf(line["Product"])

			res.Row(
				order["OrderNumber"],
				export.DotNetDate(order["OrderDate"]),
				export.DotNetDate(order["RequiredDate"]),
				export.DotNetDate(order["CompletedDate"]),
				export.DotNetDate(order["ReceivedDate"]),
				order["OrderStatus"],
				customer.Sub("CustomerName"),
				customer.Object["Guid"],
				order["CustomerRef"],
				warehouse.Sub("WarehouseName"),
				warehouse.Object["Guid"],
				export.Relation(order, "Currency", "CurrencyCode"),
				order["ExchangeRate"],
				order["SubTotal"],
				order["TaxTotal"],
				order["Total"],
				order["Guid"],
				export.DotNetDate(order["LastModifiedOn"]),
				line["LineNumber"],
				product.Sub("ProductCode"),
				product.Object["ProductDescription"],
				product.Object["Guid"],
				export.DotNetDate(line["DueDate"]),
				line["OrderQuantity"],
				line["UnitPrice"],
				line["LineTotal"],
				line["LineTax"],
				line["Guid"],
				export.DotNetDate(line["LastModifiedOn"]),
			)
		}
	}

	return res, nil
}
