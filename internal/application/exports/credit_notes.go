package exports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/erp/exporter/internal/domain/export"
)

// CreditNotes is the credit note export.
var CreditNotes = Resource{
	Key:         "credit_notes",
	Category:    "sales",
	Label:       "Credit Notes",
	Description: "Credit notes with order and invoice references",
	Dummy:       creditNotesDummy,
	FromAPI:     creditNotesFromAPI,
}

func creditNotesDummy() export.Result {
	return export.Result{
		SheetName: "CreditNotes",
		Headers:   []string{"CreditNoteNumber", "CustomerName", "CreditNoteDate", "Total", "Guid"},
		Rows: [][]any{
			{"CN-1001", "Cafe Nero", nil, decimal.NewFromFloat(250.00), "00000000-0000-0000-0000-000000000001"},
			{"CN-1002", "Coffee Corner", nil, decimal.NewFromFloat(120.00), "00000000-0000-0000-0000-000000000002"},
		},
	}
}

func creditNotesFromAPI(ctx context.Context, deps Deps) (export.Result, error) {
	doc, err := deps.Fetch(ctx, "CreditNotes", nil)
	if err != nil {
		return export.Result{}, err
	}

	res := export.Result{
		SheetName: "CreditNotes",
		Headers: []string{
			"CreditNoteNumber",
			"CreditNoteDate",
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
			"InvoiceNumber",
			"InvoiceGuid",
			"Guid",
			"LastModifiedOn",
		},
	}

	for _, cn := range export.Items(doc) {
		customer := export.FieldOf(cn["Customer"])
		salesOrder := export.FieldOf(cn["SalesOrder"])
		invoice := export.FieldOf(cn["Invoice"])

		res.Row(
			cn["CreditNoteNumber"],
			export.DotNetDate(cn["CreditNoteDate"]),
			cn["Status"],
			customer.Sub("CustomerName"),
			customer.Object["CustomerCode"],
			customer.Object["Guid"],
			export.Relation(cn, "Currency", "CurrencyCode"),
			cn["ExchangeRate"],
			cn["SubTotal"],
			cn["TaxTotal"],
			cn["Total"],
			salesOrder.Sub("OrderNumber"),
			salesOrder.Object["Guid"],
			invoice.Sub("InvoiceNumber"),
			invoice.Object["Guid"],
			cn["Guid"],
			export.DotNetDate(cn["LastModifiedOn"]),
		)
	}

	return res, nil
}
