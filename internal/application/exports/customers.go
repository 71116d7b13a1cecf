package exports

import (
	"context"

	"github.com/erp/exporter/internal/domain/export"
)

// Customers is the customer master export.
var Customers = Resource{
	Key:         "customers",
	Category:    "customers",
	Label:       "Customers",
	Description: "Customer master data and segmentation",
	Dummy:       customersDummy,
	FromAPI:     customersFromAPI,
}

func customersDummy() export.Result {
	return export.Result{
		SheetName: "Customers",
		Headers:   []string{"CustomerCode", "CustomerName", "Email"},
		Rows: [][]any{
			{"CUST001", "Cafe Nero", "accounts@cafenero.com"},
			{"CUST002", "Coffee Corner", "admin@coffeecorner.com"},
		},
	}
}

func customersFromAPI(ctx context.Context, deps Deps) (export.Result, error) {
	doc, err := deps.Fetch(ctx, "Customers", nil)
	if err != nil {
		return export.Result{}, err
	}

	res := export.Result{
		SheetName: "Customers",
		Headers: []string{
			"CustomerCode",
			"CustomerName",
			"CustomerType",
			"Email",
			"PhoneNumber",
			"MobileNumber",
			"Website",
			"CustomerRef",
			"DiscountRate",
			"Taxable",
			"Currency",
			"Guid",
			"LastModifiedOn",
		},
	}

	for _, c := range export.Items(doc) {
		res.Row(
			c["CustomerCode"],
			c["CustomerName"],
			export.Relation(c, "CustomerType", "CustomerTypeName"),
			c["Email"],
			c["PhoneNumber"],
			c["MobileNumber"],
			c["Website"],
			c["CustomerRef"],
			c["DiscountRate"],
			c["Taxable"],
			export.Relation(c, "Currency", "CurrencyCode"),
			c["Guid"],
			export.DotNetDate(c["LastModifiedOn"]),
		)
	}

	return res, nil
}
