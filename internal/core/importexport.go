package core

import (
	"context"
	"strings"

	"github.com/jordanshaw/crmgrid/internal/csv"
)

// ExportColumns is the fixed column set for CSV export. It is
// deliberately independent of the user's on-screen visible columns so
// exports stay stable across layout changes.
var ExportColumns = []string{
	FieldCompanyName, FieldContact, FieldEmail, FieldPhone,
	FieldStatus, FieldLeadSource, FieldOwner, FieldBrand,
	FieldCity, FieldCountry, FieldDealValue, FieldCreatedAt, FieldNotes,
}

// importAliases maps normalized CSV header names to the canonical
// record keys used when creating leads. Multiple spellings per field to
// absorb exports from other systems.
var importAliases = map[string]string{
	"company_name":   FieldCompanyName,
	"company":        FieldCompanyName,
	"name":           FieldCompanyName,
	"contact_person": FieldContact,
	"contact_name":   FieldContact,
	"contact":        FieldContact,
	"email":          FieldEmail,
	"email_address":  FieldEmail,
	"phone":          FieldPhone,
	"phone_number":   FieldPhone,
	"mobile":         FieldPhone,
	"status":         FieldStatus,
	"lead_status":    FieldStatus,
	"lead_source":    "lead_source_name",
	"source":         "lead_source_name",
	"owner":          "owner_name",
	"brand":          "brand_name",
	"city":           FieldCity,
	"country":        FieldCountry,
	"deal_value":     FieldDealValue,
	"value":          FieldDealValue,
	"amount":         FieldDealValue,
	"created":        FieldCreatedAt,
	"created_at":     FieldCreatedAt,
	"created_date":   FieldCreatedAt,
	"date_created":   FieldCreatedAt,
	"notes":          FieldNotes,
	"description":    FieldNotes,
}

// requiredAnyKeys: a row must carry at least one of these to be worth
// creating.
var requiredAnyKeys = []string{FieldCompanyName, FieldEmail, FieldPhone}

// ExportRecords serializes records to a CSV document over the given
// column set, resolving each value through the resolver. An empty
// record set yields header-only output.
func ExportRecords(records []Record, columns []string, registry *Registry, resolver *Resolver) string {
	headers := make([]string, len(columns))
	for i, id := range columns {
		if d, ok := registry.Lookup(id); ok {
			headers[i] = d.Label
		} else {
			headers[i] = id
		}
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(columns))
		for j, id := range columns {
			row[j] = resolver.ExportValue(rec, id)
		}
		rows[i] = row
	}

	return csv.SerializeDocument(headers, rows)
}

// ImportRecords bulk-creates records from a CSV document. Headers map
// to built-in keys through the alias table; rows lacking every one of
// name/company, email, and phone are skipped without a backend call.
// create is invoked once per surviving row, sequentially in file order,
// and a failed row is recorded without aborting the rest of the batch.
func ImportRecords(ctx context.Context, documentText string, create CreateFunc) ImportResult {
	var result ImportResult

	for _, row := range csv.ParseDocument(documentText) {
		payload := make(map[string]any, len(row.Fields))
		for header, value := range row.Fields {
			key, ok := importAliases[header]
			if !ok {
				continue
			}
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			payload[key] = value
		}

		if !hasAnyRequired(payload) {
			result.Skipped++
			continue
		}

		if err := create(ctx, payload); err != nil {
			result.Errors = append(result.Errors, ImportError{Line: row.Line, Reason: err.Error()})
			continue
		}
		result.Imported++
	}

	return result
}

func hasAnyRequired(payload map[string]any) bool {
	for _, key := range requiredAnyKeys {
		if _, ok := payload[key]; ok {
			return true
		}
	}
	return false
}
