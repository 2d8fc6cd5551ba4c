// Package store implements Postgres persistence for leads, custom-field
// definitions, lookup option lists, and view-preference blobs.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jordanshaw/crmgrid/internal/core"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store provides lead and metadata persistence.
type Store struct {
	db DBTX
}

// New creates a Store over db.
func New(db DBTX) *Store {
	return &Store{db: db}
}

const listLeadsQuery = `
SELECT id, company_name, contact_person, email, phone, status,
       lead_source_id, owner_id, brand_id, city, country, deal_value,
       notes, custom_data, created_at
FROM leads
ORDER BY created_at DESC, id`

// ListLeads returns all leads as grid records. Nullable columns are
// simply omitted from the record map; the resolver treats missing keys
// as empty values.
func (s *Store) ListLeads(ctx context.Context) ([]core.Record, error) {
	rows, err := s.db.Query(ctx, listLeadsQuery)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		var (
			id           pgtype.UUID
			companyName  pgtype.Text
			contact      pgtype.Text
			email        pgtype.Text
			phone        pgtype.Text
			status       pgtype.Text
			leadSourceID pgtype.Text
			ownerID      pgtype.Text
			brandID      pgtype.Text
			city         pgtype.Text
			country      pgtype.Text
			dealValue    pgtype.Numeric
			notes        pgtype.Text
			customData   []byte
			createdAt    pgtype.Timestamptz
		)
		err := rows.Scan(&id, &companyName, &contact, &email, &phone, &status,
			&leadSourceID, &ownerID, &brandID, &city, &country, &dealValue,
			&notes, &customData, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}

		rec := core.Record{}
		if id.Valid {
			rec["id"] = uuid.UUID(id.Bytes).String()
		}
		putText(rec, "company_name", companyName)
		putText(rec, "contact_person", contact)
		putText(rec, "email", email)
		putText(rec, "phone", phone)
		putText(rec, "status", status)
		putText(rec, "lead_source_id", leadSourceID)
		putText(rec, "owner_id", ownerID)
		putText(rec, "brand_id", brandID)
		putText(rec, "city", city)
		putText(rec, "country", country)
		if dealValue.Valid {
			if f, err := dealValue.Float64Value(); err == nil && f.Valid {
				rec["deal_value"] = f.Float64
			}
		}
		putText(rec, "notes", notes)
		if len(customData) > 0 {
			var cd map[string]any
			if err := json.Unmarshal(customData, &cd); err == nil {
				rec[core.CustomDataKey] = cd
			}
		}
		if createdAt.Valid {
			rec["created_at"] = createdAt.Time.UTC().Format(time.RFC3339)
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return records, nil
}

const createLeadQuery = `
INSERT INTO leads (id, company_name, contact_person, email, phone, status,
                   lead_source_id, owner_id, brand_id, city, country,
                   deal_value, notes, custom_data, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
        COALESCE($15, now()))`

// CreateLead inserts one lead from an import payload keyed by built-in
// record keys. A payload without a parseable created_at date gets the
// insert time. Satisfies core.CreateFunc.
func (s *Store) CreateLead(ctx context.Context, payload map[string]any) error {
	customData := []byte("{}")
	if cd, ok := payload[core.CustomDataKey].(map[string]any); ok {
		if b, err := json.Marshal(cd); err == nil {
			customData = b
		}
	}

	_, err := s.db.Exec(ctx, createLeadQuery,
		uuid.New(),
		ToPgText(payload["company_name"]),
		ToPgText(payload["contact_person"]),
		ToPgText(payload["email"]),
		ToPgText(payload["phone"]),
		ToPgText(payload["status"]),
		ToPgText(payload["lead_source_id"]),
		ToPgText(payload["owner_id"]),
		ToPgText(payload["brand_id"]),
		ToPgText(payload["city"]),
		ToPgText(payload["country"]),
		ToPgNumeric(payload["deal_value"]),
		ToPgText(payload["notes"]),
		customData,
		ToPgDate(payload["created_at"]),
	)
	if err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

func putText(rec core.Record, key string, v pgtype.Text) {
	if v.Valid {
		rec[key] = v.String
	}
}
