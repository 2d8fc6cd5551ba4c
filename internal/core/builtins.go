package core

// Built-in field ids for the Leads module. Custom-field ids are
// namespaced with CustomFieldPrefix, so built-ins can use plain keys
// without risk of collision.
const (
	FieldRowNumber   = "row_number"
	FieldCompanyName = "company_name"
	FieldContact     = "contact_person"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldStatus      = "status"
	FieldLeadSource  = "lead_source"
	FieldOwner       = "owner"
	FieldBrand       = "brand"
	FieldCity        = "city"
	FieldCountry     = "country"
	FieldDealValue   = "deal_value"
	FieldCreatedAt   = "created_at"
	FieldNotes       = "notes"
)

// LeadStatusOptions are the selectable statuses for the Leads grid.
var LeadStatusOptions = []string{"New", "Contacted", "Qualified", "Proposal", "Won", "Lost"}

// LeadBuiltins is the fixed descriptor set for the Leads module, in
// default column order. Alias lists carry the legacy key spellings seen
// in backend payloads, most specific first.
var LeadBuiltins = []FieldDescriptor{
	{ID: FieldRowNumber, Label: "#", Type: TypeNumber},
	{ID: FieldCompanyName, Label: "Company Name", Type: TypeText,
		Aliases: []string{"company_name", "company", "name"}},
	{ID: FieldContact, Label: "Contact Person", Type: TypeText,
		Aliases: []string{"contact_person", "contact_name", "contact"}},
	{ID: FieldEmail, Label: "Email", Type: TypeText,
		Aliases: []string{"email", "email_address"}},
	{ID: FieldPhone, Label: "Phone", Type: TypeText,
		Aliases: []string{"phone", "phone_number", "mobile"}},
	{ID: FieldStatus, Label: "Status", Type: TypeSelect, Options: LeadStatusOptions,
		Aliases: []string{"status", "lead_status"}},
	{ID: FieldLeadSource, Label: "Lead Source", Type: TypeSelect,
		Aliases: []string{"lead_source_name", "lead_source", "source"},
		IDKeys:  []string{"lead_source_id", "source_id"}},
	{ID: FieldOwner, Label: "Owner", Type: TypeSelect,
		Aliases: []string{"owner_name", "owner", "assigned_to"},
		IDKeys:  []string{"owner_id", "assigned_to_id", "user_id"}},
	{ID: FieldBrand, Label: "Brand", Type: TypeSelect,
		Aliases: []string{"brand_name", "brand"},
		IDKeys:  []string{"brand_id"}},
	{ID: FieldCity, Label: "City", Type: TypeText,
		Aliases: []string{"city"}},
	{ID: FieldCountry, Label: "Country", Type: TypeText,
		Aliases: []string{"country"}},
	{ID: FieldDealValue, Label: "Deal Value", Type: TypeNumber,
		Aliases: []string{"deal_value", "value", "amount"}},
	{ID: FieldCreatedAt, Label: "Created", Type: TypeDate,
		Aliases: []string{"created_at", "created_date", "date_created"}},
	{ID: FieldNotes, Label: "Notes", Type: TypeText,
		Aliases: []string{"notes", "description"}},
}

// relationship reports whether the descriptor resolves through an
// id-to-label lookup chain.
func (d FieldDescriptor) relationship() bool {
	return len(d.IDKeys) > 0
}
