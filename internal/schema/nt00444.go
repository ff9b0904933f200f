package schema

// Column names shared between files.
const (
	ColVoyageID      = "voyage_id"
	ColDASVoyageNum  = "das_voyage_num"
	ColDASVoyageID   = "das_voyage_id"
	ColChamber       = "chamber"
	ColShipName      = "ship_name"
	ColDateBegin     = "date_begin"
	ColDateEnd       = "date_end"
	ColPersonID      = "person_id"
	ColServiceBegin  = "date_begin_service"
	ColServiceEnd    = "date_end_service"
	ColInventoryNum  = "inventory_num"
	ColReasonEnd     = "reason_end_service"
	ColRank          = "rank"
	ColSourceType    = "source_type"
	ColDurationDays  = "duration_days"
	ColServiceDays   = "service_days"
	ColBeneficiaryID = "beneficiary_id"
)

// Voyages lists the columns of NT00444_SOLDIJBOEKEN.csv, the pay-ledger
// voyages (English names).
var Voyages = []FieldSpec{
	{Name: ColVoyageID, Type: FieldText},
	{Name: ColShipName, Type: FieldText},
	{Name: ColChamber, Type: FieldText},
	{Name: ColDASVoyageNum, Type: FieldVoyageNumber},
	{Name: ColDateBegin, Type: FieldDate},
	{Name: ColDateEnd, Type: FieldDate},
	{Name: "place_begin", Type: FieldText},
	{Name: "place_end", Type: FieldText},
	{Name: ColInventoryNum, Type: FieldText},
	{Name: "folio_begin", Type: FieldText},
	{Name: "folio_end", Type: FieldText},
	{Name: "source_reference", Type: FieldText},
}

// Beneficiaries lists the columns of NT00444_BEGUNSTIGDEN.csv.
var Beneficiaries = []FieldSpec{
	{Name: ColBeneficiaryID, Type: FieldText},
	{Name: ColPersonID, Type: FieldText},
	{Name: "beneficiary_name", Type: FieldText},
	{Name: "relation", Type: FieldText},
	{Name: "residence", Type: FieldText},
	{Name: "amount", Type: FieldNumeric},
	{Name: "date_registered", Type: FieldDate},
	{Name: "remarks", Type: FieldText},
}

// Contracts lists the columns of NT00444_OPVARENDEN.csv, one row per person
// per voyage.
var Contracts = []FieldSpec{
	{Name: ColPersonID, Type: FieldText},
	{Name: ColVoyageID, Type: FieldText},
	{Name: "last_name", Type: FieldText},
	{Name: "first_name", Type: FieldText},
	{Name: "patronym", Type: FieldText},
	{Name: "place_of_origin", Type: FieldText},
	{Name: ColRank, Type: FieldText},
	{Name: "monthly_wage", Type: FieldNumeric},
	{Name: ColChamber, Type: FieldText},
	{Name: ColShipName, Type: FieldText},
	{Name: ColDASVoyageNum, Type: FieldVoyageNumber},
	{Name: ColServiceBegin, Type: FieldDate},
	{Name: ColServiceEnd, Type: FieldDate},
	{Name: ColReasonEnd, Type: FieldText},
	{Name: ColInventoryNum, Type: FieldText},
}

// DAS column names as they appear in das.xlsx, and their renamed form.
const (
	DASSourceVoyageID  = "voyId"
	DASSourceVoyageNum = "voyNumberDAS"
)

// DASRenames maps das.xlsx headers onto the names used everywhere else.
var DASRenames = map[string]string{
	DASSourceVoyageID:  ColDASVoyageID,
	DASSourceVoyageNum: ColDASVoyageNum,
}
