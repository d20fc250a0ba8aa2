package domain

// Vehicle holds the identity details returned by a registration lookup.
type Vehicle struct {
	RegistrationNumber string   `json:"registration_number"`
	Make               string   `json:"make"`
	Colour             string   `json:"colour"`
	FuelType           string   `json:"fuel_type"`
	EngineCapacity     int      `json:"engine_capacity"`
	YearOfManufacture  int      `json:"year_of_manufacture"`
	TaxStatus          string   `json:"tax_status"`
	TaxDueDate         DateOnly `json:"tax_due_date"`
	MotStatus          string   `json:"mot_status"`
	MotExpiryDate      DateOnly `json:"mot_expiry_date"`
	Co2Emissions       int      `json:"co2_emissions"`
	MarkedForExport    bool     `json:"marked_for_export"`
	MonthOfFirstReg    string   `json:"month_of_first_registration"`
}
