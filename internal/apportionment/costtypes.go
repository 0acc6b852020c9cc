package apportionment

// The 17 operating-cost categories of § 2 BetrKV. Free-text custom
// categories use CostTypeCustom with the label carried on the item.
const (
	CostTypePublicCharges       = "public_charges"
	CostTypeWaterSupply         = "water_supply"
	CostTypeSewage              = "sewage"
	CostTypeHeatingCentral      = "heating_central"
	CostTypeHotWaterCentral     = "hot_water_central"
	CostTypeElevator            = "elevator"
	CostTypeStreetCleaningWaste = "street_cleaning_waste"
	CostTypeBuildingCleaning    = "building_cleaning"
	CostTypeGardenMaintenance   = "garden_maintenance"
	CostTypeLighting            = "lighting"
	CostTypeChimneyCleaning     = "chimney_cleaning"
	CostTypeInsurance           = "insurance"
	CostTypeCaretaker           = "caretaker"
	CostTypeAntennaCable        = "antenna_cable"
	CostTypeLaundryFacilities   = "laundry_facilities"
	CostTypeOtherOperating      = "other_operating_costs"
	CostTypeReserve             = "reserve"

	CostTypeCustom = "custom"
)

// CostTypeLabels maps each standard category to its BetrKV display label.
var CostTypeLabels = map[string]string{
	CostTypePublicCharges:       "1. Laufende öffentliche Lasten",
	CostTypeWaterSupply:         "2. Wasserversorgung",
	CostTypeSewage:              "3. Entwässerung",
	CostTypeHeatingCentral:      "4. Heizung (zentral)",
	CostTypeHotWaterCentral:     "5. Warmwasser (zentral)",
	CostTypeElevator:            "6. Aufzug",
	CostTypeStreetCleaningWaste: "7. Straßenreinigung und Müllabfuhr",
	CostTypeBuildingCleaning:    "8. Gebäudereinigung",
	CostTypeGardenMaintenance:   "9. Gartenpflege",
	CostTypeLighting:            "10. Beleuchtung",
	CostTypeChimneyCleaning:     "11. Schornsteinreinigung",
	CostTypeInsurance:           "12. Versicherungen",
	CostTypeCaretaker:           "13. Hauswart",
	CostTypeAntennaCable:        "14. Gemeinschafts-Antennenanlage/Kabel",
	CostTypeLaundryFacilities:   "15. Wascheinrichtungen",
	CostTypeOtherOperating:      "16. Sonstige Betriebskosten",
	CostTypeReserve:             "17. Reserve",
}

// IsStandardCostType reports whether t is one of the 17 BetrKV categories.
func IsStandardCostType(t string) bool {
	_, ok := CostTypeLabels[t]
	return ok
}
