// Package reference holds the static UK self-build vocabulary served to
// front ends: build phases, budget categories, building regulation parts,
// contact roles, document types and material units.
package reference

import "sort"

type Phase struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Description          string `json:"description"`
	TypicalDurationWeeks int    `json:"typical_duration_weeks"`
	Order                int    `json:"order"`
}

type BudgetCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Labelled is a code with its display label.
type Labelled struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// UnknownPhaseOrder is the order reported for phase ids that are not listed.
const UnknownPhaseOrder = 999

var phases = []Phase{
	{"pre-planning", "Pre-Planning & Feasibility", "Initial site assessment, feasibility studies, and concept development", 4, 1},
	{"planning-application", "Planning Application", "Submitting and obtaining planning permission from local authority", 12, 2},
	{"building-regs", "Building Regulations", "Building control approval and compliance documentation", 6, 3},
	{"tender-procurement", "Tender & Procurement", "Contractor selection, quotes, and material procurement", 4, 4},
	{"site-setup", "Site Setup", "Site access, utilities connection, and temporary facilities", 2, 5},
	{"groundworks", "Groundworks & Foundations", "Excavation, foundations, drainage, and DPC", 4, 6},
	{"substructure", "Substructure", "Below ground-level construction and damp proofing", 2, 7},
	{"superstructure", "Superstructure", "Walls, roof structure, and external envelope", 8, 8},
	{"external-envelope", "External Envelope", "Windows, doors, external cladding, and weatherproofing", 4, 9},
	{"first-fix-carpentry", "First Fix Carpentry", "Stud walls, floor joists, roof timbers, and battens", 3, 10},
	{"first-fix-electrics", "First Fix Electrics", "Cable runs, back boxes, and consumer unit installation", 2, 11},
	{"first-fix-plumbing", "First Fix Plumbing & Heating", "Pipework, radiators, underfloor heating, and boiler installation", 2, 12},
	{"insulation", "Insulation", "Wall, floor, and roof insulation for thermal performance", 2, 13},
	{"plastering", "Plastering", "Plasterboard and skim finishing to walls and ceilings", 3, 14},
	{"second-fix-carpentry", "Second Fix Carpentry", "Skirting, architrave, doors, and fitted furniture", 3, 15},
	{"second-fix-electrics", "Second Fix Electrics", "Switches, sockets, light fittings, and testing", 2, 16},
	{"second-fix-plumbing", "Second Fix Plumbing", "Sanitaryware, taps, kitchen appliances, and commissioning", 2, 17},
	{"finishes", "Finishes & Decorating", "Painting, tiling, flooring, and final decorative touches", 4, 18},
	{"snagging", "Snagging & Handover", "Final inspections, defect fixing, and project completion", 2, 19},
}

var budgetCategories = []BudgetCategory{
	{"land", "Land & Legal", "Land purchase, legal fees, stamp duty"},
	{"professional-fees", "Professional Fees", "Architect, structural engineer, surveyors, planning consultants"},
	{"groundworks", "Groundworks", "Excavation, foundations, drainage"},
	{"structure", "Structure", "Walls, roof, structural elements"},
	{"external-works", "External Works", "Landscaping, driveway, boundary walls"},
	{"mep", "M&E (Mechanical & Electrical)", "Plumbing, heating, electrics, renewables"},
	{"finishes", "Finishes", "Flooring, tiling, painting, decorating"},
	{"kitchen-bathrooms", "Kitchen & Bathrooms", "Fitted kitchens, bathroom suites, sanitaryware"},
	{"contingency", "Contingency", "Reserve fund for unforeseen costs (typically 10-15%)"},
}

var buildingRegs = map[string]string{
	"A": "Structure",
	"B": "Fire Safety",
	"C": "Site Preparation & Resistance to Contaminants & Moisture",
	"D": "Toxic Substances",
	"E": "Resistance to the Passage of Sound",
	"F": "Ventilation",
	"G": "Sanitation, Hot Water Safety & Water Efficiency",
	"H": "Drainage & Waste Disposal",
	"J": "Combustion Appliances & Fuel Storage Systems",
	"K": "Protection from Falling, Collision & Impact",
	"L": "Conservation of Fuel & Power (Energy Efficiency)",
	"M": "Access to & Use of Buildings",
	"N": "Glazing - Safety in Relation to Impact, Opening & Cleaning",
	"O": "Overheating",
	"P": "Electrical Safety",
	"Q": "Security",
	"R": "Physical Infrastructure for High-Speed Electronic Communications",
}

var contactRoles = []string{
	"Architect", "Structural Engineer", "M&E Engineer", "Quantity Surveyor",
	"Main Contractor", "Project Manager", "Builder", "Groundworker",
	"Bricklayer", "Roofer", "Carpenter", "Electrician", "Plumber",
	"Plasterer", "Decorator", "Landscaper", "Building Control Officer",
	"Planning Consultant", "Supplier", "Other",
}

// documentTypes is in the same order as the document_type column check.
var documentTypes = []Labelled{
	{"planning", "Planning Permission"},
	{"building_regs", "Building Regulations"},
	{"certificate", "Certificates & Warranties"},
	{"drawing", "Drawings & Plans"},
	{"contract", "Contracts"},
	{"invoice", "Invoices & Receipts"},
	{"photo", "Site Photos"},
	{"sap", "SAP Calculations"},
	{"warranty", "Warranties"},
	{"insurance", "Insurance Documents"},
	{"other", "Other"},
}

var materialUnits = []string{
	"m²", "m³", "linear m", "tonnes", "kg", "units", "bags",
	"litres", "rolls", "sheets", "blocks", "bricks", "other",
}

// Phases returns the build phases in construction order.
func Phases() []Phase { return append([]Phase(nil), phases...) }

func BudgetCategories() []BudgetCategory {
	return append([]BudgetCategory(nil), budgetCategories...)
}

// BuildingRegs returns the Approved Document parts ordered by letter.
func BuildingRegs() []Labelled {
	out := make([]Labelled, 0, len(buildingRegs))
	for code, label := range buildingRegs {
		out = append(out, Labelled{Code: code, Label: label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func ContactRoles() []string { return append([]string(nil), contactRoles...) }

func DocumentTypes() []Labelled { return append([]Labelled(nil), documentTypes...) }

func MaterialUnits() []string { return append([]string(nil), materialUnits...) }

// PhaseByID looks a phase up by id.
func PhaseByID(id string) (Phase, bool) {
	for _, p := range phases {
		if p.ID == id {
			return p, true
		}
	}
	return Phase{}, false
}

// PhaseOrder returns the position of a phase in the build sequence, or
// UnknownPhaseOrder.
func PhaseOrder(id string) int {
	if p, ok := PhaseByID(id); ok {
		return p.Order
	}
	return UnknownPhaseOrder
}

// EstimateDurationWeeks sums the typical duration of every phase.
func EstimateDurationWeeks() int {
	total := 0
	for _, p := range phases {
		total += p.TypicalDurationWeeks
	}
	return total
}
