package services

import "github.com/diewo77/glasspro/internal/models"

// DefaultThicknessMM fills in seed items that carry no thickness.
const DefaultThicknessMM = 5.0

func ptr(v float64) *float64 { return &v }

// SeedInventory is the starting stock of a fresh shop.
func SeedInventory() []models.InventoryItem {
	items := []models.InventoryItem{
		{ID: "1", Name: "5 MM Clear Glass", SKU: "GLS-5MM-CLR", ThicknessMM: ptr(5), CostPrice: 85, PricePerUnit: 135, Stock: 2500, Unit: models.UnitSquareFoot, Category: models.CategoryPlainGlass},
		{ID: "2", Name: "8 MM Bronze Tinted", SKU: "GLS-8MM-BRZ", ThicknessMM: ptr(8), CostPrice: 160, PricePerUnit: 245, Stock: 800, Unit: models.UnitSquareFoot, Category: models.CategoryTinted},
		{ID: "a1", Name: "Aluminum Section M-24 (White)", SKU: "ALU-M24-WHT", CostPrice: 195, PricePerUnit: 285, Stock: 600, Unit: models.UnitFoot, Category: models.CategoryAluminumSection},
		{ID: "a2", Name: "Aluminum Section M-28 (Black)", SKU: "ALU-M28-BLK", CostPrice: 210, PricePerUnit: 310, Stock: 450, Unit: models.UnitFoot, Category: models.CategoryAluminumSection},
		{ID: "h1", Name: "Silicon Tube (Clear)", SKU: "ACC-SIL-CLR", CostPrice: 380, PricePerUnit: 550, Stock: 120, Unit: models.UnitPiece, Category: models.CategorySiliconRubber},
		{ID: "h2", Name: "EPDM Rubber Seal", SKU: "ACC-RUB-E", CostPrice: 15, PricePerUnit: 35, Stock: 2000, Unit: models.UnitFoot, Category: models.CategorySiliconRubber},
		{ID: "h3", Name: "Sliding Window Roller", SKU: "ALU-HW-ROL", CostPrice: 85, PricePerUnit: 150, Stock: 100, Unit: models.UnitPiece, Category: models.CategoryAluminumHardware},
	}
	for i := range items {
		if items[i].ThicknessMM == nil {
			items[i].ThicknessMM = ptr(DefaultThicknessMM)
		}
	}
	return items
}

// SeedServices is the default service menu.
func SeedServices() []models.Service {
	return []models.Service{
		{ID: "s1", Name: "Aluminum Window Fixing", Description: "Expert fitting of aluminum frames.", BasePrice: 200, Icon: "grid_view"},
		{ID: "s2", Name: "Custom Glass Cutting", Description: "Precision machine cutting.", BasePrice: 50, Icon: "content_cut"},
		{ID: "s3", Name: "Edge Polishing", Description: "Machine edge grinding and polishing.", BasePrice: 35, Icon: "auto_fix_high"},
	}
}

// SeedWorkers is the default crew.
func SeedWorkers() []models.Worker {
	return []models.Worker{
		{ID: "w1", Name: "John Doe", Phone: "555-0101", Role: models.RoleInstaller, Status: models.WorkerAvailable},
		{ID: "w2", Name: "Mike Smith", Phone: "555-0102", Role: models.RoleCutter, Status: models.WorkerOnDuty},
		{ID: "w3", Name: "Danish", Phone: "0300-1234567", Role: models.RoleInstaller, Status: models.WorkerAvailable},
	}
}

// SeedDocuments holds the single paid sample invoice.
func SeedDocuments() []models.Document {
	return []models.Document{{
		ID:         "1",
		Number:     "INV-2024-001",
		ClientName: "Alex Anderson",
		Date:       "Oct 20, 2024",
		Items: []models.LineItem{{
			ID: "li1", Description: "5 MM Clear Glass (24x36)", Quantity: 6, UnitPrice: 135, CostPriceAtTime: 85,
			Kind: models.LineKindGlass, Width: ptr(24), Height: ptr(36),
		}},
		Amount: 810,
		Status: models.DocumentStatusPaid,
		Type:   models.DocumentTypeInvoice,
	}}
}

const defaultFooterNotice = "1. Check materials before installation. No claims after fixing.\n" +
	"2. 50% advance for all custom Aluminum frame orders.\n" +
	"3. Broken glass after delivery is customer's responsibility."

// DefaultSettings is the shop identity printed until the owner edits it.
func DefaultSettings() models.Settings {
	return models.Settings{
		ShopName:            "GLASS & ALU PRO",
		Tagline:             "Industrial Fittings & Fabrications",
		Address:             "Main G.T Road, Workshop Zone, Gujranwala",
		Phone:               "+92 300 1234567",
		TaxID:               "7766554-1",
		InvoiceFooterNotice: defaultFooterNotice,
	}
}
