package inventory

import "github.com/nexa-assets/nexa/pkg/model"

// SeedAssets returns the sample assets used when nothing is stored yet.
func SeedAssets() []model.Asset {
	return []model.Asset{
		{
			ID:           "asset-1",
			AssetTag:     "TAG-1001",
			Name:         "Dell Latitude 7440",
			Category:     model.CategoryLaptop,
			Status:       model.StatusAssigned,
			PurchaseDate: "2023-08-14",
			ReimageDate:  "2025-08-14",
			Value:        1450,
			AssignedTo:   model.User{Name: "Maria Lopez", Email: "maria.lopez@example.com"},
			Department:   "Finance",
			Location:     "HQ Floor 3",
			Description:  "14-inch business laptop with docking station.",
			SerialNumber: "DL7440-88213",
			AuditLog: []model.AuditLogEntry{{
				ID: "log-seed-1", Date: "2023-08-14T09:00:00Z", Action: model.ActionCreated,
				Details: "Asset created initially", User: "Admin User",
			}},
		},
		{
			ID:           "asset-2",
			AssetTag:     "TAG-1002",
			Name:         "Apple MacBook Pro 14",
			Category:     model.CategoryLaptop,
			Status:       model.StatusAwaitingReimage,
			PurchaseDate: "2022-11-02",
			ReimageDate:  "2025-01-15",
			Value:        2199,
			Department:   "Design",
			Location:     "IT Storage",
			Description:  "M2 Pro, returned by departing employee.",
			SerialNumber: "C02XK1MBP14",
			AuditLog: []model.AuditLogEntry{{
				ID: "log-seed-2", Date: "2022-11-02T10:30:00Z", Action: model.ActionCreated,
				Details: "Asset created initially", User: "Admin User",
			}},
		},
		{
			ID:           "asset-3",
			AssetTag:     "TAG-1003",
			Name:         "LG UltraFine 27",
			Category:     model.CategoryMonitor,
			Status:       model.StatusInStock,
			PurchaseDate: "2024-01-20",
			Value:        549.99,
			Location:     "IT Storage",
			Description:  "27-inch 4K monitor.",
			SerialNumber: "LG27UF-4410",
			AuditLog: []model.AuditLogEntry{{
				ID: "log-seed-3", Date: "2024-01-20T14:00:00Z", Action: model.ActionCreated,
				Details: "Asset created initially", User: "Admin User",
			}},
		},
		{
			ID:           "asset-4",
			AssetTag:     "TAG-1004",
			Name:         "Epson PowerLite 2250U",
			Category:     model.CategoryProjector,
			Status:       model.StatusInRepair,
			PurchaseDate: "2021-05-10",
			Value:        1299,
			Department:   "Facilities",
			Location:     "Conference Room B",
			Description:  "Lamp failure, sent to vendor.",
			SerialNumber: "EPS2250-0071",
			AuditLog: []model.AuditLogEntry{{
				ID: "log-seed-4", Date: "2021-05-10T08:15:00Z", Action: model.ActionCreated,
				Details: "Asset created initially", User: "Admin User",
			}},
		},
	}
}

// SeedUsers returns the sample users used when nothing is stored yet.
func SeedUsers() []model.AppUser {
	return []model.AppUser{
		{
			ID: "user-1", Name: "Admin User", Email: "admin@nexa.com", Role: model.RoleAdmin,
			LastLogin: model.NeverLoggedIn, Status: model.UserActive, Password: "admin",
		},
		{
			ID: "user-2", Name: "Staff Member", Email: "staff@nexa.com", Role: model.RoleStaff,
			LastLogin: model.NeverLoggedIn, Status: model.UserActive, Password: "staff",
		},
		{
			ID: "user-3", Name: "Former Contractor", Email: "contractor@nexa.com", Role: model.RoleViewer,
			LastLogin: model.NeverLoggedIn, Status: model.UserInactive, Password: "viewer",
		},
	}
}
