package model

// AssetStatus is the lifecycle state of an asset.
type AssetStatus string

const (
	StatusInStock         AssetStatus = "In Stock"
	StatusAssigned        AssetStatus = "Assigned"
	StatusInRepair        AssetStatus = "In Repair"
	StatusAwaitingReimage AssetStatus = "Awaiting Re-image"
	StatusLostOrStolen    AssetStatus = "Lost/Stolen"
	StatusDisposed        AssetStatus = "Disposed"
)

// AllStatuses lists every status in declaration order.
var AllStatuses = []AssetStatus{
	StatusInStock,
	StatusAssigned,
	StatusInRepair,
	StatusAwaitingReimage,
	StatusLostOrStolen,
	StatusDisposed,
}

// Valid reports whether s is a known status.
func (s AssetStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// AssetCategory classifies an asset.
type AssetCategory string

const (
	CategoryLaptop      AssetCategory = "Laptop"
	CategoryDesktop     AssetCategory = "Desktop"
	CategoryTablet      AssetCategory = "Tablet"
	CategoryMonitor     AssetCategory = "Monitor"
	CategoryProjector   AssetCategory = "Projector"
	CategoryPeripherals AssetCategory = "Peripherals"
	CategorySoftware    AssetCategory = "Software"
)

// AllCategories lists every category in declaration order.
var AllCategories = []AssetCategory{
	CategoryLaptop,
	CategoryDesktop,
	CategoryTablet,
	CategoryMonitor,
	CategoryProjector,
	CategoryPeripherals,
	CategorySoftware,
}

// Valid reports whether c is a known category.
func (c AssetCategory) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseStatus matches s against the known statuses, ignoring case.
// Both the display form ("In Stock") and the compact form ("instock") are accepted.
func ParseStatus(s string) (AssetStatus, bool) {
	key := compact(s)
	for _, st := range AllStatuses {
		if compact(string(st)) == key {
			return st, true
		}
	}
	switch key {
	case "lost", "stolen", "lostorstolen":
		return StatusLostOrStolen, true
	case "reimage", "awaitingreimage":
		return StatusAwaitingReimage, true
	}
	return "", false
}

// ParseCategory matches s against the known categories, ignoring case.
func ParseCategory(s string) (AssetCategory, bool) {
	key := compact(s)
	for _, c := range AllCategories {
		if compact(string(c)) == key {
			return c, true
		}
	}
	return "", false
}

func compact(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b >= 'A' && b <= 'Z':
			out = append(out, b+('a'-'A'))
		case b >= 'a' && b <= 'z', b >= '0' && b <= '9':
			out = append(out, b)
		}
	}
	return string(out)
}
