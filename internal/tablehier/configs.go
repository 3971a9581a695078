package tablehier

// Per-entity column configurations consumed by the universal table view.
// Keys match the JSON field names of the corresponding API entities.
var configs = map[string]Config{
	"assets": {
		Entity: "assets",
		Columns: []Column{
			{Key: "name", Label: "Asset Name", MobileLabel: "Asset", Priority: PriorityCritical, CriticalInfo: true},
			{Key: "tag", Label: "Tag", Priority: PriorityHigh, CriticalInfo: true},
			{Key: "status", Label: "Status", Priority: PriorityCritical, CriticalInfo: true},
			{Key: "location_id", Label: "Location", Priority: PriorityMedium, HideOn: []string{SizeXS}},
			{Key: "manufacturer", Label: "Manufacturer", Priority: PriorityLow, HideOn: []string{SizeXS, SizeSM, SizeMD}},
			{Key: "model", Label: "Model", Priority: PriorityLow, HideOn: []string{SizeXS, SizeSM}},
			{Key: "serial_number", Label: "Serial Number", MobileLabel: "S/N", Priority: PriorityLow, HideOn: []string{SizeXS, SizeSM, SizeMD}},
			{Key: "updated_at", Label: "Last Updated", MobileLabel: "Updated", Priority: PriorityMedium, HideOn: []string{SizeXS}},
		},
		MobileDefaults: []string{"name", "status", "tag"},
	},
	"work-orders": {
		Entity: "work-orders",
		Columns: []Column{
			{Key: "title", Label: "Work Order", MobileLabel: "WO", Priority: PriorityCritical, CriticalInfo: true},
			{Key: "status", Label: "Status", Priority: PriorityCritical, CriticalInfo: true},
			{Key: "priority", Label: "Priority", Priority: PriorityHigh, CriticalInfo: true},
			{Key: "asset_id", Label: "Asset", Priority: PriorityMedium, HideOn: []string{SizeXS}},
			{Key: "assigned_to_id", Label: "Assigned To", MobileLabel: "Assignee", Priority: PriorityMedium, HideOn: []string{SizeXS}},
			{Key: "due_date", Label: "Due Date", MobileLabel: "Due", Priority: PriorityHigh, CriticalInfo: true},
			{Key: "created_at", Label: "Created", Priority: PriorityLow, HideOn: []string{SizeXS, SizeSM, SizeMD}},
		},
		MobileDefaults: []string{"title", "status", "priority", "due_date"},
	},
	"parts": {
		Entity: "parts",
		Columns: []Column{
			{Key: "name", Label: "Part Name", MobileLabel: "Part", Priority: PriorityCritical, CriticalInfo: true},
			{Key: "part_number", Label: "Part Number", MobileLabel: "P/N", Priority: PriorityHigh, CriticalInfo: true},
			{Key: "quantity", Label: "In Stock", MobileLabel: "Qty", Priority: PriorityCritical, CriticalInfo: true},
			{Key: "min_quantity", Label: "Min Stock", Priority: PriorityMedium, HideOn: []string{SizeXS}},
			{Key: "unit_cost", Label: "Unit Cost", Priority: PriorityLow, HideOn: []string{SizeXS, SizeSM}},
			{Key: "location_id", Label: "Location", Priority: PriorityLow, HideOn: []string{SizeXS, SizeSM, SizeMD}},
		},
		MobileDefaults: []string{"name", "quantity", "part_number"},
	},
	"locations": {
		Entity: "locations",
		Columns: []Column{
			{Key: "name", Label: "Location", Priority: PriorityCritical, CriticalInfo: true},
			{Key: "address", Label: "Address", Priority: PriorityMedium, HideOn: []string{SizeXS}},
			{Key: "parent_id", Label: "Parent", Priority: PriorityLow, HideOn: []string{SizeXS, SizeSM}},
			{Key: "description", Label: "Description", Priority: PriorityLow, HideOn: []string{SizeXS, SizeSM, SizeMD}},
		},
		MobileDefaults: []string{"name", "address"},
	},
	"users": {
		Entity: "users",
		Columns: []Column{
			{Key: "name", Label: "Name", Priority: PriorityCritical, CriticalInfo: true},
			{Key: "email", Label: "Email", Priority: PriorityHigh, CriticalInfo: true},
			{Key: "role", Label: "Role", Priority: PriorityHigh, CriticalInfo: true},
			{Key: "phone", Label: "Phone", Priority: PriorityLow, HideOn: []string{SizeXS, SizeSM}},
			{Key: "active", Label: "Active", Priority: PriorityMedium, HideOn: []string{SizeXS}},
		},
		MobileDefaults: []string{"name", "role", "email"},
	},
	"pm-schedules": {
		Entity: "pm-schedules",
		Columns: []Column{
			{Key: "title", Label: "PM Schedule", MobileLabel: "PM", Priority: PriorityCritical, CriticalInfo: true},
			{Key: "asset_id", Label: "Asset", Priority: PriorityHigh, CriticalInfo: true},
			{Key: "next_due_at", Label: "Next Due", MobileLabel: "Due", Priority: PriorityCritical, CriticalInfo: true},
			{Key: "interval_unit", Label: "Interval", Priority: PriorityMedium, HideOn: []string{SizeXS}},
			{Key: "last_done_at", Label: "Last Done", Priority: PriorityLow, HideOn: []string{SizeXS, SizeSM}},
			{Key: "active", Label: "Active", Priority: PriorityLow, HideOn: []string{SizeXS, SizeSM, SizeMD}},
		},
		MobileDefaults: []string{"title", "next_due_at", "asset_id"},
	},
	"portal-submissions": {
		Entity: "portal-submissions",
		Columns: []Column{
			{Key: "code", Label: "Tracking Code", MobileLabel: "Code", Priority: PriorityCritical, CriticalInfo: true},
			{Key: "status", Label: "Status", Priority: PriorityCritical, CriticalInfo: true},
			{Key: "priority", Label: "Priority", Priority: PriorityHigh, CriticalInfo: true},
			{Key: "submitter_name", Label: "Submitter", Priority: PriorityMedium, HideOn: []string{SizeXS}},
			{Key: "portal_id", Label: "Portal", Priority: PriorityMedium, HideOn: []string{SizeXS}},
			{Key: "work_order_id", Label: "Work Order", MobileLabel: "WO", Priority: PriorityHigh, HideOn: []string{SizeSM}},
			{Key: "created_at", Label: "Submitted", Priority: PriorityLow, HideOn: []string{SizeXS, SizeSM, SizeMD}},
		},
		MobileDefaults: []string{"code", "status", "priority"},
	},
}

// ConfigFor returns the column configuration for an entity table.
func ConfigFor(entity string) (Config, bool) {
	cfg, ok := configs[entity]
	return cfg, ok
}

// Entities lists the entity names that have a table configuration.
func Entities() []string {
	out := make([]string, 0, len(configs))
	for k := range configs {
		out = append(out, k)
	}
	return out
}
