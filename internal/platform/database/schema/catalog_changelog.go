package schema

// ChangelogTable represents the 'catalog.changelog' table
type ChangelogTable struct {
	Table       string
	ID          string
	EditgroupID string
	Timestamp   string
}

// Changelog is the schema definition for catalog.changelog
var Changelog = ChangelogTable{
	Table:       "catalog.changelog",
	ID:          "id",
	EditgroupID: "editgroup_id",
	Timestamp:   "timestamp",
}

func (t ChangelogTable) Columns() []string {
	return []string{t.ID, t.EditgroupID, t.Timestamp}
}
