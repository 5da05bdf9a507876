package schema

// EditgroupTable represents the 'catalog.editgroup' table
type EditgroupTable struct {
	Table       string
	ID          string
	EditorID    string
	Created     string
	Description string
	ExtraJSON   string
}

// Editgroup is the schema definition for catalog.editgroup
var Editgroup = EditgroupTable{
	Table:       "catalog.editgroup",
	ID:          "id",
	EditorID:    "editor_id",
	Created:     "created",
	Description: "description",
	ExtraJSON:   "extra_json",
}

func (t EditgroupTable) Columns() []string {
	return []string{t.ID, t.EditorID, t.Created, t.Description, t.ExtraJSON}
}
