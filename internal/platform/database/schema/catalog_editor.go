package schema

// EditorTable represents the 'catalog.editor' table
type EditorTable struct {
	Table             string
	ID                string
	Username          string
	IsAdmin           string
	IsBot             string
	ActiveEditgroupID string
}

// Editor is the schema definition for catalog.editor
var Editor = EditorTable{
	Table:             "catalog.editor",
	ID:                "id",
	Username:          "username",
	IsAdmin:           "is_admin",
	IsBot:             "is_bot",
	ActiveEditgroupID: "active_editgroup_id",
}

func (t EditorTable) Columns() []string {
	return []string{t.ID, t.Username, t.IsAdmin, t.IsBot, t.ActiveEditgroupID}
}
