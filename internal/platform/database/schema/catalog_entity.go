package schema

// EntityIdentTable represents a 'catalog.{kind}_ident' table.
// All seven entity kinds share this shape.
type EntityIdentTable struct {
	Table      string
	ID         string
	IsLive     string
	RevID      string
	RedirectID string
}

func (t EntityIdentTable) Columns() []string {
	return []string{t.ID, t.IsLive, t.RevID, t.RedirectID}
}

// EntityEditTable represents a 'catalog.{kind}_edit' table.
// All seven entity kinds share this shape.
type EntityEditTable struct {
	Table       string
	ID          string
	EditgroupID string
	Updated     string
	IdentID     string
	RevID       string
	RedirectID  string
	PrevRev     string
	ExtraJSON   string
}

func (t EntityEditTable) Columns() []string {
	return []string{t.ID, t.EditgroupID, t.Updated, t.IdentID, t.RevID, t.RedirectID, t.PrevRev, t.ExtraJSON}
}

// EntityRevTable represents a 'catalog.{kind}_rev' table.
// Payload columns differ per kind, so only the shared key is carried.
type EntityRevTable struct {
	Table string
	ID    string
}

// EntityTables bundles the ident/rev/edit tables backing one entity kind.
type EntityTables struct {
	Ident EntityIdentTable
	Rev   EntityRevTable
	Edit  EntityEditTable
}

// Entity builds the table set for an entity kind name ("release", "work", ...).
func Entity(kind string) EntityTables {
	return EntityTables{
		Ident: EntityIdentTable{
			Table:      "catalog." + kind + "_ident",
			ID:         "id",
			IsLive:     "is_live",
			RevID:      "rev_id",
			RedirectID: "redirect_id",
		},
		Rev: EntityRevTable{
			Table: "catalog." + kind + "_rev",
			ID:    "id",
		},
		Edit: EntityEditTable{
			Table:       "catalog." + kind + "_edit",
			ID:          "id",
			EditgroupID: "editgroup_id",
			Updated:     "updated",
			IdentID:     "ident_id",
			RevID:       "rev_id",
			RedirectID:  "redirect_id",
			PrevRev:     "prev_rev",
			ExtraJSON:   "extra_json",
		},
	}
}
