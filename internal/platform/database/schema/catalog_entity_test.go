package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mm--/fatcat/internal/platform/database/schema"
)

/*
TestEntityTables pins the generated names for one kind: every query builds
its identifiers from these constants, never from literals.
*/
func TestEntityTables(t *testing.T) {
	tables := schema.Entity("release")

	assert.Equal(t, "catalog.release_ident", tables.Ident.Table)
	assert.Equal(t, "id", tables.Ident.ID)
	assert.Equal(t, []string{"id", "is_live", "rev_id", "redirect_id"}, tables.Ident.Columns())

	assert.Equal(t, "catalog.release_rev", tables.Rev.Table)
	assert.Equal(t, "id", tables.Rev.ID)

	assert.Equal(t, "catalog.release_edit", tables.Edit.Table)
	assert.Equal(t,
		[]string{"id", "editgroup_id", "updated", "ident_id", "rev_id", "redirect_id", "prev_rev", "extra_json"},
		tables.Edit.Columns(),
	)
}
