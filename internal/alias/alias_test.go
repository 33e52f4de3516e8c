package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlfrag/internal/escape"
)

func TestResolveAliases(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "two tables",
			query: "SELECT Customers.name, Invoices.total FROM Customers JOIN Invoices ON Invoices.customer_id = Customers.id",
			want:  "SELECT customer.name, invoice.total FROM Customers customer JOIN Invoices invoice ON invoice.customer_id = customer.id",
		},
		{
			name:  "reserved singular",
			query: "SELECT Orders.id FROM Orders JOIN Lines ON Lines.order_id = Orders.id",
			want:  "SELECT order2.id FROM Orders order2 JOIN Lines line ON line.order_id = order2.id",
		},
		{
			name:  "existing alias kept",
			query: "SELECT c.name, People.age FROM Customers c JOIN People ON People.id = c.person_id",
			want:  "SELECT c.name, person.age FROM Customers c JOIN People person ON person.id = c.person_id",
		},
		{
			name:  "existing AS alias rewrites qualifier",
			query: "SELECT Users.id FROM Users AS u JOIN Teams ON Teams.id = u.team_id",
			want:  "SELECT u.id FROM Users AS u JOIN Teams team ON team.id = u.team_id",
		},
		{
			name:  "case insensitive qualifier",
			query: "SELECT members.id FROM Members JOIN Teams ON TEAMS.id = members.team_id",
			want:  "SELECT member.id FROM Members member JOIN Teams team ON team.id = member.team_id",
		},
		{
			name:  "no tables",
			query: "SELECT 1",
			want:  "SELECT 1",
		},
	}

	r := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ResolveAliases(tt.query))
		})
	}
}

func TestTables(t *testing.T) {
	var r Resolver
	tables := r.Tables("SELECT * FROM Boxes b JOIN Boxes ON Boxes.parent = b.id JOIN main.Items")
	require.Len(t, tables, 3)

	assert.Equal(t, "Boxes", tables[0].Name)
	assert.Equal(t, "b", tables[0].Alias)
	assert.False(t, tables[0].Added)

	assert.Equal(t, "box", tables[1].Alias)
	assert.True(t, tables[1].Added)

	assert.Equal(t, "main.Items", tables[2].Name)
	assert.Equal(t, "item", tables[2].Alias)
}

func TestAliasCollision(t *testing.T) {
	var r Resolver
	tables := r.Tables("SELECT * FROM Items JOIN items ON 1 = 1")
	require.Len(t, tables, 2)
	assert.Equal(t, "item", tables[0].Alias)
	assert.Equal(t, "item2", tables[1].Alias)
}

func TestCustomReservedWords(t *testing.T) {
	r := New(escape.New(escape.WithReserved("team")))
	tables := r.Tables("SELECT * FROM Teams JOIN Users ON 1 = 1")
	require.Len(t, tables, 2)
	assert.Equal(t, "team2", tables[0].Alias)
	assert.Equal(t, "user2", tables[1].Alias, "user is reserved by default")
}

func TestBaseAlias(t *testing.T) {
	assert.Equal(t, "person", baseAlias("People"))
	assert.Equal(t, "order_line", baseAlias(`"Order_Lines"`))
	assert.Equal(t, "t2024", baseAlias("2024"))
}
