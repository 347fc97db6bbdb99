package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabisonia/go-specification/criteria"
)

type account struct {
	Owner   string
	Balance int
	hidden  string
}

func (a *account) GetOwner() string { return "owner:" + a.Owner }

func TestStructRowPrefersGetter(t *testing.T) {
	value, err := StructRow(account{Owner: "ann"}).Lookup("owner")
	require.NoError(t, err)
	assert.Equal(t, "owner:ann", value)

	value, err = StructRow(&account{Owner: "bob"}).Lookup("owner")
	require.NoError(t, err)
	assert.Equal(t, "owner:bob", value)
}

func TestStructRowFallsBackToExportedField(t *testing.T) {
	value, err := StructRow(account{Balance: 7}).Lookup("balance")
	require.NoError(t, err)
	assert.Equal(t, 7, value)
}

func TestStructRowRejectsUnexportedAndUnknown(t *testing.T) {
	_, err := StructRow(account{hidden: "x"}).Lookup("hidden")
	assert.ErrorIs(t, err, criteria.ErrUnknownField)

	_, err = StructRow(account{}).Lookup("nope")
	assert.ErrorIs(t, err, criteria.ErrUnknownField)
}

func TestStructRowNil(t *testing.T) {
	var missing *account
	_, err := StructRow(missing).Lookup("owner")
	assert.ErrorIs(t, err, criteria.ErrInvalidPredicate)

	_, err = StructRow(nil).Lookup("owner")
	assert.ErrorIs(t, err, criteria.ErrInvalidPredicate)
}

func TestMapRowMissingKeyIsNil(t *testing.T) {
	value, err := MapRow{}.Lookup("owner")
	require.NoError(t, err)
	assert.Nil(t, value)
}

type Base struct {
	Code string
}

type item struct {
	*Base
	Label string
}

type Audited struct {
	by string
}

func (a *Audited) GetAuditor() string { return a.by }

type auditedItem struct {
	*Audited
}

func TestStructRowNilEmbeddedPointer(t *testing.T) {
	value, err := StructRow(item{Label: "x"}).Lookup("code")
	require.NoError(t, err)
	assert.Nil(t, value)

	value, err = StructRow(item{Base: &Base{Code: "c1"}}).Lookup("code")
	require.NoError(t, err)
	assert.Equal(t, "c1", value)

	_, err = StructRow(auditedItem{}).Lookup("auditor")
	assert.ErrorIs(t, err, criteria.ErrInvalidPredicate)
}

func TestFilterToleratesNilEmbeddedPointer(t *testing.T) {
	code := criteria.Named[item]("code")
	rows := []item{{Label: "a"}, {Base: &Base{Code: "c1"}, Label: "b"}}

	got, err := Filter(criteria.Query[item]().IsNull(code).Build(), rows)
	require.NoError(t, err)
	assert.Equal(t, []item{rows[0]}, got)

	got, err = Filter(criteria.Query[item]().Eq(code, "c1").Build(), rows)
	require.NoError(t, err)
	assert.Equal(t, []item{rows[1]}, got)
}
