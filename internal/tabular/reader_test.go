package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xerschedule/core/internal/schederr"
	"github.com/xerschedule/core/internal/validation"
)

func TestParseTokenizesTablesFieldsAndRows(t *testing.T) {
	data := "ERMHDR\t1\t2026-01-01\n" +
		"%T\tPROJECT\n" +
		"%F\tproj_id\tproj_name\n" +
		"%R\tP1\tDemo\n" +
		"%E\n"

	doc, result, err := Parse([]byte(data))
	require.NoError(t, err)
	require.True(t, doc.SawHeader)
	assert.Equal(t, 0, result.ErrorCount())

	table, ok := doc.Tables["PROJECT"]
	require.True(t, ok)
	require.Len(t, table.Rows, 1)

	name, present := table.Get(table.Rows[0], "proj_name")
	assert.True(t, present)
	assert.Equal(t, "Demo", name)
}

func TestParseEmptyInputFails(t *testing.T) {
	_, _, err := Parse(nil)
	require.Error(t, err)
	var schedErr *schederr.Error
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, schederr.KindEmptyFile, schedErr.Kind)
}

func TestParseNoMarkersIsInvalidFormat(t *testing.T) {
	_, _, err := Parse([]byte("just some plain text, not XER at all"))
	require.Error(t, err)
	var schedErr *schederr.Error
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, schederr.KindInvalidFormat, schedErr.Kind)
}

func TestParseMissingHeaderIsInfoNotError(t *testing.T) {
	data := "%T\tPROJECT\n%F\tproj_id\n%R\tP1\n%E\n"
	doc, result, err := Parse([]byte(data))
	require.NoError(t, err)
	assert.False(t, doc.SawHeader)

	msgs := result.MessagesByCode(validation.CodeMissingHeader)
	require.Len(t, msgs, 1)
	assert.Equal(t, validation.SeverityInfo, msgs[0].Severity)
}

func TestParseRowBeforeFieldsIsSkippedWithWarning(t *testing.T) {
	data := "%T\tPROJECT\n%R\tP1\n%F\tproj_id\n%E\n"
	doc, result, err := Parse([]byte(data))
	require.NoError(t, err)

	table := doc.Tables["PROJECT"]
	assert.Empty(t, table.Rows)

	msgs := result.MessagesByCode(validation.CodeRowBeforeFields)
	assert.Len(t, msgs, 1)
}

func TestParseTooManyRowsFails(t *testing.T) {
	var b strings.Builder
	b.WriteString("%T\tPROJECT\n%F\tproj_id\n")
	b.WriteString(strings.Repeat("%R\tP\n", MaxRows+1))
	b.WriteString("%E\n")

	_, _, err := Parse([]byte(b.String()))
	require.Error(t, err)
	var schedErr *schederr.Error
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, schederr.KindTooManyRows, schedErr.Kind)
}

func TestParseEOFWithoutEndMarkerStillEmitsOpenTable(t *testing.T) {
	data := "%T\tPROJECT\n%F\tproj_id\n%R\tP1\n"
	doc, _, err := Parse([]byte(data))
	require.NoError(t, err)
	table, ok := doc.Tables["PROJECT"]
	require.True(t, ok)
	assert.Len(t, table.Rows, 1)
}
