package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVMapsByHeader(t *testing.T) {
	input := "\ufeffCompany_Name, Country ,extra\nAcme,CN\nGlobex,DE,x,overflow\n"
	sheet, err := ReadSheet("customers.CSV", strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"company_name", "country", "extra"}, sheet.Header)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, 2, sheet.Rows[0].Line)
	assert.Equal(t, "Acme", sheet.Rows[0].Get("company_name"))
	assert.Equal(t, "CN", sheet.Rows[0].Get("COUNTRY"))
	assert.Equal(t, "", sheet.Rows[0].Get("extra"))
	assert.Equal(t, "x", sheet.Rows[1].Get("extra"))
	assert.NoError(t, sheet.HasColumns("company_name", "country"))
	assert.Error(t, sheet.HasColumns("product_name"))
}

func TestReadSheetRejects(t *testing.T) {
	_, err := ReadSheet("data.txt", strings.NewReader("a\n1\n"))
	assert.Error(t, err)

	_, err = ReadSheet("empty.csv", strings.NewReader("company_name\n"))
	assert.ErrorIs(t, err, ErrEmptySheet)

	_, err = ReadSheet("broken.xlsx", strings.NewReader("not a zip"))
	assert.Error(t, err)
}

func TestBlankRow(t *testing.T) {
	sheet, err := ReadCSV(strings.NewReader("a,b\n , \n1,\n"))
	require.NoError(t, err)
	assert.True(t, sheet.Rows[0].IsBlank())
	assert.False(t, sheet.Rows[1].IsBlank())
}

func TestXLSXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	header := []string{"company_name", "country"}
	rows := [][]interface{}{{"Acme", "CN"}, {"Globex", "DE"}}
	require.NoError(t, WriteXLSX(&buf, header, rows))

	sheet, err := ReadSheet("export.xlsx", &buf)
	require.NoError(t, err)
	assert.Equal(t, header, sheet.Header)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "Globex", sheet.Rows[1].Get("company_name"))
	assert.Equal(t, 3, sheet.Rows[1].Line)
}

func TestWriteCSVTemplate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSVTemplate(&buf, []string{"company_name", "country"}))
	assert.Equal(t, "company_name,country\n", buf.String())
}
