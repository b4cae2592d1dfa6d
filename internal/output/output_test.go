// ABOUTME: Tests for result rendering
// ABOUTME: Covers format parsing, JSON/YAML output, and JMESPath queries

package output

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavhh/hotel-booking-client/internal/models"
)

func sample() []models.Booking {
	return []models.Booking{
		{ID: "BK-1", HotelName: "Harbor Inn", Status: models.StatusConfirmed, Price: 360},
		{ID: "BK-2", HotelName: "City Lodge", Status: models.StatusCancelled, Price: 90},
	}
}

func humanStub(w io.Writer) error {
	_, err := io.WriteString(w, "human\n")
	return err
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, " yaml ": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestPrint_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Printer{Format: FormatText}.Print(&buf, sample(), humanStub))
	assert.Equal(t, "human\n", buf.String())
}

func TestPrint_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Printer{Format: FormatJSON}.Print(&buf, sample(), humanStub))
	assert.Contains(t, buf.String(), `"hotelName": "Harbor Inn"`)
}

func TestPrint_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Printer{Format: FormatYAML}.Print(&buf, sample(), humanStub))
	assert.Contains(t, buf.String(), "hotelName: Harbor Inn")
	assert.Contains(t, buf.String(), "status: Cancelled")
}

func TestPrint_Query(t *testing.T) {
	var buf bytes.Buffer
	p := Printer{Format: FormatJSON, Query: "[?status=='Confirmed'].id"}
	require.NoError(t, p.Print(&buf, sample(), humanStub))
	assert.JSONEq(t, `["BK-1"]`, buf.String())
}

func TestPrint_QueryWithTextPrintsJSON(t *testing.T) {
	var buf bytes.Buffer
	p := Printer{Format: FormatText, Query: "length(@)"}
	require.NoError(t, p.Print(&buf, sample(), humanStub))
	assert.Equal(t, "2", strings.TrimSpace(buf.String()))
}

func TestPrint_QueryYAML(t *testing.T) {
	var buf bytes.Buffer
	p := Printer{Format: FormatYAML, Query: "[0].{id: id, price: price}"}
	require.NoError(t, p.Print(&buf, sample(), humanStub))
	assert.Contains(t, buf.String(), "id: BK-1")
	assert.Contains(t, buf.String(), "price: 360")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Printer{}.Validate())
	assert.NoError(t, Printer{Query: "[].id"}.Validate())
	assert.Error(t, Printer{Query: "[?"}.Validate())
}
