package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorsPage_EscapesText(t *testing.T) {
	var b strings.Builder
	err := VendorsPage([]VendorRow{{ID: 1, Name: "<script>x</script>", BirthDate: "1984-07-25", Region: "TX", Age: 39}}).
		Render(context.Background(), &b)
	require.NoError(t, err)

	out := b.String()
	assert.Contains(t, out, "<title>Reporte general</title>")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "<td>39</td>")
}

func TestVendorsPage_Empty(t *testing.T) {
	var b strings.Builder
	require.NoError(t, VendorsPage(nil).Render(context.Background(), &b))
	assert.Contains(t, b.String(), "No hay vendedores.")
	assert.NotContains(t, b.String(), "<table>")
}

func TestAverageAgePage(t *testing.T) {
	var b strings.Builder
	err := AverageAgePage([]RegionRow{{Region: "CA", AverageAge: 35, Count: 2}}).Render(context.Background(), &b)
	require.NoError(t, err)
	assert.Contains(t, b.String(), "<td>CA</td><td>35.00</td><td>2</td>")
}

func TestErrorAlert(t *testing.T) {
	var b strings.Builder
	require.NoError(t, ErrorAlert("Vendor data could not be read", "", "SRC001").Render(context.Background(), &b))

	out := b.String()
	assert.Contains(t, out, `role="alert"`)
	assert.Contains(t, out, "Code: SRC001")
	assert.Equal(t, 2, strings.Count(out, "<p>"), "empty action should not render a paragraph")
}

func TestLayout_WrapsChildren(t *testing.T) {
	var b strings.Builder
	body := templ.Raw("<p>hola</p>")
	err := Layout("Título").Render(templ.WithChildren(context.Background(), body), &b)
	require.NoError(t, err)

	out := b.String()
	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "<h1>Título</h1><p>hola</p></main>")
}

func TestVendorsPage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var b strings.Builder
	err := VendorsPage(nil).Render(ctx, &b)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, b.String())
}
