package estimate

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corporate-website/deployctl/internal/config"
)

func TestForEnvironment_BothEnvironmentsHaveEstimates(t *testing.T) {
	for _, env := range []config.Environment{config.EnvDev, config.EnvProd} {
		items := ForEnvironment(env)
		require.NotEmpty(t, items, "environment %s should have line items", env)
		for _, item := range items {
			require.NotEmpty(t, item.Service)
			require.NotEmpty(t, item.SKU)
			require.GreaterOrEqual(t, item.MonthlyUSD, 0.0)
		}
	}
}

func TestForEnvironment_ProdCostsMoreThanDev(t *testing.T) {
	dev := Total(ForEnvironment(config.EnvDev))
	prod := Total(ForEnvironment(config.EnvProd))
	require.Greater(t, prod, dev)
}

func TestTotal(t *testing.T) {
	items := []LineItem{
		{Service: "a", SKU: "x", MonthlyUSD: 1.5},
		{Service: "b", SKU: "y", MonthlyUSD: 2.5},
	}
	require.InDelta(t, 4.0, Total(items), 0.001)
}

func TestRender_ContainsHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	items := ForEnvironment(config.EnvDev)
	Render(&buf, config.EnvDev, items)

	out := buf.String()
	require.Contains(t, out, "Estimated monthly cost")
	require.Contains(t, out, "dev")
	require.Contains(t, out, "SERVICE")
	require.Contains(t, out, "TOTAL")
	for _, item := range items {
		require.Contains(t, out, item.Service)
	}
}
