package batigest_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/ziz0u9/MillesBTP-sub000/internal/cost"
	"github.com/ziz0u9/MillesBTP-sub000/internal/importer/batigest"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestImporter_FullExport(t *testing.T) {
	csv := `Suivi de chantier - Dupont rénovation;
Période;01/02/2025 au 28/02/2025

Date;Libellé;Référence;Catégorie;Type;Montant
03/02/2025;Béton C25/30 toupie;F2025-0112;Matériaux;Engagé;1 234,56
10/02/2025;Équipe maçonnerie semaine 7;;Main d'œuvre;Engagé;4.800,00
14/02/2025;Lot plomberie SDB;DEV-88;Sous-traitance;Estimé;2500,00
;;;;Total;8 534,56
`

	imp := batigest.New()
	params, err := imp.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.Equal(t, date(2025, 2, 3), params[0].CostDate)
	assert.Equal(t, "Béton C25/30 toupie", params[0].Label)
	assert.Equal(t, "F2025-0112", params[0].Reference)
	assert.Equal(t, cost.CategoryMaterials, params[0].Category)
	assert.Equal(t, cost.TypeCommitted, params[0].Type)
	assert.Equal(t, int64(123456), params[0].Amount)

	assert.Equal(t, cost.CategoryLabor, params[1].Category)
	assert.Equal(t, int64(480000), params[1].Amount)

	assert.Equal(t, cost.CategorySubcontracting, params[2].Category)
	assert.Equal(t, cost.TypeEstimated, params[2].Type)
	assert.Equal(t, int64(250000), params[2].Amount)
}

func TestImporter_MinimalColumns(t *testing.T) {
	csv := `Date;Libellé;Montant
05/03/2025;Location mini-pelle;450,00
`

	imp := batigest.New()
	params, err := imp.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, cost.CategoryOther, params[0].Category)
	assert.Equal(t, cost.TypeCommitted, params[0].Type)
	assert.Equal(t, int64(45000), params[0].Amount)
}

func TestImporter_SkipsCreditAndZeroLines(t *testing.T) {
	csv := `Date;Libellé;Montant
05/03/2025;Avoir fournisseur;-120,00
06/03/2025;Ligne vide;0,00
07/03/2025;Sable 0/4;80,00
`

	imp := batigest.New()
	params, err := imp.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, "Sable 0/4", params[0].Label)
}

func TestImporter_Windows1252Export(t *testing.T) {
	csv := `Date;Libellé;Catégorie;Montant
03/02/2025;Béton armé;Matériaux;500,00
`

	encoded, err := charmap.Windows1252.NewEncoder().String(csv)
	require.NoError(t, err)

	imp := batigest.New()
	params, err := imp.Parse(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, "Béton armé", params[0].Label)
	assert.Equal(t, cost.CategoryMaterials, params[0].Category)
}

func TestImporter_NoHeader(t *testing.T) {
	imp := batigest.New()

	_, err := imp.Parse(strings.NewReader("nothing;useful;here\n1;2;3\n"))
	assert.Error(t, err)
}
