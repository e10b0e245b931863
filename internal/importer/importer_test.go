package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziz0u9/MillesBTP-sub000/internal/cost"
	"github.com/ziz0u9/MillesBTP-sub000/internal/importer"
)

func TestService_Import(t *testing.T) {
	csv := `Date;Libellé;Montant
05/03/2025;Location mini-pelle;450,00
`

	svc := importer.NewService()

	params, err := svc.Import(importer.FormatBatigest, strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "Location mini-pelle", params[0].Label)
	assert.Equal(t, int64(45000), params[0].Amount)
	assert.Equal(t, cost.TypeCommitted, params[0].Type)
}

func TestService_Import_UnknownFormat(t *testing.T) {
	svc := importer.NewService()

	_, err := svc.Import(importer.Format("sage"), strings.NewReader(""))
	require.ErrorIs(t, err, importer.ErrUnknownFormat)
	assert.Contains(t, err.Error(), "batigest")
}
