package apperr

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataIntegrityStatuses(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, DataIntegrity("bad row").Status)
	assert.Equal(t, http.StatusNotFound, DataIntegrityMissing("row gone").Status)
	assert.True(t, IsKind(DataIntegrity("bad row"), KindDataIntegrity))
	assert.True(t, IsKind(DataIntegrityMissing("row gone"), KindDataIntegrity))
}
