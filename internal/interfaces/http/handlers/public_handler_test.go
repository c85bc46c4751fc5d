package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
)

func TestPublicHandler_Profile(t *testing.T) {
	active := uuid.New()
	h := NewPublicHandler(previewServiceStub{
		publicFn: func(_ context.Context, id uuid.UUID) ([]byte, error) {
			if id != active {
				return nil, domainerrors.NotFound("business not found")
			}
			return []byte(`<div class="layout layout-standard">Wari</div>`), nil
		},
	})
	r := newRouter()
	r.GET("/businesses/:id/profile", h.Profile)

	w := doJSON(r, http.MethodGet, "/businesses/"+active.String()+"/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "layout-standard")
	assert.Equal(t, "public, max-age=60", w.Header().Get("Cache-Control"))

	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodGet, "/businesses/"+uuid.NewString()+"/profile", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/businesses/x/profile", nil).Code)
}
