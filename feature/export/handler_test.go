package export

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"quote-manager/core/catalog"
	"quote-manager/core/catalog/mocks"
	"quote-manager/feature/export/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(store Store, cat catalog.Client) *fiber.App {
	svc := NewService(store, cat, zap.NewNop())
	handler := NewHandler(svc, &JSONAssembler{})
	app := fiber.New()
	handler.RegisterRoutes(app)
	return app
}

func TestHandleExport(t *testing.T) {
	cat := &mocks.Client{}
	cat.On("LookupConfigurations", mock.Anything, mock.Anything).Return(map[string]catalog.Definition{}, nil)
	cat.On("LookupProductLinks", mock.Anything, mock.Anything).Return(map[string]string{}, nil)
	cat.On("LookupParents", mock.Anything, mock.Anything).Return(map[string]string{}, nil)
	app := newTestApp(&stubStore{quote: testQuote()}, cat)

	req := httptest.NewRequest("GET", "/quotes/q-1/export", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var data models.ExportData
	require.NoError(t, json.Unmarshal(body, &data))
	assert.Equal(t, "q-1", data.QuoteID)
	assert.NotEmpty(t, data.ExportID)
	assert.Len(t, data.Chassis, 1)
}

func TestHandleExport_StoreFailure(t *testing.T) {
	app := newTestApp(&stubStore{quoteErr: fmt.Errorf("record store down")}, &mocks.Client{})

	req := httptest.NewRequest("GET", "/quotes/q-1/export", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "record store down")
}

func TestHandleSlots(t *testing.T) {
	cat := &mocks.Client{}
	cat.On("LookupConfigurations", mock.Anything, mock.Anything).Return(map[string]catalog.Definition{}, nil)
	cat.On("LookupProductLinks", mock.Anything, mock.Anything).Return(map[string]string{}, nil)
	cat.On("LookupParents", mock.Anything, mock.Anything).Return(map[string]string{}, nil)
	app := newTestApp(&stubStore{quote: testQuote()}, cat)

	req := httptest.NewRequest("GET", "/quotes/q-1/slots", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		QuoteID string `json:"quote_id"`
		Chassis []struct {
			ItemID string `json:"item_id"`
			Rows   []struct {
				Slot int `json:"slot"`
			} `json:"rows"`
		} `json:"chassis"`
		Summary models.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "q-1", payload.QuoteID)
	require.Len(t, payload.Chassis, 1)
	assert.Len(t, payload.Chassis[0].Rows, 3)
	assert.Equal(t, 2, payload.Summary.CanonicalEntries)
}
