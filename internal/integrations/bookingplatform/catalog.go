package bookingplatform

import (
	"context"
	"math"
	"net/http"
	"net/url"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ListCatalog возвращает услуги каталога (объекты ITEM с первой вариацией).
// Пагинация по cursor обрабатывается полностью.
func (c *Client) ListCatalog(ctx context.Context) ([]CatalogService, error) {
	services := make([]CatalogService, 0)
	cursor := ""

	for {
		params := url.Values{}
		params.Set("types", "ITEM")
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var resp listCatalogResponse
		if err := c.do(ctx, http.MethodGet, "/v2/catalog/list?"+params.Encode(), nil, &resp); err != nil {
			return nil, err
		}

		for _, obj := range resp.Objects {
			if s, ok := toCatalogService(obj, len(services)); ok {
				services = append(services, s)
			}
		}

		if resp.Cursor == "" {
			break
		}
		cursor = resp.Cursor
	}

	c.log.Info("Platform: fetched %d catalog services", len(services))
	return services, nil
}

func toCatalogService(obj CatalogObject, index int) (CatalogService, bool) {
	if obj.Type != "ITEM" || obj.ItemData == nil || len(obj.ItemData.Variations) == 0 {
		return CatalogService{}, false
	}

	variation := obj.ItemData.Variations[0]
	if variation.ItemVariationData == nil {
		return CatalogService{}, false
	}
	data := variation.ItemVariationData

	// Длительность хранится в миллисекундах
	duration := domain.DefaultServiceDurationMins
	if data.ServiceDuration != nil && *data.ServiceDuration > 0 {
		duration = int(math.Round(float64(*data.ServiceDuration) / 60000))
	}

	var price *int64
	if data.PriceMoney != nil && data.PriceMoney.Amount != nil {
		amount := *data.PriceMoney.Amount
		price = &amount
	}

	return CatalogService{
		CatalogID:       obj.ID,
		VariationID:     variation.ID,
		Name:            obj.ItemData.Name,
		Description:     obj.ItemData.Description,
		DurationMinutes: duration,
		PriceCents:      price,
		SortOrder:       index,
	}, true
}
