package bookingplatform

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// FindOrCreateCustomer ищет клиента по email, при отсутствии создает нового
func (c *Client) FindOrCreateCustomer(ctx context.Context, client *domain.Client) (string, error) {
	var search searchCustomersRequest
	search.Query.Filter.EmailAddress.Exact = client.Email

	var found searchCustomersResponse
	if err := c.do(ctx, http.MethodPost, "/v2/customers/search", search, &found); err != nil {
		return "", err
	}
	if len(found.Customers) > 0 && found.Customers[0].ID != "" {
		return found.Customers[0].ID, nil
	}

	body := createCustomerRequest{
		IdempotencyKey: uuid.NewString(),
		Customer: Customer{
			GivenName:    client.FirstName,
			FamilyName:   client.LastName,
			EmailAddress: client.Email,
			PhoneNumber:  client.Phone,
		},
	}

	var created customerResponse
	if err := c.do(ctx, http.MethodPost, "/v2/customers", body, &created); err != nil {
		return "", err
	}
	if created.Customer == nil || created.Customer.ID == "" {
		return "", fmt.Errorf("%w: customer id is missing", ErrInvalidResponse)
	}

	c.log.Info("Platform: created customer %s for %s", created.Customer.ID, client.Email)
	return created.Customer.ID, nil
}
