package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/splitconfig"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// orderRequest reads the actor and the {id} path parameter.
func orderRequest(c echo.Context) (kernel.Actor, kernel.UUID, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}

	var id uuid.UUID
	err = runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, newRequestError(kindValidation, fmt.Sprintf("invalid order id %q", c.Param("id")))
	}

	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}
	return actor, orderID, nil
}

func bindQuery(c echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), dest); err != nil {
		return newRequestError(kindValidation, fmt.Sprintf("invalid query parameter %q", name))
	}
	return nil
}

func bindPage(c echo.Context) (queries.Page, error) {
	var number, size *int
	if err := errors.Join(bindQuery(c, "page", &number), bindQuery(c, "pageSize", &size)); err != nil {
		return queries.Page{}, err
	}
	return queries.NewPage(deref(number), deref(size))
}

func bindRestaurantID(c echo.Context) (*kernel.UUID, error) {
	var raw *uuid.UUID
	if err := bindQuery(c, "restaurantId", &raw); err != nil {
		return nil, err
	}
	return optionalUUID(raw)
}

func bindListOrdersParams(c echo.Context) (queries.OrderFilter, queries.Page, error) {
	var (
		statuses                           *[]string
		mode                               *string
		customerID, restaurantID, driverID *uuid.UUID
		from, to                           *time.Time
		includeDeleted                     *bool
	)
	if err := errors.Join(
		bindQuery(c, "status", &statuses),
		bindQuery(c, "transportMode", &mode),
		bindQuery(c, "customerId", &customerID),
		bindQuery(c, "restaurantId", &restaurantID),
		bindQuery(c, "driverId", &driverID),
		bindQuery(c, "from", &from),
		bindQuery(c, "to", &to),
		bindQuery(c, "includeDeleted", &includeDeleted),
	); err != nil {
		return queries.OrderFilter{}, queries.Page{}, err
	}

	page, err := bindPage(c)
	if err != nil {
		return queries.OrderFilter{}, queries.Page{}, err
	}

	filter := queries.OrderFilter{From: from, To: to, IncludeDeleted: deref(includeDeleted)}

	var problems []error
	if filter.CustomerID, err = optionalUUID(customerID); err != nil {
		problems = append(problems, err)
	}
	if filter.RestaurantID, err = optionalUUID(restaurantID); err != nil {
		problems = append(problems, err)
	}
	if filter.DriverID, err = optionalUUID(driverID); err != nil {
		problems = append(problems, err)
	}
	if statuses != nil {
		for _, raw := range *statuses {
			status, parseErr := order.ParseStatus(raw)
			if parseErr != nil {
				problems = append(problems, parseErr)
				continue
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	if mode != nil {
		transportMode, parseErr := order.ParseTransportMode(*mode)
		if parseErr != nil {
			problems = append(problems, parseErr)
		} else {
			filter.TransportMode = &transportMode
		}
	}
	if err = errors.Join(problems...); err != nil {
		return queries.OrderFilter{}, queries.Page{}, err
	}
	return filter, page, nil
}

func newCreateOrderCommand(actor kernel.Actor, body NewOrderBody, idempotencyKey string) (commands.CreateOrderCommand, error) {
	currency := strings.ToUpper(strings.TrimSpace(body.Currency))

	items, itemsErr := newItems(body.Items, currency)
	shippingFee, feeErr := kernel.MoneyFromDecimal(body.ShippingFee, currency)
	location, locationErr := newLocation(body.DeliveryAddress, body.DeliveryLat, body.DeliveryLng)
	mode, modeErr := order.ParseTransportMode(body.TransportMode)
	contact, contactErr := order.NewContact(body.Contact.Name, body.Contact.Email, body.Contact.Phone)
	restaurantID, restaurantErr := kernel.UUIDFromGoogle(body.RestaurantID)

	if err := errors.Join(itemsErr, feeErr, locationErr, modeErr, contactErr, restaurantErr); err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		actor,
		restaurantID,
		items,
		shippingFee,
		location,
		mode,
		contact,
		idempotencyKey,
	)
}

func newItems(body []NewOrderItemBody, currency string) ([]order.Item, error) {
	if len(body) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	items := make([]order.Item, 0, len(body))
	var problems []error
	for i, b := range body {
		price, err := kernel.MoneyFromDecimal(b.UnitPrice, currency)
		if err != nil {
			problems = append(problems, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		item, err := order.NewItem(b.Name, price, b.Quantity)
		if err != nil {
			problems = append(problems, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return items, nil
}

func newLocation(address string, lat, lng *float64) (kernel.Location, error) {
	if (lat == nil) != (lng == nil) {
		return kernel.Location{}, errs.NewValueIsRequiredError("deliveryLat and deliveryLng must be given together")
	}
	if lat == nil {
		return kernel.NewLocation(address, nil)
	}

	coordinates, err := kernel.NewCoordinates(*lat, *lng)
	if err != nil {
		return kernel.Location{}, err
	}
	return kernel.NewLocation(address, &coordinates)
}

func newActivateSplitConfigCommand(actor kernel.Actor, body NewSplitConfigBody) (commands.ActivateSplitConfigCommand, error) {
	restaurantID, err := optionalUUID(body.RestaurantID)
	if err != nil {
		return commands.ActivateSplitConfigCommand{}, err
	}

	currency := strings.ToUpper(strings.TrimSpace(body.Currency))

	var terms splitconfig.Terms
	switch splitconfig.Method(body.Method) {
	case splitconfig.MethodPercent:
		terms, err = splitconfig.NewPercentTerms(splitconfig.Rates{
			Admin:      body.Rates.Admin,
			Restaurant: body.Rates.Restaurant,
			Delivery:   body.Rates.Delivery,
		}, currency)
	case splitconfig.MethodFixed:
		fee, feeErr := kernel.MoneyFromDecimal(body.DeliveryFee, currency)
		if feeErr != nil {
			return commands.ActivateSplitConfigCommand{}, feeErr
		}
		terms, err = splitconfig.NewFixedTerms(fee, splitconfig.RemainderPolicy(body.RemainderPolicy), splitconfig.RemainderRates{
			Admin:      body.RemainderRates.Admin,
			Restaurant: body.RemainderRates.Restaurant,
		})
	default:
		err = errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%q is not percent or fixed", body.Method))
	}
	if err != nil {
		return commands.ActivateSplitConfigCommand{}, err
	}

	return commands.NewActivateSplitConfigCommand(kernel.NewUUID(), restaurantID, terms, actor)
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
