package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutOrder_Validate(t *testing.T) {
	t.Run("customer required", func(t *testing.T) {
		order := &CheckoutOrder{ID: "123"}
		assert.ErrorIs(t, order.Validate(), ErrOrderMissingCustomer)
	})

	t.Run("shipments and payments optional", func(t *testing.T) {
		order := &CheckoutOrder{
			ID:       "123",
			Customer: &Customer{ID: "9", FirstName: "Ada", LastName: "Lovelace"},
		}
		assert.NoError(t, order.Validate())
	})
}

func TestCheckoutOrder_FirstShipment(t *testing.T) {
	order := &CheckoutOrder{}
	assert.Nil(t, order.FirstShipment())

	order.Shipments = []Shipment{
		{"shipping_service_description": "Ground"},
		{"shipping_service_description": "Air"},
	}
	assert.Equal(t, "Ground", order.FirstShipment()["shipping_service_description"])
}

func TestCheckoutOrder_FirstPayment(t *testing.T) {
	order := &CheckoutOrder{}
	assert.Nil(t, order.FirstPayment())

	order.Payments = []Payment{
		{Type: "purchase", CCExpMonth: "01", CCExpYear: "2027"},
		{Type: "refund"},
	}
	payment := order.FirstPayment()
	assert.Equal(t, "purchase", payment.Type)
	assert.Equal(t, "01", payment.CCExpMonth)
}
