package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type orderInput struct {
	Customer string  `json:"customer" validate:"required,email"`
	PlantID  string  `json:"plantId"  validate:"required"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price"    validate:"required,gte=0"`
	Status   string  `json:"status"   validate:"nullable,in=Pending,In Progress,Delivered"`
	Address  string  `json:"address"  validate:"nullable,max=200"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(orderInput{
		Customer: "buyer@example.com",
		PlantID:  "65f000000000000000000001",
		Quantity: 2,
		Price:    25,
		Status:   "Pending",
	})
	assert.Empty(t, errs)
}

func TestStructRequired(t *testing.T) {
	errs := Struct(orderInput{Quantity: 1, Price: 1})
	assert.Equal(t, "The customer field is required.", errs["customer"])
	assert.Equal(t, "The plantId field is required.", errs["plantId"])
}

func TestStructEmail(t *testing.T) {
	errs := Struct(orderInput{Customer: "not-an-email", PlantID: "x", Quantity: 1, Price: 1})
	assert.Equal(t, "The customer field must be a valid email address.", errs["customer"])
}

func TestStructGreaterThan(t *testing.T) {
	errs := Struct(orderInput{Customer: "a@b.co", PlantID: "x", Quantity: 0, Price: 1})
	// Zero quantity trips required before gt.
	assert.Equal(t, "The quantity field is required.", errs["quantity"])

	type adjust struct {
		Quantity int `json:"quantityToUpdate" validate:"gt=0"`
	}
	errs = Struct(adjust{Quantity: -3})
	assert.Equal(t, "The quantityToUpdate field must be greater than 0.", errs["quantityToUpdate"])
}

func TestStructInListWithSpaces(t *testing.T) {
	in := orderInput{Customer: "a@b.co", PlantID: "x", Quantity: 1, Price: 1}

	in.Status = "In Progress"
	assert.Empty(t, Struct(in))

	in.Status = "Shipped"
	errs := Struct(in)
	assert.Equal(t, "The selected status is invalid.", errs["status"])
}

func TestStructNullableSkips(t *testing.T) {
	in := orderInput{Customer: "a@b.co", PlantID: "x", Quantity: 1, Price: 1}
	assert.Empty(t, Struct(in)) // empty status and address pass via nullable
}

func TestStructMaxStringLength(t *testing.T) {
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	in := orderInput{Customer: "a@b.co", PlantID: "x", Quantity: 1, Price: 1, Address: string(long)}
	errs := Struct(in)
	assert.Contains(t, errs["address"], "may not be greater than 200")
}

func TestStructPointerInput(t *testing.T) {
	errs := Struct(&orderInput{Customer: "a@b.co", PlantID: "x", Quantity: 1, Price: 1})
	assert.Empty(t, errs)
}

func TestStructNestedFields(t *testing.T) {
	type checkout struct {
		Customer struct {
			Email string `json:"email" validate:"required,email"`
			Name  string `json:"name"`
		} `json:"customer"`
		PlantID string `json:"plantId" validate:"required"`
	}

	var in checkout
	in.PlantID = "p1"
	errs := Struct(in)
	assert.Equal(t, "The customer.email field is required.", errs["customer.email"])

	in.Customer.Email = "not-an-email"
	errs = Struct(in)
	assert.Equal(t, "The customer.email field must be a valid email address.", errs["customer.email"])

	in.Customer.Email = "buyer@example.com"
	assert.Empty(t, Struct(in))
}

func TestStructRoleIn(t *testing.T) {
	type setRole struct {
		Role string `json:"role" validate:"required,in=customer,seller,admin"`
	}
	assert.Empty(t, Struct(setRole{Role: "seller"}))

	errs := Struct(setRole{Role: "superadmin"})
	assert.Equal(t, "The selected role is invalid.", errs["role"])
}
