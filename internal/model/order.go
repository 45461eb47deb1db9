package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Order is a customer booking. Email is the ownership key used when a
// caller lists their own orders; Status is the only mutable field.
type Order struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	CustomerName string             `json:"customerName,omitempty" bson:"customerName,omitempty"`
	Email        string             `json:"email" bson:"email"`
	Img          string             `json:"img,omitempty" bson:"img,omitempty"`
	Date         string             `json:"date,omitempty" bson:"date,omitempty"`
	Service      string             `json:"service,omitempty" bson:"service,omitempty"`
	ServiceID    string             `json:"service_id,omitempty" bson:"service_id,omitempty"`
	Price        float64            `json:"price,omitempty" bson:"price,omitempty"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Message      string             `json:"message,omitempty" bson:"message,omitempty"`
	Status       string             `json:"status,omitempty" bson:"status,omitempty"`
}

// OrderQuery narrows an order listing. Empty Email lists every order.
type OrderQuery struct {
	Email string
}

// ListOrdersPayload takes the owner as a raw string; it is compared to
// the caller's claim as-is, so it is not required to be a valid address.
type ListOrdersPayload struct {
	Email string `query:"email" validate:"max=320"`
}

func (p *ListOrdersPayload) Validate() error {
	return validate.Struct(p)
}

// CreateOrderPayload is the accepted shape of a new order. Unknown
// fields are rejected by the JSON decoder.
type CreateOrderPayload struct {
	CustomerName string  `json:"customerName" validate:"max=120"`
	Email        string  `json:"email" validate:"required,email"`
	Img          string  `json:"img" validate:"omitempty,max=2048"`
	Date         string  `json:"date" validate:"max=40"`
	Service      string  `json:"service" validate:"max=200"`
	ServiceID    string  `json:"service_id" validate:"max=64"`
	Price        float64 `json:"price" validate:"gte=0"`
	Phone        string  `json:"phone" validate:"max=40"`
	Message      string  `json:"message" validate:"max=2000"`
	Status       string  `json:"status" validate:"max=64"`
}

func (p *CreateOrderPayload) Validate() error {
	return validate.Struct(p)
}

// Order converts the payload into a new, unsaved Order.
func (p *CreateOrderPayload) Order() *Order {
	return &Order{
		CustomerName: p.CustomerName,
		Email:        p.Email,
		Img:          p.Img,
		Date:         p.Date,
		Service:      p.Service,
		ServiceID:    p.ServiceID,
		Price:        p.Price,
		Phone:        p.Phone,
		Message:      p.Message,
		Status:       p.Status,
	}
}

type UpdateOrderStatusPayload struct {
	ID     string `param:"id" json:"-" validate:"required"`
	Status string `json:"status" validate:"required,max=64"`
}

func (p *UpdateOrderStatusPayload) Validate() error {
	return validate.Struct(p)
}

type DeleteOrderPayload struct {
	ID string `param:"id" validate:"required"`
}

func (p *DeleteOrderPayload) Validate() error {
	return validate.Struct(p)
}
