// Package store is a small observable order model. Its call sites request
// property chains that propchain generates paths for.
package store

//go:generate go run propchain/cmd/propchain gen .

import (
	"time"

	"propchain/reactive"
)

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Address is where an order ships to. Street is a plain field and does
// not raise notifications.
type Address struct {
	reactive.Notifier

	Street string
	city   string
}

func (a *Address) City() string     { return a.city }
func (a *Address) SetCity(v string) { reactive.SetProperty(&a.Notifier, a, &a.city, v, "City") }

// Customer represents the user placing orders.
type Customer struct {
	reactive.Notifier

	ID      int64
	email   string
	address *Address
	notes   *notes
}

func (c *Customer) Email() string     { return c.email }
func (c *Customer) SetEmail(v string) { reactive.SetProperty(&c.Notifier, c, &c.email, v, "Email") }
func (c *Customer) Address() *Address { return c.address }

func (c *Customer) SetAddress(v *Address) {
	reactive.SetProperty(&c.Notifier, c, &c.address, v, "Address")
}

// Notes exposes bookkeeping of a type other packages cannot name.
func (c *Customer) Notes() *notes     { return c.notes }
func (c *Customer) SetNotes(v *notes) { reactive.SetProperty(&c.Notifier, c, &c.notes, v, "Notes") }

// notes is internal bookkeeping, only reachable from this package.
type notes struct {
	reactive.Notifier

	text string
}

func (n *notes) Text() string     { return n.text }
func (n *notes) SetText(v string) { reactive.SetProperty(&n.Notifier, n, &n.text, v, "Text") }

// Order represents a transaction made by a customer.
type Order struct {
	reactive.Notifier

	ID         int64
	OrderedAt  time.Time
	customer   *Customer
	status     OrderStatus
	totalCents int64
}

// NewOrder returns a pending order for c.
func NewOrder(id int64, c *Customer) *Order {
	return &Order{ID: id, customer: c, status: StatusPending, OrderedAt: time.Now()}
}

func (o *Order) Customer() *Customer     { return o.customer }
func (o *Order) Status() OrderStatus     { return o.status }
func (o *Order) SetStatus(v OrderStatus) { reactive.SetProperty(&o.Notifier, o, &o.status, v, "Status") }
func (o *Order) TotalCents() int64       { return o.totalCents }

func (o *Order) SetCustomer(v *Customer) {
	reactive.SetProperty(&o.Notifier, o, &o.customer, v, "Customer")
}

func (o *Order) SetTotalCents(v int64) {
	reactive.SetProperty(&o.Notifier, o, &o.totalCents, v, "TotalCents")
}
