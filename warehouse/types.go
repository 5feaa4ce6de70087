// Package warehouse follows store orders from another package: it can only
// use their exported properties.
package warehouse

import (
	"propchain/reactive"
	"propchain/store"
)

// Shipment is prepared for one order.
type Shipment struct {
	reactive.Notifier

	Order  *store.Order
	cities []string
}

// Cities returns the cities the order was about to leave, oldest first.
func (s *Shipment) Cities() []string { return s.cities }

// Follow records address changes of the shipment's order.
func (s *Shipment) Follow() (reactive.Subscription, error) {
	return reactive.WhenChanging(s.Order, "Customer().Address().City()", func(city string) {
		s.cities = append(s.cities, city)
	})
}

// Watch reports status changes of the shipment's order.
func (s *Shipment) Watch(onStatus func(store.OrderStatus)) (reactive.Subscription, error) {
	return reactive.WhenChanged(s, "Order.Status()", onStatus)
}
