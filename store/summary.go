package store

import (
	"fmt"

	"propchain/reactive"
)

// Summary is a view of an order kept in sync with it.
type Summary struct {
	reactive.Notifier

	city   string
	status string
	label  string
	note   string
}

func (s *Summary) City() string       { return s.city }
func (s *Summary) SetCity(v string)   { reactive.SetProperty(&s.Notifier, s, &s.city, v, "City") }
func (s *Summary) Status() string     { return s.status }
func (s *Summary) SetStatus(v string) { reactive.SetProperty(&s.Notifier, s, &s.status, v, "Status") }
func (s *Summary) Label() string      { return s.label }
func (s *Summary) Note() string       { return s.note }

// Track keeps s in sync with o until the returned subscription is
// disposed.
func (o *Order) Track(s *Summary) (reactive.Subscription, error) {
	var subs []reactive.Subscription

	dispose := func() {
		for _, sub := range subs {
			sub.Dispose()
		}
	}

	add := func(sub reactive.Subscription, err error) error {
		if err != nil {
			return err
		}

		subs = append(subs, sub)

		return nil
	}

	err := add(reactive.TwoWayBind[*Order, string, *Summary, string](
		o, "Customer().Address().City()", s, "City()", nil, nil))
	if err == nil {
		err = add(reactive.OneWayBind(o, "Status()", s, "Status()",
			func(st OrderStatus) string { return string(st) }))
	}
	if err == nil {
		err = add(reactive.WhenChanged2(o, "TotalCents()", "Customer().Email()",
			func(total int64, email string) string {
				return fmt.Sprintf("%s: %d.%02d", email, total/100, total%100)
			},
			func(label string) { s.label = label }))
	}
	if err == nil {
		err = add(reactive.WhenChanged(o, "Customer().Notes().Text()", func(text string) { s.note = text }))
	}

	if err != nil {
		dispose()
		return nil, err
	}

	return reactive.SubscriptionFunc(dispose), nil
}
