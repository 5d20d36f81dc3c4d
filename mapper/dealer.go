package mapper

import "reflect"

// Dealer is a worklist of destination types that still need a shape.
// A type is handed out once, even when requested again later.
type Dealer struct {
	needs map[reflect.Type]struct{}
	done  map[reflect.Type]struct{}
}

// Next hands out a pending type and marks it done.
func (d *Dealer) Next() (reflect.Type, bool) {
	for t := range d.needs {
		delete(d.needs, t)

		if _, exists := d.done[t]; !exists {
			d.Done(t)

			return t, true
		}
	}

	return nil, false
}

// Needs queues t unless it was already handed out.
func (d *Dealer) Needs(t reflect.Type) {
	if d.needs == nil {
		d.needs = make(map[reflect.Type]struct{})
	}

	if _, exists := d.done[t]; !exists {
		d.needs[t] = struct{}{}
	}
}

func (d *Dealer) Done(t reflect.Type) {
	if d.done == nil {
		d.done = make(map[reflect.Type]struct{})
	}

	delete(d.needs, t)
	d.done[t] = struct{}{}
}
