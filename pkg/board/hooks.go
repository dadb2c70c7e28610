package board

// OnAdd registers fn to run after every successful Add, in registration order.
func (b *Board) OnAdd(fn func(Agent)) {
	if fn != nil {
		b.onAdd = append(b.onAdd, fn)
	}
}

// OnDelete registers fn to run for every agent purged by scheduled_delete,
// before the agent is released.
func (b *Board) OnDelete(fn func(Agent)) {
	if fn != nil {
		b.onDelete = append(b.onDelete, fn)
	}
}

// OnReset registers fn to run at the end of Reset.
func (b *Board) OnReset(fn func(*Board)) {
	if fn != nil {
		b.onReset = append(b.onReset, fn)
	}
}

// Hooks snapshot their listener list before firing: listeners registered
// while a hook runs take effect on the next event. Panics in listeners are
// not recovered.
